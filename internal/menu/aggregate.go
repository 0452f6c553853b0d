package menu

import "github.com/vladislavdragonenkov/menuboard/internal/domain"

// LatestLimit — сколько последних блюд показывается на главном экране.
const LatestLimit = 3

// CourseAverage — средняя цена блюд одного раздела.
type CourseAverage struct {
	Course  domain.Course
	Average float64
	Count   int
}

// TotalCount возвращает количество блюд в снимке.
func TotalCount(items []domain.MenuItem) int {
	return len(items)
}

// AveragePrice считает среднюю цену блюд раздела. Если блюд нет, возвращает 0.
func AveragePrice(items []domain.MenuItem, course domain.Course) float64 {
	avg, _ := averageWithCount(items, course)
	return avg
}

// CourseAverages возвращает средние цены по всем известным разделам в порядке отображения.
func CourseAverages(items []domain.MenuItem) []CourseAverage {
	courses := domain.Courses()
	result := make([]CourseAverage, 0, len(courses))
	for _, course := range courses {
		avg, count := averageWithCount(items, course)
		result = append(result, CourseAverage{Course: course, Average: avg, Count: count})
	}
	return result
}

// Latest возвращает до LatestLimit последних добавленных блюд, начиная с самого нового.
func Latest(items []domain.MenuItem) []domain.MenuItem {
	n := LatestLimit
	if len(items) < n {
		n = len(items)
	}

	result := make([]domain.MenuItem, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		result = append(result, items[i])
	}
	return result
}

func averageWithCount(items []domain.MenuItem, course domain.Course) (float64, int) {
	var (
		sum   float64
		count int
	)
	for _, item := range items {
		if item.Course != course {
			continue
		}
		sum += item.Price
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}
