package menu

import (
	"strings"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
)

// Selector задаёт необязательный фильтр по разделу.
// Нулевое значение означает «без фильтра».
type Selector struct {
	course domain.Course
	active bool
}

// AllCourses возвращает селектор без фильтра.
func AllCourses() Selector {
	return Selector{}
}

// OnlyCourse возвращает селектор одного раздела.
func OnlyCourse(course domain.Course) Selector {
	return Selector{course: course, active: true}
}

// ParseSelector разбирает значение из запроса: пустая строка и "all" снимают фильтр.
func ParseSelector(raw string) (Selector, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return AllCourses(), nil
	}
	course, err := domain.ParseCourse(trimmed)
	if err != nil {
		return Selector{}, err
	}
	return OnlyCourse(course), nil
}

// Course возвращает выбранный раздел и признак активного фильтра.
func (s Selector) Course() (domain.Course, bool) {
	return s.course, s.active
}

// IsAll сообщает, что фильтр не задан.
func (s Selector) IsAll() bool {
	return !s.active
}

// Matches проверяет, проходит ли блюдо через фильтр.
func (s Selector) Matches(item domain.MenuItem) bool {
	return !s.active || item.Course == s.course
}

func (s Selector) String() string {
	if !s.active {
		return "all"
	}
	return string(s.course)
}

// Filter возвращает блюда, подходящие под селектор, в исходном порядке.
// Без фильтра возвращается исходный срез без копирования.
func Filter(items []domain.MenuItem, selector Selector) []domain.MenuItem {
	if selector.IsAll() {
		return items
	}

	result := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Course == selector.course {
			result = append(result, item)
		}
	}
	return result
}
