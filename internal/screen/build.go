package screen

import (
	"fmt"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	"github.com/vladislavdragonenkov/menuboard/internal/menu"
)

// Build строит модель экрана по снимку меню. Снимок не изменяется.
func Build(dest Destination, items []domain.MenuItem) (View, error) {
	switch d := dest.(type) {
	case Home:
		return buildHome(items), nil
	case Category:
		if !d.Course.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrCourseUnknown, d.Course)
		}
		return buildCategory(d.Course, items), nil
	case FilterByCourse:
		return buildFilter(d.Selected, items), nil
	case AddMenuItem:
		return buildAddItem(), nil
	case nil:
		return nil, fmt.Errorf("%w: nil", domain.ErrDestinationUnknown)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrDestinationUnknown, dest.Name())
	}
}

func buildHome(items []domain.MenuItem) HomeView {
	averages := menu.CourseAverages(items)
	view := HomeView{
		TotalItems: menu.TotalCount(items),
		Averages:   make([]CourseAverageView, 0, len(averages)),
		Latest:     itemViews(menu.Latest(items)),
		Courses:    make([]CourseLink, 0, len(averages)),
		Items:      itemViews(items),
	}
	for _, avg := range averages {
		view.Averages = append(view.Averages, CourseAverageView{
			Course:      avg.Course,
			Label:       avg.Course.Label(),
			Average:     avg.Average,
			AverageText: priceText(avg.Average),
			Count:       avg.Count,
		})
		view.Courses = append(view.Courses, CourseLink{
			Course: avg.Course,
			Label:  avg.Course.Label(),
			Target: Category{Course: avg.Course},
		})
	}
	return view
}

func buildCategory(course domain.Course, items []domain.MenuItem) CategoryView {
	selected := menu.Filter(items, menu.OnlyCourse(course))
	avg := menu.AveragePrice(selected, course)
	view := CategoryView{
		Course:      course,
		Label:       course.Label(),
		Average:     avg,
		AverageText: priceText(avg),
		Items:       itemViews(selected),
	}
	if len(selected) == 0 {
		view.EmptyMessage = EmptyCategoryMessage
	}
	return view
}

func buildFilter(selector menu.Selector, items []domain.MenuItem) FilterView {
	selected, active := selector.Course()
	filtered := menu.Filter(items, selector)

	view := FilterView{
		Selected: selector.String(),
		Tabs:     make([]FilterTab, 0, len(domain.Courses())),
		Items:    itemViews(filtered),
	}
	for _, course := range domain.Courses() {
		view.Tabs = append(view.Tabs, FilterTab{
			Course:   course,
			Label:    course.Label(),
			Selected: active && course == selected,
		})
	}
	if len(filtered) == 0 {
		view.EmptyMessage = EmptyFilterMessage
	}
	return view
}

func buildAddItem() AddItemView {
	courses := domain.Courses()
	view := AddItemView{Courses: make([]CourseOption, 0, len(courses))}
	for _, course := range courses {
		view.Courses = append(view.Courses, CourseOption{Value: course, Label: course.Label()})
	}
	return view
}
