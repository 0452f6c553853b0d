// Package screen строит модели экранов меню из снимка блюд.
// Отрисовка остаётся на стороне клиента: пакет возвращает только данные.
package screen

import (
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	"github.com/vladislavdragonenkov/menuboard/internal/menu"
)

// Имена экранов, используемые в запросах и метриках.
const (
	NameHome        = "home"
	NameCategory    = "category"
	NameFilter      = "filter"
	NameAddMenuItem = "add-item"
)

// ParamCourse — параметр навигации с разделом меню.
const ParamCourse = "course"

// Destination — экран, на который можно перейти. Набор реализаций закрыт.
type Destination interface {
	Name() string
	isDestination()
}

// Home главный экран.
type Home struct{}

// Category — список блюд одного раздела.
type Category struct {
	Course domain.Course
}

// FilterByCourse — список блюд с необязательным фильтром по разделу.
type FilterByCourse struct {
	Selected menu.Selector
}

// AddMenuItem открывает форму добавления блюда.
type AddMenuItem struct{}

func (Home) Name() string           { return NameHome }
func (Category) Name() string       { return NameCategory }
func (FilterByCourse) Name() string { return NameFilter }
func (AddMenuItem) Name() string    { return NameAddMenuItem }

func (Home) isDestination()           {}
func (Category) isDestination()       {}
func (FilterByCourse) isDestination() {}
func (AddMenuItem) isDestination()    {}

// ParseDestination собирает экран по имени и строковым параметрам.
// Раздел для Category обязателен, для FilterByCourse необязателен.
func ParseDestination(name string, params map[string]string) (Destination, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameHome, "":
		return Home{}, nil
	case NameCategory:
		course, err := domain.ParseCourse(params[ParamCourse])
		if err != nil {
			return nil, err
		}
		return Category{Course: course}, nil
	case NameFilter:
		selector, err := menu.ParseSelector(params[ParamCourse])
		if err != nil {
			return nil, err
		}
		return FilterByCourse{Selected: selector}, nil
	case NameAddMenuItem:
		return AddMenuItem{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrDestinationUnknown, name)
	}
}
