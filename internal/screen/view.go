package screen

import (
	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	"github.com/vladislavdragonenkov/menuboard/internal/menu"
)

// Тексты пустых списков.
const (
	EmptyCategoryMessage = "No items in this course."
	EmptyFilterMessage   = "No items match this filter."
)

// View — модель экрана, готовая к сериализации.
type View interface {
	Screen() string
}

// ItemView — строка списка блюд.
type ItemView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	PriceText   string        `json:"price_text"`
	Course      domain.Course `json:"course"`
	CourseLabel string        `json:"course_label"`
}

// CourseAverageView — средняя цена раздела на главном экране.
type CourseAverageView struct {
	Course      domain.Course `json:"course"`
	Label       string        `json:"label"`
	Average     float64       `json:"average"`
	AverageText string        `json:"average_text"`
	Count       int           `json:"count"`
}

// CourseLink ведёт на экран раздела.
type CourseLink struct {
	Course domain.Course `json:"course"`
	Label  string        `json:"label"`
	Target Category      `json:"-"`
}

// HomeView — главный экран.
type HomeView struct {
	TotalItems int                 `json:"total_items"`
	Averages   []CourseAverageView `json:"averages"`
	Latest     []ItemView          `json:"latest"`
	Courses    []CourseLink        `json:"courses"`
	Items      []ItemView          `json:"items"`
}

// CategoryView — блюда одного раздела.
type CategoryView struct {
	Course       domain.Course `json:"course"`
	Label        string        `json:"label"`
	Average      float64       `json:"average"`
	AverageText  string        `json:"average_text"`
	Items        []ItemView    `json:"items"`
	EmptyMessage string        `json:"empty_message,omitempty"`
}

// FilterTab вкладка фильтра.
type FilterTab struct {
	Course   domain.Course `json:"course"`
	Label    string        `json:"label"`
	Selected bool          `json:"selected"`
}

// FilterView — экран фильтрации по разделу.
type FilterView struct {
	Selected     string      `json:"selected"`
	Tabs         []FilterTab `json:"tabs"`
	Items        []ItemView  `json:"items"`
	EmptyMessage string      `json:"empty_message,omitempty"`
}

// CourseOption вариант раздела в форме добавления.
type CourseOption struct {
	Value domain.Course `json:"value"`
	Label string        `json:"label"`
}

// AddItemView описывает форму добавления блюда.
type AddItemView struct {
	Courses []CourseOption `json:"courses"`
}

func (HomeView) Screen() string     { return NameHome }
func (CategoryView) Screen() string { return NameCategory }
func (FilterView) Screen() string   { return NameFilter }
func (AddItemView) Screen() string  { return NameAddMenuItem }

// NewItemView переводит блюдо в строку списка.
func NewItemView(item domain.MenuItem) ItemView {
	return ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		PriceText:   priceText(item.Price),
		Course:      item.Course,
		CourseLabel: item.Course.Label(),
	}
}

func itemViews(items []domain.MenuItem) []ItemView {
	result := make([]ItemView, 0, len(items))
	for _, item := range items {
		result = append(result, NewItemView(item))
	}
	return result
}

// priceText не паникует на данных из хранилища, прошедших мимо валидации.
func priceText(v float64) string {
	text, err := menu.FormatPrice(v)
	if err != nil {
		return ""
	}
	return text
}
