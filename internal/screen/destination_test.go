package screen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	"github.com/vladislavdragonenkov/menuboard/internal/menu"
)

func TestParseDestination(t *testing.T) {
	tests := []struct {
		name   string
		screen string
		params map[string]string
		want   Destination
	}{
		{name: "home", screen: "home", want: Home{}},
		{name: "empty name is home", screen: "", want: Home{}},
		{name: "category", screen: "category", params: map[string]string{"course": "Main"}, want: Category{Course: domain.CourseMain}},
		{name: "filter without course", screen: "filter", want: FilterByCourse{Selected: menu.AllCourses()}},
		{name: "filter all", screen: "FILTER", params: map[string]string{"course": "all"}, want: FilterByCourse{Selected: menu.AllCourses()}},
		{name: "filter dessert", screen: "filter", params: map[string]string{"course": "dessert"}, want: FilterByCourse{Selected: menu.OnlyCourse(domain.CourseDessert)}},
		{name: "add item", screen: "add-item", want: AddMenuItem{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDestination(tt.screen, tt.params)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseDestination_Errors(t *testing.T) {
	_, err := ParseDestination("cart", nil)
	require.ErrorIs(t, err, domain.ErrDestinationUnknown)

	_, err = ParseDestination("category", nil)
	require.ErrorIs(t, err, domain.ErrCourseUnknown)

	_, err = ParseDestination("category", map[string]string{"course": "drinks"})
	require.ErrorIs(t, err, domain.ErrCourseUnknown)

	_, err = ParseDestination("filter", map[string]string{"course": "drinks"})
	require.ErrorIs(t, err, domain.ErrCourseUnknown)
}

func TestDestinationNames(t *testing.T) {
	require.Equal(t, NameHome, Home{}.Name())
	require.Equal(t, NameCategory, Category{}.Name())
	require.Equal(t, NameFilter, FilterByCourse{}.Name())
	require.Equal(t, NameAddMenuItem, AddMenuItem{}.Name())
}
