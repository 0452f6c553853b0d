package screen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	"github.com/vladislavdragonenkov/menuboard/internal/menu"
)

func sampleItems() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: "1", Name: "Soup", Price: 10, Course: domain.CourseStarter},
		{ID: "2", Name: "Salad", Price: 20, Course: domain.CourseStarter},
		{ID: "3", Name: "Steak", Price: 15, Course: domain.CourseMain},
		{ID: "4", Name: "Pie", Price: 12.5, Course: domain.CourseDessert},
	}
}

func TestBuildHome(t *testing.T) {
	items := sampleItems()

	view, err := Build(Home{}, items)
	require.NoError(t, err)

	home, ok := view.(HomeView)
	require.True(t, ok)
	require.Equal(t, NameHome, home.Screen())
	require.Equal(t, 4, home.TotalItems)

	require.Len(t, home.Averages, 3)
	require.Equal(t, domain.CourseStarter, home.Averages[0].Course)
	require.Equal(t, "STARTER", home.Averages[0].Label)
	require.InDelta(t, 15, home.Averages[0].Average, 1e-9)
	require.Equal(t, "R15.00", home.Averages[0].AverageText)
	require.Equal(t, 2, home.Averages[0].Count)
	require.Equal(t, "R12.50", home.Averages[2].AverageText)

	require.Len(t, home.Latest, 3)
	require.Equal(t, []string{"4", "3", "2"}, []string{home.Latest[0].ID, home.Latest[1].ID, home.Latest[2].ID})

	require.Len(t, home.Courses, 3)
	require.Equal(t, Category{Course: domain.CourseMain}, home.Courses[1].Target)

	require.Len(t, home.Items, 4)
	require.Equal(t, "Soup", home.Items[0].Name)
	require.Equal(t, "STARTER", home.Items[0].CourseLabel)
	require.Equal(t, "R10.00", home.Items[0].PriceText)
}

func TestBuildHome_EmptyMenu(t *testing.T) {
	view, err := Build(Home{}, nil)
	require.NoError(t, err)

	home := view.(HomeView)
	require.Zero(t, home.TotalItems)
	require.Empty(t, home.Latest)
	require.Empty(t, home.Items)
	for _, avg := range home.Averages {
		require.Zero(t, avg.Average)
		require.Equal(t, "R0.00", avg.AverageText)
	}
}

func TestBuildCategory(t *testing.T) {
	view, err := Build(Category{Course: domain.CourseStarter}, sampleItems())
	require.NoError(t, err)

	category := view.(CategoryView)
	require.Equal(t, "STARTER", category.Label)
	require.Len(t, category.Items, 2)
	require.Equal(t, "R15.00", category.AverageText)
	require.Empty(t, category.EmptyMessage)
}

func TestBuildCategory_Empty(t *testing.T) {
	items := sampleItems()[:3]

	view, err := Build(Category{Course: domain.CourseDessert}, items)
	require.NoError(t, err)

	category := view.(CategoryView)
	require.Empty(t, category.Items)
	require.Equal(t, EmptyCategoryMessage, category.EmptyMessage)
	require.Equal(t, "R0.00", category.AverageText)
}

func TestBuildCategory_UnknownCourse(t *testing.T) {
	_, err := Build(Category{Course: "drinks"}, sampleItems())
	require.ErrorIs(t, err, domain.ErrCourseUnknown)
}

func TestBuildFilter(t *testing.T) {
	items := sampleItems()

	view, err := Build(FilterByCourse{Selected: menu.OnlyCourse(domain.CourseMain)}, items)
	require.NoError(t, err)

	filter := view.(FilterView)
	require.Equal(t, "main", filter.Selected)
	require.Len(t, filter.Items, 1)
	require.Equal(t, "Steak", filter.Items[0].Name)
	require.Len(t, filter.Tabs, 3)
	require.False(t, filter.Tabs[0].Selected)
	require.True(t, filter.Tabs[1].Selected)
	require.Empty(t, filter.EmptyMessage)

	view, err = Build(FilterByCourse{}, items)
	require.NoError(t, err)

	cleared := view.(FilterView)
	require.Equal(t, "all", cleared.Selected)
	require.Len(t, cleared.Items, len(items))
	for _, tab := range cleared.Tabs {
		require.False(t, tab.Selected)
	}
}

func TestBuildFilter_Empty(t *testing.T) {
	view, err := Build(FilterByCourse{Selected: menu.OnlyCourse(domain.CourseDessert)}, sampleItems()[:3])
	require.NoError(t, err)
	require.Equal(t, EmptyFilterMessage, view.(FilterView).EmptyMessage)
}

func TestBuildAddItem(t *testing.T) {
	view, err := Build(AddMenuItem{}, nil)
	require.NoError(t, err)

	form := view.(AddItemView)
	require.Equal(t, []CourseOption{
		{Value: domain.CourseStarter, Label: "STARTER"},
		{Value: domain.CourseMain, Label: "MAIN"},
		{Value: domain.CourseDessert, Label: "DESSERT"},
	}, form.Courses)
}

func TestBuild_NilDestination(t *testing.T) {
	_, err := Build(nil, sampleItems())
	require.ErrorIs(t, err, domain.ErrDestinationUnknown)
}

func TestBuild_DoesNotMutateSnapshot(t *testing.T) {
	items := sampleItems()
	before := append([]domain.MenuItem(nil), items...)

	for _, dest := range []Destination{Home{}, Category{Course: domain.CourseMain}, FilterByCourse{Selected: menu.OnlyCourse(domain.CourseStarter)}} {
		_, err := Build(dest, items)
		require.NoError(t, err)
	}
	require.Equal(t, before, items)
}

func TestNewItemView_InvalidPrice(t *testing.T) {
	view := NewItemView(domain.MenuItem{ID: "x", Name: "Broken", Price: -1, Course: "drinks"})
	require.Empty(t, view.PriceText)
	require.Equal(t, "DRINKS", view.CourseLabel)
}
