package domain

import (
	"fmt"
	"strings"
)

// Course описывает раздел меню, к которому относится блюдо.
type Course string

const (
	// CourseStarter — закуски.
	CourseStarter Course = "starter"
	// CourseMain — основные блюда.
	CourseMain Course = "main"
	// CourseDessert — десерты.
	CourseDessert Course = "dessert"
)

var courseLabels = map[Course]string{
	CourseStarter: "STARTER",
	CourseMain:    "MAIN",
	CourseDessert: "DESSERT",
}

// Courses возвращает известные разделы в порядке отображения.
func Courses() []Course {
	return []Course{CourseStarter, CourseMain, CourseDessert}
}

// Valid сообщает, входит ли значение в закрытый перечень разделов.
func (c Course) Valid() bool {
	_, ok := courseLabels[c]
	return ok
}

// Label возвращает подпись раздела для отображения.
// Для неизвестных значений возвращается исходный текст в верхнем регистре.
func (c Course) Label() string {
	if label, ok := courseLabels[c]; ok {
		return label
	}
	return strings.ToUpper(string(c))
}

func (c Course) String() string {
	return string(c)
}

// ParseCourse разбирает внешнее значение раздела без учёта регистра и пробелов.
func ParseCourse(raw string) (Course, error) {
	c := Course(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrCourseUnknown, raw)
	}
	return c, nil
}
