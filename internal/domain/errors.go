package domain

import "errors"

var (
	// Ошибка отсутствующего идентификатора блюда.
	ErrMenuItemIDRequired = errors.New("menu item id is required")
	// Ошибка пустого названия блюда.
	ErrNameRequired = errors.New("menu item name is required")
	// Ошибка отрицательной цены.
	ErrPriceNegative = errors.New("price must be non-negative")
	// Ошибка NaN или бесконечной цены.
	ErrPriceNotFinite = errors.New("price must be a finite number")
	// Ошибка раздела вне перечня starter/main/dessert.
	ErrCourseUnknown = errors.New("unknown course")
	// ErrMenuItemNotFound возвращается, если блюдо не найдено в репозитории.
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrMenuItemExists возвращается при повторном добавлении блюда с тем же ID.
	ErrMenuItemExists = errors.New("menu item already exists")
	// ErrDestinationUnknown — экран навигации не распознан.
	ErrDestinationUnknown = errors.New("unknown destination")
)

var validationErrors = []error{
	ErrMenuItemIDRequired,
	ErrNameRequired,
	ErrPriceNegative,
	ErrPriceNotFinite,
	ErrCourseUnknown,
	ErrDestinationUnknown,
}

// IsNotFound проверяет, что ошибка означает отсутствие блюда.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMenuItemNotFound)
}

// IsValidation проверяет, относится ли ошибка к нарушению входных данных.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
