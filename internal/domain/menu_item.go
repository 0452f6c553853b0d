package domain

import (
	"math"
	"strings"
	"time"
)

// MenuItem представляет одно блюдо в меню.
type MenuItem struct {
	// ID назначается при создании и больше не меняется.
	ID          string
	Name        string
	Description string
	// Price — неотрицательная сумма без привязки к валюте.
	Price  float64
	Course Course
	// CreatedAt нужен только для аудита: «новизна» блюда определяется его позицией в коллекции.
	CreatedAt time.Time
}

// ValidateInvariants проверяет инварианты блюда и возвращает список замечаний.
func (i *MenuItem) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(i.ID) == "" {
		errs = append(errs, ErrMenuItemIDRequired)
	}
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if err := ValidatePrice(i.Price); err != nil {
		errs = append(errs, err)
	}
	if !i.Course.Valid() {
		errs = append(errs, ErrCourseUnknown)
	}

	return errs
}

// ValidatePrice проверяет, что цена конечна и неотрицательна.
func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrPriceNotFinite
	}
	if price < 0 {
		return ErrPriceNegative
	}
	return nil
}
