package menu

import (
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
)

// CurrencyMarker печатается перед суммой.
const CurrencyMarker = "R"

const priceDecimals = 2

// FormatPrice форматирует цену с двумя знаками после запятой, например R12.50.
// Округление идёт от нуля: 9.999 превращается в R10.00.
// Округляется десятичная запись числа, а не двоичный float: 1.005 даёт R1.01, не R1.00.
func FormatPrice(value float64) (string, error) {
	if err := domain.ValidatePrice(value); err != nil {
		return "", err
	}
	return CurrencyMarker + decimal.NewFromFloat(value).StringFixed(priceDecimals), nil
}

// MustFormatPrice — вариант FormatPrice для цен, уже прошедших валидацию домена.
func MustFormatPrice(value float64) string {
	s, err := FormatPrice(value)
	if err != nil {
		panic(err)
	}
	return s
}
