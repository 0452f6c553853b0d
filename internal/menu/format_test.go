package menu

import (
	"errors"
	"math"
	"testing"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "R0.00"},
		{12.5, "R12.50"},
		{9.999, "R10.00"},
		{1.005, "R1.01"},
		{45, "R45.00"},
		{1234567.891, "R1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := FormatPrice(tt.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatPrice(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatPrice_RejectsOutOfContract(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  error
	}{
		{name: "negative", value: -1, want: domain.ErrPriceNegative},
		{name: "nan", value: math.NaN(), want: domain.ErrPriceNotFinite},
		{name: "inf", value: math.Inf(1), want: domain.ErrPriceNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatPrice(tt.value)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got != "" {
				t.Fatalf("expected empty string on error, got %q", got)
			}
		})
	}
}

func TestMustFormatPrice_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative price")
		}
	}()
	_ = MustFormatPrice(-5)
}
