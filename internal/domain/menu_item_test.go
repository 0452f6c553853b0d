package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestMenuItem_ValidateInvariants_OK(t *testing.T) {
	item := MenuItem{
		ID:        "item-1",
		Name:      "Bruschetta",
		Price:     45,
		Course:    CourseStarter,
		CreatedAt: time.Now().UTC(),
	}

	if errs := item.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestMenuItem_ValidateInvariants_ZeroPriceAllowed(t *testing.T) {
	item := MenuItem{ID: "item-1", Name: "Water", Price: 0, Course: CourseMain}

	if errs := item.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestMenuItem_ValidateInvariants_Collects(t *testing.T) {
	item := MenuItem{Name: "  ", Price: -1, Course: Course("drink")}

	errs := item.ValidateInvariants()
	want := []error{ErrMenuItemIDRequired, ErrNameRequired, ErrPriceNegative, ErrCourseUnknown}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(errs), errs)
	}
	for i := range want {
		if !errors.Is(errs[i], want[i]) {
			t.Errorf("errs[%d] = %v, want %v", i, errs[i], want[i])
		}
	}
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  error
	}{
		{name: "zero", price: 0},
		{name: "positive", price: 12.5},
		{name: "negative", price: -0.01, want: ErrPriceNegative},
		{name: "nan", price: math.NaN(), want: ErrPriceNotFinite},
		{name: "inf", price: math.Inf(1), want: ErrPriceNotFinite},
		{name: "negative inf", price: math.Inf(-1), want: ErrPriceNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrice(tt.price)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("ValidatePrice() = %v, want %v", err, tt.want)
			}
		})
	}
}
