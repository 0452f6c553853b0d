package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "not found error",
			err:  ErrMenuItemNotFound,
			want: true,
		},
		{
			name: "wrapped not found error",
			err:  fmt.Errorf("get item: %w", ErrMenuItemNotFound),
			want: true,
		},
		{
			name: "other error",
			err:  ErrMenuItemExists,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown course",
			err:  ErrCourseUnknown,
			want: true,
		},
		{
			name: "joined price error",
			err:  errors.Join(ErrNameRequired, ErrPriceNegative),
			want: true,
		},
		{
			name: "wrapped parse error",
			err:  fmt.Errorf("%w: %q", ErrCourseUnknown, "drink"),
			want: true,
		},
		{
			name: "not found is not validation",
			err:  ErrMenuItemNotFound,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.want {
				t.Errorf("IsValidation() = %v, want %v", got, tt.want)
			}
		})
	}
}
