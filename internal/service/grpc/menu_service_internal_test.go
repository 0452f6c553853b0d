package grpcsvc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	"github.com/vladislavdragonenkov/menuboard/internal/screen"
)

func TestNewMenuService_NilLogger(t *testing.T) {
	svc := NewMenuService(nil, nil)
	require.NotNil(t, svc.logger)
}

func TestToStatus_Mapping(t *testing.T) {
	svc := NewMenuService(nil, nil)

	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"validation", fmt.Errorf("wrap: %w", domain.ErrNameRequired), codes.InvalidArgument},
		{"joined validation", errors.Join(domain.ErrNameRequired, domain.ErrCourseUnknown), codes.InvalidArgument},
		{"not found", fmt.Errorf("get: %w", domain.ErrMenuItemNotFound), codes.NotFound},
		{"exists", domain.ErrMenuItemExists, codes.AlreadyExists},
		{"canceled", context.Canceled, codes.Canceled},
		{"deadline", fmt.Errorf("load: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{"internal", errors.New("disk on fire"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.toStatus(tt.err, "test", "failed")
			require.Equal(t, tt.want, status.Code(err))
		})
	}
}

func TestToStruct_AddsScreenName(t *testing.T) {
	result, err := toStruct(screen.AddItemView{Courses: []screen.CourseOption{{Value: domain.CourseMain, Label: "MAIN"}}})
	require.NoError(t, err)
	require.Equal(t, screen.NameAddMenuItem, result.GetFields()["screen"].GetStringValue())
	require.Len(t, result.GetFields()["courses"].GetListValue().GetValues(), 1)
}
