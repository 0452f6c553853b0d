package grpcsvc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	"github.com/vladislavdragonenkov/menuboard/internal/menu"
	"github.com/vladislavdragonenkov/menuboard/internal/screen"
	"github.com/vladislavdragonenkov/menuboard/internal/service/catalog"
)

// Поля запросов GetScreen и AddItem.
const (
	fieldScreen      = "screen"
	fieldCourse      = "course"
	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldItems       = "items"
)

// MenuService реализует gRPC API поверх каталога меню.
type MenuService struct {
	catalog *catalog.Catalog
	logger  *log.Entry
}

var _ MenuServiceServer = (*MenuService)(nil)

// NewMenuService конструирует сервис.
func NewMenuService(c *catalog.Catalog, logger *log.Entry) *MenuService {
	if logger == nil {
		logger = log.New().WithField("component", "menu-service")
	}
	return &MenuService{catalog: c, logger: logger}
}

// GetScreen строит экран по полям screen и course.
func (s *MenuService) GetScreen(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	params := map[string]string{
		screen.ParamCourse: fields[fieldCourse].GetStringValue(),
	}

	dest, err := screen.ParseDestination(fields[fieldScreen].GetStringValue(), params)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	view, err := s.catalog.Screen(ctx, dest)
	if err != nil {
		return nil, s.toStatus(err, "GetScreen", "failed to build screen")
	}

	return toStruct(view)
}

// ListItems возвращает блюда; пустая строка означает все разделы.
func (s *MenuService) ListItems(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	selector, err := menu.ParseSelector(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	items, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, s.toStatus(err, "ListItems", "failed to list menu items")
	}

	filtered := menu.Filter(items, selector)
	list := make([]any, 0, len(filtered))
	for _, item := range filtered {
		list = append(list, itemFields(item))
	}

	result, err := structpb.NewStruct(map[string]any{fieldItems: list})
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode menu items")
	}
	return result, nil
}

// AddItem создаёт блюдо из полей name, description, price и course.
func (s *MenuService) AddItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	fields := req.GetFields()

	price, ok := fields[fieldPrice].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "price must be a number")
	}

	item, err := s.catalog.AddItem(ctx, catalog.NewMenuItem{
		Name:        fields[fieldName].GetStringValue(),
		Description: fields[fieldDescription].GetStringValue(),
		Price:       price.NumberValue,
		Course:      fields[fieldCourse].GetStringValue(),
	})
	if err != nil {
		return nil, s.toStatus(err, "AddItem", "failed to add menu item")
	}

	result, err := structpb.NewStruct(itemFields(item))
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode menu item")
	}
	return result, nil
}

// RemoveItem удаляет блюдо по ID.
func (s *MenuService) RemoveItem(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	if err := s.catalog.RemoveItem(ctx, req.GetValue()); err != nil {
		return nil, s.toStatus(err, "RemoveItem", "failed to remove menu item")
	}
	return &emptypb.Empty{}, nil
}

func (s *MenuService) toStatus(err error, operation, internalMsg string) error {
	switch {
	case domain.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.IsNotFound(err):
		return status.Error(codes.NotFound, domain.ErrMenuItemNotFound.Error())
	case errors.Is(err, domain.ErrMenuItemExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		s.logger.WithError(err).WithField("operation", operation).Error(internalMsg)
		return status.Error(codes.Internal, internalMsg)
	}
}

func itemFields(item domain.MenuItem) map[string]any {
	view := screen.NewItemView(item)
	return map[string]any{
		"id":           view.ID,
		"name":         view.Name,
		"description":  view.Description,
		"price":        view.Price,
		"price_text":   view.PriceText,
		"course":       string(view.Course),
		"course_label": view.CourseLabel,
		"created_at":   item.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// toStruct переводит модель экрана в Struct через её JSON-представление.
func toStruct(view screen.View) (*structpb.Struct, error) {
	payload, err := json.Marshal(view)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode screen")
	}
	result := &structpb.Struct{}
	if err := protojson.Unmarshal(payload, result); err != nil {
		return nil, status.Error(codes.Internal, "failed to encode screen")
	}
	if result.Fields == nil {
		result.Fields = make(map[string]*structpb.Value, 1)
	}
	result.Fields[fieldScreen] = structpb.NewStringValue(view.Screen())
	return result, nil
}
