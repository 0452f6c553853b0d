package grpcsvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName — полное имя gRPC-сервиса меню.
const ServiceName = "menu.v1.MenuService"

const (
	methodGetScreen  = "/" + ServiceName + "/GetScreen"
	methodListItems  = "/" + ServiceName + "/ListItems"
	methodAddItem    = "/" + ServiceName + "/AddItem"
	methodRemoveItem = "/" + ServiceName + "/RemoveItem"
)

// MenuServiceServer — серверная часть menu.v1.MenuService.
// Сообщения описаны well-known типами, поэтому сгенерированный код не нужен.
type MenuServiceServer interface {
	GetScreen(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListItems(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	AddItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveItem(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// MenuServiceDesc описывает сервис для grpc.Server.
var MenuServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MenuServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetScreen", Handler: getScreenHandler},
		{MethodName: "ListItems", Handler: listItemsHandler},
		{MethodName: "AddItem", Handler: addItemHandler},
		{MethodName: "RemoveItem", Handler: removeItemHandler},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterMenuServiceServer регистрирует реализацию на сервере.
func RegisterMenuServiceServer(registrar grpc.ServiceRegistrar, srv MenuServiceServer) {
	registrar.RegisterService(&MenuServiceDesc, srv)
}

func getScreenHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MenuServiceServer).GetScreen(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetScreen}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MenuServiceServer).GetScreen(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listItemsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MenuServiceServer).ListItems(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListItems}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MenuServiceServer).ListItems(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func addItemHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MenuServiceServer).AddItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodAddItem}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MenuServiceServer).AddItem(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func removeItemHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MenuServiceServer).RemoveItem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRemoveItem}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MenuServiceServer).RemoveItem(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// MenuClient — клиент menu.v1.MenuService.
type MenuClient struct {
	cc grpc.ClientConnInterface
}

// NewMenuClient создаёт клиента поверх соединения.
func NewMenuClient(cc grpc.ClientConnInterface) *MenuClient {
	return &MenuClient{cc: cc}
}

// GetScreen запрашивает модель экрана.
func (c *MenuClient) GetScreen(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodGetScreen, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListItems запрашивает список блюд с необязательным фильтром по разделу.
func (c *MenuClient) ListItems(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodListItems, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AddItem добавляет блюдо.
func (c *MenuClient) AddItem(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodAddItem, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveItem удаляет блюдо.
func (c *MenuClient) RemoveItem(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, methodRemoveItem, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
