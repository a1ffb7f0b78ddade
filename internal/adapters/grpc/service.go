// Package grpc exposes the route queries as a gRPC service.
//
// Messages travel as google.protobuf.Struct values; the field layout of each
// request and reply is described by the wire types in messages.go.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "starlane.routing.v1.RouteService"

// Method names served by RouteService
const (
	MethodPlanRoute        = "PlanRoute"
	MethodReachableSystems = "ReachableSystems"
	MethodGetSystem        = "GetSystem"
)

// RouteServiceServer is the server API for RouteService
type RouteServiceServer interface {
	PlanRoute(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ReachableSystems(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetSystem(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// RouteServiceDesc describes RouteService for grpc.Server registration
var RouteServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RouteServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: MethodPlanRoute,
			Handler:    unaryHandler(MethodPlanRoute, RouteServiceServer.PlanRoute),
		},
		{
			MethodName: MethodReachableSystems,
			Handler:    unaryHandler(MethodReachableSystems, RouteServiceServer.ReachableSystems),
		},
		{
			MethodName: MethodGetSystem,
			Handler:    unaryHandler(MethodGetSystem, RouteServiceServer.GetSystem),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "starlane/routing/v1/route_service.proto",
}

// RegisterRouteServiceServer registers srv with the gRPC server
func RegisterRouteServiceServer(s grpc.ServiceRegistrar, srv RouteServiceServer) {
	s.RegisterService(&RouteServiceDesc, srv)
}

// FullMethod returns the "/service/method" path of a RouteService method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type unaryMethod func(RouteServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryMethod) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RouteServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(RouteServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
