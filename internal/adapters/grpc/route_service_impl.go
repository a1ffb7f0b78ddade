package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/starlane/internal/application/mediator"
	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
)

// routeServiceImpl implements RouteServiceServer by dispatching to the mediator
type routeServiceImpl struct {
	mediator mediator.Mediator
}

func newRouteServiceImpl(m mediator.Mediator) *routeServiceImpl {
	return &routeServiceImpl{mediator: m}
}

// PlanRoute plans the best route to a destination
func (s *routeServiceImpl) PlanRoute(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var request PlanRouteRequest
	if err := decode(in, &request); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	response, err := s.mediator.Send(ctx, request.toQuery())
	if err != nil {
		return nil, err
	}
	return encode(planRouteReplyFrom(response.(*routingQueries.PlanRouteResponse)))
}

// ReachableSystems lists the systems reachable from a start
func (s *routeServiceImpl) ReachableSystems(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var request ReachableSystemsRequest
	if err := decode(in, &request); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	response, err := s.mediator.Send(ctx, request.toQuery())
	if err != nil {
		return nil, err
	}
	return encode(reachableSystemsReplyFrom(response.(*routingQueries.ReachableSystemsResponse)))
}

// GetSystem describes one system
func (s *routeServiceImpl) GetSystem(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var request GetSystemRequest
	if err := decode(in, &request); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	response, err := s.mediator.Send(ctx, &routingQueries.GetSystemQuery{Symbol: request.Symbol})
	if err != nil {
		return nil, err
	}
	return encode(getSystemReplyFrom(response.(*routingQueries.SystemDetails)))
}
