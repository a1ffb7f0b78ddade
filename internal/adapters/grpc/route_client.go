package grpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
)

// Circuit breaker defaults for RouteClient
const (
	clientMaxFailures  = 5
	clientOpenDuration = 30 * time.Second
)

// RouteClient calls a remote RouteService
type RouteClient struct {
	conn    *grpc.ClientConn
	breaker *CircuitBreaker
}

// NewRouteClient creates a client for the route service at address.
// Extra dial options are appended after the insecure transport credentials.
func NewRouteClient(address string, opts ...grpc.DialOption) (*RouteClient, error) {
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to route service at %s: %w", address, err)
	}

	return &RouteClient{
		conn:    conn,
		breaker: NewCircuitBreaker(clientMaxFailures, clientOpenDuration, isServerFailure, nil),
	}, nil
}

// Close closes the gRPC connection
func (c *RouteClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Breaker exposes the client's circuit breaker
func (c *RouteClient) Breaker() *CircuitBreaker {
	return c.breaker
}

// PlanRoute plans a route on the remote service
func (c *RouteClient) PlanRoute(ctx context.Context, query *routingQueries.PlanRouteQuery) (*routingQueries.PlanRouteResponse, error) {
	var reply PlanRouteReply
	if err := c.invoke(ctx, MethodPlanRoute, planRouteRequestFrom(query), &reply); err != nil {
		return nil, err
	}
	return reply.toResponse(), nil
}

// ReachableSystems builds a distance map on the remote service
func (c *RouteClient) ReachableSystems(ctx context.Context, query *routingQueries.ReachableSystemsQuery) (*routingQueries.ReachableSystemsResponse, error) {
	var reply ReachableSystemsReply
	if err := c.invoke(ctx, MethodReachableSystems, reachableSystemsRequestFrom(query), &reply); err != nil {
		return nil, err
	}
	return reply.toResponse(), nil
}

// GetSystem describes a system known to the remote service
func (c *RouteClient) GetSystem(ctx context.Context, query *routingQueries.GetSystemQuery) (*routingQueries.SystemDetails, error) {
	var reply GetSystemReply
	if err := c.invoke(ctx, MethodGetSystem, &GetSystemRequest{Symbol: query.Symbol}, &reply); err != nil {
		return nil, err
	}
	return reply.toDetails(), nil
}

func (c *RouteClient) invoke(ctx context.Context, method string, request, reply interface{}) error {
	in, err := encode(request)
	if err != nil {
		return err
	}

	out := &structpb.Struct{}
	err = c.breaker.Call(func() error {
		return c.conn.Invoke(ctx, FullMethod(method), in, out)
	})
	if err != nil {
		return fmt.Errorf("gRPC %s failed: %w", method, err)
	}
	return decode(out, reply)
}

// isServerFailure reports whether err says the server, not the request, is at fault
func isServerFailure(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.Internal, codes.DeadlineExceeded, codes.Unknown:
		return true
	default:
		return false
	}
}
