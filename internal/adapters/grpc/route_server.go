package grpc

import (
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/andrescamacho/starlane/internal/application/mediator"
)

// RouteServer serves RouteService over gRPC
type RouteServer struct {
	grpcServer *grpc.Server
	log        *logrus.Logger
}

// NewRouteServer creates a server dispatching to m.
// limiter may be nil to disable rate limiting.
func NewRouteServer(m mediator.Mediator, log *logrus.Logger, limiter *rate.Limiter) *RouteServer {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			requestLogInterceptor(log),
			rateLimitInterceptor(limiter),
			errorStatusInterceptor,
		),
	)
	RegisterRouteServiceServer(grpcServer, newRouteServiceImpl(m))

	return &RouteServer{
		grpcServer: grpcServer,
		log:        log,
	}
}

// Serve accepts connections on lis until the server stops
func (s *RouteServer) Serve(lis net.Listener) error {
	s.log.WithField("address", lis.Addr().String()).Info("gRPC route service listening")
	if err := s.grpcServer.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("gRPC server error: %w", err)
	}
	return nil
}

// GracefulStop stops accepting calls and waits for in-flight ones
func (s *RouteServer) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// Stop closes every connection immediately
func (s *RouteServer) Stop() {
	s.grpcServer.Stop()
}
