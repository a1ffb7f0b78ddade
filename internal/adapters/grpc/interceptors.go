package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/starlane/internal/application/common"
	"github.com/andrescamacho/starlane/internal/domain/shared"
	"github.com/andrescamacho/starlane/internal/infrastructure/logging"
)

// RequestIDMetadataKey carries the server-generated request id in response headers
const RequestIDMetadataKey = "x-request-id"

// requestLogInterceptor tags every call with a uuid, hands handlers a
// request-scoped logger and logs the outcome.
func requestLogInterceptor(log *logrus.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		id := uuid.New().String()
		entry := log.WithField("request_id", id)

		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if clientIDs := md.Get(RequestIDMetadataKey); len(clientIDs) > 0 {
				entry.WithField("client_request_id", clientIDs[0]).Debug("ignoring client request id")
			}
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDMetadataKey, id))

		ctx = common.WithLogger(ctx, logging.NewContextLogger(entry))
		resp, err := handler(ctx, req)

		fields := logrus.Fields{
			"method":   info.FullMethod,
			"code":     status.Code(err).String(),
			"duration": time.Since(start).String(),
		}
		if err != nil {
			entry.WithFields(fields).WithError(err).Warn("rpc")
		} else {
			entry.WithFields(fields).Info("rpc")
		}
		return resp, err
	}
}

// rateLimitInterceptor rejects calls once the token bucket is empty
func rateLimitInterceptor(limiter *rate.Limiter) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if limiter != nil && !limiter.Allow() {
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}
		return handler(ctx, req)
	}
}

// errorStatusInterceptor turns application errors into gRPC status codes
func errorStatusInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	var validationErr *shared.ValidationError
	var notFoundErr *shared.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Error())
	case errors.As(err, &notFoundErr):
		return status.Error(codes.NotFound, notFoundErr.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
