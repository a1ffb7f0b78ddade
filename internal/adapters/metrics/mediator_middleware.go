package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/starlane/internal/application/mediator"
)

// MediatorMiddleware records duration and outcome of every request the
// mediator handles. A nil collector turns it into a pass-through.
func MediatorMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(RequestName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}

// RequestName strips pointer and package prefixes from a request type,
// so "*queries.PlanRouteQuery" becomes "PlanRouteQuery".
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
