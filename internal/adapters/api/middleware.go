package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/starlane/internal/adapters/metrics"
	"github.com/andrescamacho/starlane/internal/application/common"
	"github.com/andrescamacho/starlane/internal/infrastructure/logging"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// RequestIDHeader carries the request id on responses
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request a server-generated uuid.
// A client supplied id is only logged, never trusted.
func RequestID(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			log.WithField("client_request_id", clientID).Debug("ignoring client request id")
		}

		id := uuid.New().String()
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// ContextLogger puts a request-scoped logger into the request context so
// application handlers log with the request id attached.
func ContextLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry := log.WithField(RequestIDKey, c.GetString(RequestIDKey))
		ctx := common.WithLogger(c.Request.Context(), logging.NewContextLogger(entry))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(RequestIDKey); exists {
			fields[RequestIDKey] = rid
		}
		log.WithFields(fields).Info("request")
	}
}

// RateLimit rejects requests once the shared token bucket is empty
func RateLimit(limiter *rate.Limiter, collector *metrics.HTTPMetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			respondError(c, collector, http.StatusTooManyRequests, ErrCodeRateLimited, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

// RequestMetrics records duration and status of every request
func RequestMetrics(collector *metrics.HTTPMetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		collector.RecordRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
