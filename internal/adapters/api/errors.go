package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/starlane/internal/adapters/metrics"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeValidationError = "validation_error"
	ErrCodeNotFound        = "not_found"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeInternalError   = "internal_error"
)

// ErrorBody is the payload of every error response
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse wraps ErrorBody under the "error" key
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// respondError aborts with a standardized JSON error. collector may be nil.
func respondError(c *gin.Context, collector *metrics.HTTPMetricsCollector, status int, code, message string) {
	if collector != nil {
		collector.RecordError(code)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
	}})
}

// respondHandlerError maps application errors to HTTP statuses
func (h *Handler) respondHandlerError(c *gin.Context, err error) {
	var validationErr *shared.ValidationError
	var notFoundErr *shared.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		respondError(c, h.httpMetrics, http.StatusBadRequest, ErrCodeValidationError, validationErr.Error())
	case errors.As(err, &notFoundErr):
		respondError(c, h.httpMetrics, http.StatusNotFound, ErrCodeNotFound, notFoundErr.Error())
	default:
		h.log.WithError(err).WithField(RequestIDKey, c.GetString(RequestIDKey)).Error("request failed")
		respondError(c, h.httpMetrics, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}
