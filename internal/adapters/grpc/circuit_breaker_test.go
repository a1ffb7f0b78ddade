package grpc_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	routegrpc "github.com/andrescamacho/starlane/internal/adapters/grpc"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

var errUnavailable = errors.New("unavailable")

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Time{})
	cb := routegrpc.NewCircuitBreaker(2, time.Minute, nil, clock)
	failing := func() error { return errUnavailable }

	// Act
	_ = cb.Call(failing)
	_ = cb.Call(failing)
	err := cb.Call(func() error { return nil })

	// Assert
	assert.ErrorIs(t, err, routegrpc.ErrCircuitOpen)
	assert.Equal(t, routegrpc.CircuitOpen, cb.State())
	assert.Equal(t, 2, cb.FailureCount())
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	cb := routegrpc.NewCircuitBreaker(1, time.Minute, nil, clock)
	_ = cb.Call(func() error { return errUnavailable })
	assert.Equal(t, routegrpc.CircuitOpen, cb.State())

	clock.Advance(time.Minute)
	err := cb.Call(func() error { return nil })

	assert.NoError(t, err)
	assert.Equal(t, routegrpc.CircuitClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	cb := routegrpc.NewCircuitBreaker(3, time.Minute, nil, clock)
	for i := 0; i < 3; i++ {
		_ = cb.Call(func() error { return errUnavailable })
	}

	clock.Advance(2 * time.Minute)
	_ = cb.Call(func() error { return errUnavailable })

	assert.Equal(t, routegrpc.CircuitOpen, cb.State())
	assert.Equal(t, "open", cb.State().String())
}

func TestCircuitBreaker_IgnoresNonTrippingErrors(t *testing.T) {
	requestErr := errors.New("bad request")
	cb := routegrpc.NewCircuitBreaker(1, time.Minute, func(err error) bool { return err == errUnavailable }, nil)

	err := cb.Call(func() error { return requestErr })

	assert.ErrorIs(t, err, requestErr)
	assert.Equal(t, routegrpc.CircuitClosed, cb.State())
	assert.Equal(t, 0, cb.FailureCount())
}
