package shared_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane/internal/domain/shared"
)

func TestPosition_DistanceTo(t *testing.T) {
	a, err := shared.NewPosition(0, 0)
	require.NoError(t, err)
	b, err := shared.NewPosition(3, 4)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-9)
	assert.InDelta(t, 5.0, b.DistanceTo(a), 1e-9)
	assert.Zero(t, a.DistanceTo(a))
}

func TestNewPosition_RejectsNonFinite(t *testing.T) {
	_, err := shared.NewPosition(math.NaN(), 0)
	require.Error(t, err)

	var vErr *shared.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "x", vErr.Field)

	_, err = shared.NewPosition(0, math.Inf(1))
	require.Error(t, err)
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "y", vErr.Field)
}

func TestNotFoundError_Message(t *testing.T) {
	err := shared.NewNotFoundError("system", "Sol")

	assert.Equal(t, "system Sol not found", err.Error())
	assert.Equal(t, "system", err.Kind)
	assert.Equal(t, "Sol", err.Key)
}
