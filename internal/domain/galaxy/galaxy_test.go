package galaxy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

func addSystem(t *testing.T, g *galaxy.Galaxy, symbol string, x, y float64) *galaxy.System {
	t.Helper()
	pos, err := shared.NewPosition(x, y)
	require.NoError(t, err)
	system, err := g.AddSystem(symbol, pos, 0)
	require.NoError(t, err)
	return system
}

func TestGalaxy_AddSystem_Validation(t *testing.T) {
	g := galaxy.New()
	addSystem(t, g, "Sol", 0, 0)

	_, err := g.AddSystem("", shared.Position{}, 0)
	var vErr *shared.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "symbol", vErr.Field)

	_, err = g.AddSystem("Sol", shared.Position{}, 0)
	require.True(t, errors.As(err, &vErr))

	_, err = g.AddSystem("Vega", shared.Position{}, -1)
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "danger", vErr.Field)

	assert.Equal(t, 1, g.Len())
}

func TestGalaxy_AddHyperlane_IsBidirectionalAndIdempotent(t *testing.T) {
	g := galaxy.New()
	sol := addSystem(t, g, "Sol", 0, 0)
	vega := addSystem(t, g, "Vega", 10, 0)

	require.NoError(t, g.AddHyperlane("Sol", "Vega"))
	require.NoError(t, g.AddHyperlane("Vega", "Sol"))

	assert.Equal(t, []*galaxy.System{vega}, sol.Links())
	assert.Equal(t, []*galaxy.System{sol}, vega.Links())
	assert.Len(t, g.Links(), 2)
}

func TestGalaxy_AddLink_Errors(t *testing.T) {
	g := galaxy.New()
	addSystem(t, g, "Sol", 0, 0)

	err := g.AddLink("Sol", "Sol")
	var vErr *shared.ValidationError
	assert.True(t, errors.As(err, &vErr))

	err = g.AddLink("Sol", "Nowhere")
	var nfErr *shared.NotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, "Nowhere", nfErr.Key)
}

func TestGalaxy_AddLink_OneWay(t *testing.T) {
	g := galaxy.New()
	sol := addSystem(t, g, "Sol", 0, 0)
	vega := addSystem(t, g, "Vega", 10, 0)

	require.NoError(t, g.AddLink("Sol", "Vega"))

	assert.True(t, sol.HasLinkTo(vega))
	assert.False(t, vega.HasLinkTo(sol))
}

func TestGalaxy_AddWormhole_Cycle(t *testing.T) {
	g := galaxy.New()
	a := addSystem(t, g, "A", 0, 0)
	b := addSystem(t, g, "B", 500, 0)
	c := addSystem(t, g, "C", 0, 500)

	wormhole, err := g.AddWormhole("Ring", "", "A", "B", "C")
	require.NoError(t, err)

	assert.Equal(t, b, wormhole.Destination(a))
	assert.Equal(t, c, wormhole.Destination(b))
	assert.Equal(t, a, wormhole.Destination(c))
	assert.False(t, wormhole.IsRestricted())

	require.Len(t, a.WormholeLinks(), 1)
	assert.Equal(t, b, a.WormholeLinks()[0].To)
	assert.Equal(t, wormhole, a.WormholeLinks()[0].Wormhole)
}

func TestGalaxy_AddWormhole_Validation(t *testing.T) {
	g := galaxy.New()
	addSystem(t, g, "A", 0, 0)
	addSystem(t, g, "B", 1, 0)

	_, err := g.AddWormhole("W", "", "A")
	assert.Error(t, err)

	_, err = g.AddWormhole("W", "", "A", "A")
	assert.Error(t, err)

	_, err = g.AddWormhole("W", "", "A", "Z")
	var nfErr *shared.NotFoundError
	assert.True(t, errors.As(err, &nfErr))

	_, err = g.AddWormhole("W", "MODULE_WORMHOLE_KEY", "A", "B")
	require.NoError(t, err)
	_, err = g.AddWormhole("W", "", "A", "B")
	assert.Error(t, err)

	wormhole, ok := g.Wormhole("W")
	require.True(t, ok)
	assert.True(t, wormhole.IsRestricted())
}

func TestGalaxy_JumpNeighbors(t *testing.T) {
	g := galaxy.New()
	sol := addSystem(t, g, "Sol", 0, 0)
	near := addSystem(t, g, "Alpha", 60, 80) // distance 100
	addSystem(t, g, "Far", 200, 0)

	assert.Equal(t, []*galaxy.System{near}, sol.JumpNeighbors(100))
	assert.Empty(t, sol.JumpNeighbors(99))
	assert.Empty(t, sol.JumpNeighbors(0))
}

func TestGalaxy_JumpNeighbors_SystemRangeOverridesShip(t *testing.T) {
	g := galaxy.New()
	sol := addSystem(t, g, "Sol", 0, 0)
	addSystem(t, g, "Alpha", 50, 0)
	far := addSystem(t, g, "Far", 200, 0)

	require.NoError(t, g.SetJumpRange("Sol", 250))

	neighbors := sol.JumpNeighbors(10)
	assert.Len(t, neighbors, 2)
	assert.Contains(t, neighbors, far)

	assert.Error(t, g.SetJumpRange("Sol", -5))
}

func TestGalaxy_Systems_SortedBySymbol(t *testing.T) {
	g := galaxy.New()
	addSystem(t, g, "Vega", 0, 0)
	addSystem(t, g, "Altair", 1, 0)
	addSystem(t, g, "Sol", 2, 0)

	var symbols []string
	for _, system := range g.Systems() {
		symbols = append(symbols, system.Symbol())
	}
	assert.Equal(t, []string{"Altair", "Sol", "Vega"}, symbols)
}

func TestGalaxy_JumpNeighbors_IncludeHyperlanesBeyondRange(t *testing.T) {
	g := galaxy.New()
	sol := addSystem(t, g, "Sol", 0, 0)
	near := addSystem(t, g, "Alpha", 50, 0)
	far := addSystem(t, g, "Far", 500, 0)
	require.NoError(t, g.AddHyperlane("Sol", "Far"))
	require.NoError(t, g.AddHyperlane("Sol", "Alpha"))

	assert.Equal(t, []*galaxy.System{near, far}, sol.JumpNeighbors(100), "each neighbour listed once")
	assert.Equal(t, []*galaxy.System{near, far}, sol.JumpNeighbors(0))
	assert.True(t, sol.InJumpRange(near, 100))
	assert.False(t, sol.InJumpRange(far, 100))
	assert.False(t, sol.InJumpRange(near, 0))
}
