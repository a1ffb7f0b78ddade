package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane/internal/domain/routing"
)

func TestRouteEdge_Less(t *testing.T) {
	tests := []struct {
		name     string
		a, b     routing.RouteEdge
		expected bool
	}{
		{name: "fewer days wins over fuel", a: routing.RouteEdge{Days: 1, Fuel: 500}, b: routing.RouteEdge{Days: 2, Fuel: 0}, expected: true},
		{name: "more days loses", a: routing.RouteEdge{Days: 3}, b: routing.RouteEdge{Days: 2}, expected: false},
		{name: "same days less fuel", a: routing.RouteEdge{Days: 2, Fuel: 100}, b: routing.RouteEdge{Days: 2, Fuel: 200}, expected: true},
		{name: "same days and fuel less danger", a: routing.RouteEdge{Days: 2, Fuel: 100, Danger: 0.5}, b: routing.RouteEdge{Days: 2, Fuel: 100, Danger: 1}, expected: true},
		{name: "equal edges", a: routing.RouteEdge{Days: 2, Fuel: 100, Danger: 1}, b: routing.RouteEdge{Days: 2, Fuel: 100, Danger: 1}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Less(tt.b))
		})
	}
}

func TestParseWormholeStrategy(t *testing.T) {
	for _, strategy := range []routing.WormholeStrategy{routing.NeverUsable, routing.AlwaysUsable, routing.UsableIfMapped} {
		parsed, err := routing.ParseWormholeStrategy(strategy.String())
		require.NoError(t, err)
		assert.Equal(t, strategy, parsed)
	}

	parsed, err := routing.ParseWormholeStrategy(" Always ")
	require.NoError(t, err)
	assert.Equal(t, routing.AlwaysUsable, parsed)

	_, err = routing.ParseWormholeStrategy("sometimes")
	assert.Error(t, err)
}

func TestQuery_Defaults(t *testing.T) {
	g := chain(t, "A", "B")
	ship := newShip(t, "A", 120, 300, 80)

	fromSystem := routing.FromSystem(sys(t, g, "A"))
	assert.Equal(t, routing.StartSystem, fromSystem.Kind())
	assert.Equal(t, routing.NeverUsable, fromSystem.Wormholes())
	assert.Equal(t, routing.Drive{HyperdriveFuel: routing.DefaultHyperdriveFuel}, fromSystem.Drive())
	assert.Equal(t, routing.Unbounded, fromSystem.MaxSystems())
	assert.Equal(t, routing.Unbounded, fromSystem.MaxDays())

	fromPlayer := routing.FromPlayer(g, newPlayer(t), ship)
	assert.Equal(t, routing.StartPlayer, fromPlayer.Kind())
	assert.Equal(t, routing.UsableIfMapped, fromPlayer.Wormholes())
	assert.Equal(t, routing.Drive{HyperdriveFuel: 120, JumpFuel: 300, JumpRange: 80}, fromPlayer.Drive())

	fromShip := routing.FromShip(g, ship, sys(t, g, "B"))
	assert.Equal(t, routing.StartShip, fromShip.Kind())
	assert.Equal(t, routing.AlwaysUsable, fromShip.Wormholes())
	assert.Equal(t, "B", fromShip.Destination().Symbol())
	assert.Equal(t, "A", fromShip.Start().Symbol())

	bounded := fromSystem.WithMaxSystems(-7).WithMaxDays(4)
	assert.Equal(t, routing.Unbounded, bounded.MaxSystems())
	assert.Equal(t, 4, bounded.MaxDays())
	assert.Equal(t, routing.Unbounded, fromSystem.MaxDays(), "builders return copies")
}
