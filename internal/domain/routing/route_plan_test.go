package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/routing"
)

func TestRoutePlan_WormholeShortcut(t *testing.T) {
	// Arrange: A-B-C by hyperlane, 100 fuel per hop, plus an A-C wormhole
	g := chain(t, "A", "B", "C")
	_, err := g.AddWormhole("Shortcut", "", "A", "C")
	require.NoError(t, err)
	a, c := sys(t, g, "A"), sys(t, g, "C")

	// Act
	plan := routing.NewRoutePlan(routing.FromSystem(a).WithWormholes(routing.AlwaysUsable), c)

	// Assert
	require.True(t, plan.HasRoute())
	assert.Equal(t, 1, plan.Days())
	assert.Equal(t, 0, plan.RequiredFuel())
	assert.Equal(t, []string{"A", "C"}, symbols(plan.Plan()))
	assert.Equal(t, c, plan.FirstStep())
	assert.Equal(t, []routing.FuelCost{{System: c, Fuel: 0}}, plan.FuelCosts())
}

func TestRoutePlan_HyperlaneRoute(t *testing.T) {
	g := chain(t, "A", "B", "C", "D")
	a, b, d := sys(t, g, "A"), sys(t, g, "B"), sys(t, g, "D")

	plan := routing.NewRoutePlan(routing.FromSystem(a), d)

	require.True(t, plan.HasRoute())
	assert.Equal(t, []string{"A", "B", "C", "D"}, symbols(plan.Plan()))
	assert.Equal(t, b, plan.FirstStep())
	assert.Equal(t, 3, plan.Days())
	assert.Equal(t, len(plan.Plan())-1, plan.Days())

	total := 0
	for _, cost := range plan.FuelCosts() {
		assert.Equal(t, routing.DefaultHyperdriveFuel, cost.Fuel)
		total += cost.Fuel
	}
	assert.Equal(t, plan.RequiredFuel(), total)
	assert.Len(t, plan.FuelCosts(), 3)
}

func TestRoutePlan_MixedDrivesFuelCosts(t *testing.T) {
	// B-C has no hyperlane but is within jump range
	g := galaxy.New()
	addSystem(t, g, "A", 0, 0, 0)
	b := addSystem(t, g, "B", 100, 0, 2)
	c := addSystem(t, g, "C", 180, 0, 0)
	require.NoError(t, g.AddHyperlane("A", "B"))
	ship := newShip(t, "A", 100, 250, 90)

	plan := routing.NewRoutePlan(routing.FromShip(g, ship, nil), c)

	require.True(t, plan.HasRoute())
	assert.Equal(t, []routing.FuelCost{{System: b, Fuel: 100}, {System: c, Fuel: 250}}, plan.FuelCosts())
	assert.Equal(t, 350, plan.RequiredFuel())
	assert.Equal(t, 2.0, plan.Danger())

	steps := plan.Steps()
	require.Len(t, steps, 3)
	assert.True(t, steps[0].Edge.IsRoot())
	assert.Equal(t, b, steps[2].Edge.Prev)
}

func TestRoutePlan_Unreachable(t *testing.T) {
	g := chain(t, "A", "B")
	island := addSystem(t, g, "Island", 900, 900, 0)

	plan := routing.NewRoutePlan(routing.FromSystem(sys(t, g, "A")), island)

	assert.False(t, plan.HasRoute())
	assert.Equal(t, -1, plan.Days())
	assert.Equal(t, -1, plan.RequiredFuel())
	assert.Equal(t, -1.0, plan.Danger())
	assert.Nil(t, plan.FirstStep())
	assert.Empty(t, plan.Plan())
	assert.Empty(t, plan.FuelCosts())
	assert.Empty(t, plan.Steps())
}

func TestRoutePlan_StartIsDestination(t *testing.T) {
	g := chain(t, "A", "B")
	a := sys(t, g, "A")

	plan := routing.NewRoutePlan(routing.FromSystem(a), a)

	assert.True(t, plan.HasRoute())
	assert.Equal(t, 0, plan.Days())
	assert.Equal(t, 0, plan.RequiredFuel())
	assert.Equal(t, []*galaxy.System{a}, plan.Plan())
	assert.Nil(t, plan.FirstStep())
	assert.Empty(t, plan.FuelCosts())
}

func TestRoutePlan_NilDestination(t *testing.T) {
	g := chain(t, "A", "B")

	plan := routing.NewRoutePlan(routing.FromSystem(sys(t, g, "A")), nil)

	assert.False(t, plan.HasRoute())
}

func TestRoutePlan_PlayerFromOtherCenter(t *testing.T) {
	g := chain(t, "A", "B", "C", "D")
	p := newPlayer(t)
	for _, system := range g.Systems() {
		p.Visit(system)
	}
	flagship := newShip(t, "A", 100, 0, 0)

	q := routing.FromPlayer(g, p, flagship).WithCenter(sys(t, g, "C"))
	plan := routing.NewRoutePlan(q, sys(t, g, "D"))

	assert.Equal(t, []string{"C", "D"}, symbols(plan.Plan()))
}

func TestRoutePlan_RespectsMaxDays(t *testing.T) {
	g := chain(t, "A", "B", "C")

	plan := routing.NewRoutePlan(routing.FromSystem(sys(t, g, "A")).WithMaxDays(1), sys(t, g, "C"))

	assert.False(t, plan.HasRoute())
}
