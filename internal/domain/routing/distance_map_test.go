package routing_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/routing"
)

func TestDistanceMap_IsolatedStart(t *testing.T) {
	// Arrange
	g := galaxy.New()
	lonely := addSystem(t, g, "Lonely", 0, 0, 3)
	other := addSystem(t, g, "Other", 500, 0, 0)

	// Act
	distances := routing.NewDistanceMap(routing.FromSystem(lonely))

	// Assert
	assert.True(t, distances.HasRoute(lonely))
	assert.Equal(t, 0, distances.Days(lonely))
	assert.False(t, distances.HasRoute(other))
	assert.Equal(t, -1, distances.Days(other))
	assert.Empty(t, distances.Plan(other))
	assert.Equal(t, []*galaxy.System{lonely}, distances.Plan(lonely))
	assert.Equal(t, 1, distances.Len())

	edge, ok := distances.Edge(lonely)
	require.True(t, ok)
	assert.True(t, edge.IsRoot())
	assert.Zero(t, edge.Danger)
}

func TestDistanceMap_HyperlaneChain(t *testing.T) {
	g := chain(t, "A", "B", "C")
	a, c := sys(t, g, "A"), sys(t, g, "C")

	distances := routing.NewDistanceMap(routing.FromSystem(a))

	assert.Equal(t, 2, distances.Days(c))
	assert.Equal(t, []string{"A", "B", "C"}, symbols(distances.Plan(c)))
	assert.Equal(t, []string{"A", "B", "C"}, symbols(distances.Systems()))
	assert.Equal(t, a, distances.Center())

	edge, ok := distances.Edge(c)
	require.True(t, ok)
	assert.Equal(t, 2*routing.DefaultHyperdriveFuel, edge.Fuel)
	assert.Equal(t, "B", edge.Prev.Symbol())
}

func TestDistanceMap_OneWayLink(t *testing.T) {
	g := galaxy.New()
	a := addSystem(t, g, "A", 0, 0, 0)
	b := addSystem(t, g, "B", 100, 0, 0)
	require.NoError(t, g.AddLink("A", "B"))

	assert.True(t, routing.NewDistanceMap(routing.FromSystem(a)).HasRoute(b))
	assert.False(t, routing.NewDistanceMap(routing.FromSystem(b)).HasRoute(a))
}

func TestDistanceMap_MaxSystems(t *testing.T) {
	g := chain(t, "A", "B", "C", "D", "E")
	a := sys(t, g, "A")

	tests := []struct {
		name     string
		k        int
		expected []string
	}{
		{name: "zero yields empty map", k: 0, expected: []string{}},
		{name: "one keeps start only", k: 1, expected: []string{"A"}},
		{name: "three nearest systems", k: 3, expected: []string{"A", "B", "C"}},
		{name: "more than reachable", k: 50, expected: []string{"A", "B", "C", "D", "E"}},
		{name: "unbounded", k: routing.Unbounded, expected: []string{"A", "B", "C", "D", "E"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distances := routing.NewDistanceMap(routing.FromSystem(a).WithMaxSystems(tt.k))
			assert.Equal(t, tt.expected, symbols(distances.Systems()))
		})
	}
}

func TestDistanceMap_MaxDays(t *testing.T) {
	g := chain(t, "A", "B", "C", "D", "E")
	a := sys(t, g, "A")

	for _, d := range []int{0, 1, 2, 3} {
		t.Run(fmt.Sprintf("max %d days", d), func(t *testing.T) {
			distances := routing.NewDistanceMap(routing.FromSystem(a).WithMaxDays(d))

			assert.Equal(t, d+1, distances.Len())
			for _, system := range distances.Systems() {
				assert.LessOrEqual(t, distances.Days(system), d, system.Symbol())
			}
		})
	}
}

func TestDistanceMap_DangerBreaksTies(t *testing.T) {
	g := galaxy.New()
	a := addSystem(t, g, "A", 0, 0, 0)
	addSystem(t, g, "Risky", 100, 50, 5)
	addSystem(t, g, "Safe", 100, -50, 1)
	d := addSystem(t, g, "D", 200, 0, 0)
	for _, lane := range [][2]string{{"A", "Risky"}, {"A", "Safe"}, {"Risky", "D"}, {"Safe", "D"}} {
		require.NoError(t, g.AddHyperlane(lane[0], lane[1]))
	}

	distances := routing.NewDistanceMap(routing.FromSystem(a))

	assert.Equal(t, []string{"A", "Safe", "D"}, symbols(distances.Plan(d)))
	edge, _ := distances.Edge(d)
	assert.Equal(t, 1.0, edge.Danger)
}

func TestDistanceMap_FewerDaysBeatLessFuel(t *testing.T) {
	// A to C: one jump for 200 fuel, or two hyperlane jumps for 100 each
	g := chain(t, "A", "B", "C")
	a, c := sys(t, g, "A"), sys(t, g, "C")

	q := routing.FromSystem(a).WithDrive(routing.Drive{HyperdriveFuel: 100, JumpFuel: 200, JumpRange: 250})
	distances := routing.NewDistanceMap(q)

	edge, ok := distances.Edge(c)
	require.True(t, ok)
	assert.Equal(t, 1, edge.Days)
	assert.Equal(t, 200, edge.Fuel)
	assert.Equal(t, a, edge.Prev)
}

func TestDistanceMap_EqualDriveCostsKeepLongHyperlanes(t *testing.T) {
	g := galaxy.New()
	a := addSystem(t, g, "A", 0, 0, 0)
	far := addSystem(t, g, "Far", 500, 0, 0)
	near := addSystem(t, g, "Near", 50, 0, 0)
	require.NoError(t, g.AddHyperlane("A", "Far"))

	q := routing.FromSystem(a).WithDrive(routing.Drive{HyperdriveFuel: 100, JumpFuel: 100, JumpRange: 100})
	distances := routing.NewDistanceMap(q)

	edge, ok := distances.Edge(far)
	require.True(t, ok, "a hyperlane beyond jump range stays usable")
	assert.Equal(t, 1, edge.Days)
	assert.Equal(t, 100, edge.Fuel)
	assert.True(t, distances.HasRoute(near))
}

func TestDistanceMap_JumpDriveNeverLosesHyperlaneRoutes(t *testing.T) {
	g := galaxy.New()
	addSystem(t, g, "A", 0, 0, 0)
	b := addSystem(t, g, "B", 100, 0, 0)
	require.NoError(t, g.AddHyperlane("A", "B"))

	hyperdriveOnly := routing.NewRoutePlan(routing.FromShip(g, newShip(t, "A", 100, 0, 0), b), b)
	withJumpDrive := routing.NewRoutePlan(routing.FromShip(g, newShip(t, "A", 100, 100, 50), b), b)

	require.True(t, hyperdriveOnly.HasRoute())
	require.True(t, withJumpDrive.HasRoute())
	assert.Equal(t, hyperdriveOnly.Days(), withJumpDrive.Days())
	assert.Equal(t, hyperdriveOnly.RequiredFuel(), withJumpDrive.RequiredFuel())
}

func TestDistanceMap_PlayerJumpBeyondRangeNeedsVisitedEnd(t *testing.T) {
	// Lanes are 100 long but the jump drive only reaches 50
	g := chain(t, "A", "B", "C")
	a, b, c := sys(t, g, "A"), sys(t, g, "B"), sys(t, g, "C")
	p := newPlayer(t)
	p.Visit(a)
	p.MarkSeen("C")

	distances := routing.NewDistanceMap(routing.FromPlayer(g, p, newShip(t, "A", 100, 100, 50)))

	assert.True(t, distances.HasRoute(b))
	assert.False(t, distances.HasRoute(c), "neither end of B-C has been visited")
}

func TestDistanceMap_SystemJumpRangeOverridesDrive(t *testing.T) {
	g := galaxy.New()
	a := addSystem(t, g, "A", 0, 0, 0)
	b := addSystem(t, g, "B", 250, 0, 0)
	q := routing.FromSystem(a).WithDrive(routing.Drive{JumpFuel: 200, JumpRange: 100})

	assert.False(t, routing.NewDistanceMap(q).HasRoute(b))

	require.NoError(t, g.SetJumpRange("A", 300))
	distances := routing.NewDistanceMap(q)
	assert.True(t, distances.HasRoute(b))
	edge, _ := distances.Edge(b)
	assert.Equal(t, 200, edge.Fuel)
}

func TestDistanceMap_WormholeStrategy(t *testing.T) {
	g := chain(t, "A", "B", "C")
	_, err := g.AddWormhole("Shortcut", "", "A", "C")
	require.NoError(t, err)
	a, c := sys(t, g, "A"), sys(t, g, "C")

	tests := []struct {
		strategy routing.WormholeStrategy
		days     int
		fuel     int
	}{
		{strategy: routing.NeverUsable, days: 2, fuel: 200},
		{strategy: routing.AlwaysUsable, days: 1, fuel: 0},
		{strategy: routing.UsableIfMapped, days: 1, fuel: 0},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			distances := routing.NewDistanceMap(routing.FromSystem(a).WithWormholes(tt.strategy))

			edge, ok := distances.Edge(c)
			require.True(t, ok)
			assert.Equal(t, tt.days, edge.Days)
			assert.Equal(t, tt.fuel, edge.Fuel)
		})
	}
}

func TestDistanceMap_FromSystemIgnoresWormholesByDefault(t *testing.T) {
	g := galaxy.New()
	a := addSystem(t, g, "A", 0, 0, 0)
	b := addSystem(t, g, "B", 900, 0, 0)
	_, err := g.AddWormhole("W", "", "A", "B")
	require.NoError(t, err)

	assert.False(t, routing.NewDistanceMap(routing.FromSystem(a)).HasRoute(b))
}

func TestDistanceMap_PlayerKnowledgeGatesHyperlanes(t *testing.T) {
	// Arrange: the player has only been to A, so the B-C lane is unknown
	g := chain(t, "A", "B", "C")
	a, b, c := sys(t, g, "A"), sys(t, g, "B"), sys(t, g, "C")
	p := newPlayer(t)
	p.Visit(a)
	p.MarkSeen("C")

	t.Run("hyperdrive only", func(t *testing.T) {
		flagship := newShip(t, "A", 100, 0, 0)

		distances := routing.NewDistanceMap(routing.FromPlayer(g, p, flagship))

		assert.True(t, distances.HasRoute(b))
		assert.False(t, distances.HasRoute(c))
	})

	t.Run("jump drive flies blind", func(t *testing.T) {
		flagship := newShip(t, "A", 100, 200, 100)

		distances := routing.NewDistanceMap(routing.FromPlayer(g, p, flagship))

		assert.True(t, distances.HasRoute(c))
		assert.Equal(t, []string{"A", "B", "C"}, symbols(distances.Plan(c)))
	})

	t.Run("unseen systems are never plotted", func(t *testing.T) {
		stranger := newPlayer(t)
		stranger.Visit(a)
		flagship := newShip(t, "A", 100, 200, 300)

		distances := routing.NewDistanceMap(routing.FromPlayer(g, stranger, flagship))

		assert.True(t, distances.HasRoute(b))
		assert.False(t, distances.HasRoute(c))
	})
}

func TestDistanceMap_PlayerWormholeIfMapped(t *testing.T) {
	g := chain(t, "A", "B", "C")
	_, err := g.AddWormhole("Shortcut", "", "A", "C")
	require.NoError(t, err)
	a, b, c := sys(t, g, "A"), sys(t, g, "B"), sys(t, g, "C")
	flagship := newShip(t, "A", 100, 0, 0)

	explorer := newPlayer(t)
	explorer.Visit(a)
	explorer.Visit(b)
	assert.Equal(t, 1, routing.NewDistanceMap(routing.FromPlayer(g, explorer, flagship)).Days(c))

	newcomer := newPlayer(t)
	newcomer.Visit(b)
	assert.Equal(t, 2, routing.NewDistanceMap(routing.FromPlayer(g, newcomer, flagship)).Days(c))

	q := routing.FromPlayer(g, explorer, flagship).WithWormholes(routing.NeverUsable)
	assert.Equal(t, 2, routing.NewDistanceMap(q).Days(c))
}

func TestDistanceMap_FlagshipEnteringHyperspaceStartsAtTarget(t *testing.T) {
	g := chain(t, "A", "B", "C")
	b := sys(t, g, "B")
	p := newPlayer(t)
	for _, system := range g.Systems() {
		p.Visit(system)
	}
	flagship := newShip(t, "A", 100, 0, 0)
	require.NoError(t, flagship.EnterHyperspace("B"))

	distances := routing.NewDistanceMap(routing.FromPlayer(g, p, flagship))

	assert.Equal(t, b, distances.Center())
	assert.Equal(t, 0, distances.Days(b))
	assert.Equal(t, 1, distances.Days(sys(t, g, "A")))
}

func TestDistanceMap_EmptyResults(t *testing.T) {
	g := chain(t, "A", "B")
	p := newPlayer(t)
	p.Visit(sys(t, g, "A"))

	tests := []struct {
		name  string
		query routing.Query
	}{
		{name: "nil start", query: routing.FromSystem(nil)},
		{name: "player without flagship", query: routing.FromPlayer(g, p, nil)},
		{name: "player without flagship keeps no center", query: routing.FromPlayer(g, p, nil).WithCenter(sys(t, g, "B"))},
		{name: "ship in unknown system", query: routing.FromShip(g, newShip(t, "Nowhere", 100, 0, 0), sys(t, g, "B"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distances := routing.NewDistanceMap(tt.query)

			assert.Zero(t, distances.Len())
			assert.Nil(t, distances.Center())
			assert.Empty(t, distances.Systems())
		})
	}
}

func TestDistanceMap_ShipStopsAtDestination(t *testing.T) {
	g := chain(t, "A", "B", "C", "D", "E")
	c := sys(t, g, "C")

	distances := routing.NewDistanceMap(routing.FromShip(g, newShip(t, "A", 100, 0, 0), c))

	assert.Equal(t, 2, distances.Days(c))
	assert.False(t, distances.HasRoute(sys(t, g, "D")))
	assert.False(t, distances.HasRoute(sys(t, g, "E")))
}

func TestDistanceMap_RestrictedWormholeNeedsModule(t *testing.T) {
	g := galaxy.New()
	addSystem(t, g, "A", 0, 0, 0)
	c := addSystem(t, g, "C", 1000, 0, 0)
	_, err := g.AddWormhole("Gate", "MODULE_WORMHOLE_KEY", "A", "C")
	require.NoError(t, err)

	without := routing.NewDistanceMap(routing.FromShip(g, newShip(t, "A", 100, 0, 0), c))
	with := routing.NewDistanceMap(routing.FromShip(g, newShip(t, "A", 100, 0, 0, "MODULE_WORMHOLE_KEY"), c))

	assert.False(t, without.HasRoute(c))
	assert.Equal(t, 1, with.Days(c))
}

func TestDistanceMap_ShipWithoutDrivesUsesWormholesOnly(t *testing.T) {
	g := chain(t, "A", "B")
	addSystem(t, g, "W", 900, 0, 0)
	_, err := g.AddWormhole("Drift", "", "A", "W")
	require.NoError(t, err)

	distances := routing.NewDistanceMap(routing.FromShip(g, newShip(t, "A", 0, 0, 0), nil))

	assert.Equal(t, []string{"A", "W"}, symbols(distances.Systems()))
}

// TestDistanceMap_MatchesExhaustiveRelaxation compares every finalized edge
// against a Bellman-Ford pass using the same edge costs.
func TestDistanceMap_MatchesExhaustiveRelaxation(t *testing.T) {
	tests := []struct {
		name  string
		drive routing.Drive
	}{
		{name: "cheaper hyperdrive", drive: routing.Drive{HyperdriveFuel: 100, JumpFuel: 150, JumpRange: 145}},
		{name: "equal drive costs, lanes beyond jump range", drive: routing.Drive{HyperdriveFuel: 100, JumpFuel: 100, JumpRange: 60}},
		{name: "hyperdrive only", drive: routing.Drive{HyperdriveFuel: 100}},
		{name: "jump drive only", drive: routing.Drive{JumpFuel: 200, JumpRange: 145}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridGalaxy(t)
			start := sys(t, g, "S00")

			distances := routing.NewDistanceMap(routing.FromSystem(start).WithDrive(tt.drive).WithWormholes(routing.AlwaysUsable))
			expected := exhaustive(g, start, tt.drive)

			require.Equal(t, len(expected), distances.Len())
			for system, want := range expected {
				got, ok := distances.Edge(system)
				require.True(t, ok, system.Symbol())
				assert.Equal(t, want.Days, got.Days, system.Symbol())
				assert.Equal(t, want.Fuel, got.Fuel, system.Symbol())
				assert.Equal(t, want.Danger, got.Danger, system.Symbol())
			}
		})
	}
}

// gridGalaxy is a 4x4 grid 100 units apart with partial lanes and a wormhole
func gridGalaxy(t *testing.T) *galaxy.Galaxy {
	t.Helper()
	g := galaxy.New()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			addSystem(t, g, fmt.Sprintf("S%d%d", i, j), float64(i)*100, float64(j)*100, float64((i*4+j)%5))
		}
	}
	lanes := [][2]string{
		{"S00", "S01"}, {"S01", "S02"}, {"S02", "S03"}, {"S03", "S13"}, {"S13", "S23"},
		{"S23", "S33"}, {"S00", "S10"}, {"S10", "S20"}, {"S20", "S30"}, {"S30", "S31"},
		{"S31", "S32"}, {"S32", "S33"}, {"S11", "S21"}, {"S21", "S22"}, {"S12", "S22"},
		{"S01", "S11"}, {"S22", "S32"},
	}
	for _, lane := range lanes {
		require.NoError(t, g.AddHyperlane(lane[0], lane[1]))
	}
	_, err := g.AddWormhole("Loop", "", "S10", "S03", "S31")
	require.NoError(t, err)
	return g
}

func exhaustive(g *galaxy.Galaxy, start *galaxy.System, drive routing.Drive) map[*galaxy.System]routing.RouteEdge {
	best := map[*galaxy.System]routing.RouteEdge{start: {}}
	for changed := true; changed; {
		changed = false
		for _, from := range g.Systems() {
			edge, ok := best[from]
			if !ok {
				continue
			}
			base := routing.RouteEdge{Prev: from, Fuel: edge.Fuel, Days: edge.Days + 1, Danger: edge.Danger + from.Danger()}
			try := func(to *galaxy.System, fuel int) {
				candidate := base
				candidate.Fuel += fuel
				if current, ok := best[to]; !ok || candidate.Less(current) {
					best[to] = candidate
					changed = true
				}
			}
			for _, link := range from.WormholeLinks() {
				try(link.To, 0)
			}
			if drive.HyperdriveFuel > 0 {
				for _, to := range from.Links() {
					try(to, drive.HyperdriveFuel)
				}
			}
			if drive.JumpFuel > 0 {
				// A jump drive reaches anything in range and follows every hyperlane
				for _, to := range g.Systems() {
					if to != from && (from.InJumpRange(to, drive.JumpRange) || from.HasLinkTo(to)) {
						try(to, drive.JumpFuel)
					}
				}
			}
		}
	}
	return best
}
