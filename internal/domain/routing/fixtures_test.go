package routing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/player"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// chain builds systems 100 units apart on the x axis, linked in order by hyperlanes
func chain(t *testing.T, symbols ...string) *galaxy.Galaxy {
	t.Helper()
	g := galaxy.New()
	for i, symbol := range symbols {
		addSystem(t, g, symbol, float64(i)*100, 0, 0)
	}
	for i := 1; i < len(symbols); i++ {
		require.NoError(t, g.AddHyperlane(symbols[i-1], symbols[i]))
	}
	return g
}

func addSystem(t *testing.T, g *galaxy.Galaxy, symbol string, x, y, danger float64) *galaxy.System {
	t.Helper()
	pos, err := shared.NewPosition(x, y)
	require.NoError(t, err)
	system, err := g.AddSystem(symbol, pos, danger)
	require.NoError(t, err)
	return system
}

func sys(t *testing.T, g *galaxy.Galaxy, symbol string) *galaxy.System {
	t.Helper()
	system, ok := g.System(symbol)
	require.True(t, ok, "system %s", symbol)
	return system
}

func symbols(systems []*galaxy.System) []string {
	out := make([]string, 0, len(systems))
	for _, system := range systems {
		out = append(out, system.Symbol())
	}
	return out
}

// newShip builds a ship in system with the given drives; 0 leaves a drive out
func newShip(t *testing.T, system string, hyperdriveFuel, jumpFuel int, jumpRange float64, extraModules ...string) *navigation.Ship {
	t.Helper()
	var modules []*navigation.ShipModule
	if hyperdriveFuel > 0 {
		module, err := navigation.NewShipModule("MODULE_HYPERDRIVE_I", navigation.ModuleKindHyperdrive, hyperdriveFuel, 0)
		require.NoError(t, err)
		modules = append(modules, module)
	}
	if jumpFuel > 0 {
		module, err := navigation.NewShipModule("MODULE_JUMP_DRIVE_I", navigation.ModuleKindJumpDrive, jumpFuel, jumpRange)
		require.NoError(t, err)
		modules = append(modules, module)
	}
	for _, symbol := range extraModules {
		module, err := navigation.NewShipModule(symbol, navigation.ModuleKindOther, 0, 0)
		require.NoError(t, err)
		modules = append(modules, module)
	}
	ship, err := navigation.NewShip("TEST-1", 1, system, modules)
	require.NoError(t, err)
	return ship
}

func newPlayer(t *testing.T) *player.Player {
	t.Helper()
	p, err := player.NewPlayer(1, "TESTER")
	require.NoError(t, err)
	p.FlagshipSymbol = "TEST-1"
	return p
}
