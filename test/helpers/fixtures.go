package helpers

import (
	"testing"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/player"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// Frontier fixture
//
//	Vega
//	 |
//	Sol --- Alpha --- Beta --- Gamma        Rim (isolated)
//	 \_________ Rift wormhole ______/
//
// Systems are 100 units apart. The CAPTAIN player (ID 1) has only visited
// Sol and flies CAPTAIN-1 (hyperdrive, 100 fuel). SCOUT-1 has no owner and
// carries a hyperdrive and a 150-range jump drive.
const (
	FrontierPlayerID   = 1
	FrontierAgent      = "CAPTAIN"
	FrontierFlagship   = "CAPTAIN-1"
	FrontierScout      = "SCOUT-1"
	FrontierWormhole   = "Rift"
	FrontierJumpFuel   = 200
	FrontierJumpRange  = 150.0
	FrontierHyperdrive = 100
)

// NewFrontierGalaxy builds the frontier fixture galaxy
func NewFrontierGalaxy(t *testing.T) *galaxy.Galaxy {
	t.Helper()
	g := galaxy.New()

	systems := []struct {
		symbol string
		x, y   float64
		danger float64
	}{
		{"Sol", 0, 0, 0},
		{"Alpha", 100, 0, 1},
		{"Beta", 200, 0, 2},
		{"Gamma", 300, 0, 0},
		{"Vega", 0, 100, 0},
		{"Rim", 900, 900, 0},
	}
	for _, s := range systems {
		pos, err := shared.NewPosition(s.x, s.y)
		if err != nil {
			t.Fatalf("position for %s: %v", s.symbol, err)
		}
		if _, err := g.AddSystem(s.symbol, pos, s.danger); err != nil {
			t.Fatalf("add system %s: %v", s.symbol, err)
		}
	}

	for _, lane := range [][2]string{{"Sol", "Alpha"}, {"Alpha", "Beta"}, {"Beta", "Gamma"}, {"Sol", "Vega"}} {
		if err := g.AddHyperlane(lane[0], lane[1]); err != nil {
			t.Fatalf("add hyperlane %v: %v", lane, err)
		}
	}
	if _, err := g.AddWormhole(FrontierWormhole, "", "Sol", "Gamma"); err != nil {
		t.Fatalf("add wormhole: %v", err)
	}
	return g
}

// NewFrontierPlayer builds the CAPTAIN player, who has visited Sol
func NewFrontierPlayer(t *testing.T, g *galaxy.Galaxy) *player.Player {
	t.Helper()
	p, err := player.NewPlayer(FrontierPlayerID, FrontierAgent)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	p.FlagshipSymbol = FrontierFlagship
	sol, _ := g.System("Sol")
	p.Visit(sol)
	return p
}

// NewFrontierShips builds CAPTAIN-1 in Sol and SCOUT-1 in Alpha
func NewFrontierShips(t *testing.T) []*navigation.Ship {
	t.Helper()
	hyperdrive := mustModule(t, "MODULE_HYPERDRIVE_I", navigation.ModuleKindHyperdrive, FrontierHyperdrive, 0)
	jumpDrive := mustModule(t, "MODULE_JUMP_DRIVE_I", navigation.ModuleKindJumpDrive, FrontierJumpFuel, FrontierJumpRange)

	flagship, err := navigation.NewShip(FrontierFlagship, FrontierPlayerID, "Sol", []*navigation.ShipModule{hyperdrive})
	if err != nil {
		t.Fatalf("new flagship: %v", err)
	}
	scout, err := navigation.NewShip(FrontierScout, 0, "Alpha", []*navigation.ShipModule{hyperdrive, jumpDrive})
	if err != nil {
		t.Fatalf("new scout: %v", err)
	}
	return []*navigation.Ship{flagship, scout}
}

func mustModule(t *testing.T, symbol string, kind navigation.ModuleKind, fuel int, jumpRange float64) *navigation.ShipModule {
	t.Helper()
	module, err := navigation.NewShipModule(symbol, kind, fuel, jumpRange)
	if err != nil {
		t.Fatalf("new module %s: %v", symbol, err)
	}
	return module
}
