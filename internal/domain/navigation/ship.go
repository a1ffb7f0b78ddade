package navigation

import (
	"fmt"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// Ship entity - a vessel whose drives determine which route edges it can use
//
// Invariants:
// - ShipSymbol must be unique and non-empty
// - PlayerID is 0 for non-player ships, positive otherwise
// - SystemSymbol is the system the ship is currently in
// - A hyperspace target, when set, differs from the current system
//
// Travel capabilities are derived from installed modules:
// - the cheapest hyperdrive decides hyperlane fuel cost (0 = no hyperdrive)
// - the cheapest jump drive decides jump fuel cost (0 = no jump drive)
// - the longest jump drive range decides jump range
type Ship struct {
	shipSymbol       string
	playerID         int
	systemSymbol     string
	hyperspaceTarget string
	modules          []*ShipModule
}

// NewShip creates a new Ship entity with validation
func NewShip(shipSymbol string, playerID int, systemSymbol string, modules []*ShipModule) (*Ship, error) {
	s := &Ship{
		shipSymbol:   shipSymbol,
		playerID:     playerID,
		systemSymbol: systemSymbol,
		modules:      modules,
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Ship) validate() error {
	if s.shipSymbol == "" {
		return shared.NewValidationError("ship_symbol", "cannot be empty")
	}
	if s.playerID < 0 {
		return shared.NewValidationError("player_id", "cannot be negative")
	}
	if s.systemSymbol == "" {
		return shared.NewValidationError("system_symbol", "cannot be empty")
	}
	for _, module := range s.modules {
		if module == nil {
			return shared.NewValidationError("modules", "cannot contain nil modules")
		}
	}
	return nil
}

// Getters

func (s *Ship) ShipSymbol() string {
	return s.shipSymbol
}

func (s *Ship) PlayerID() int {
	return s.playerID
}

// SystemSymbol returns the system the ship currently occupies
func (s *Ship) SystemSymbol() string {
	return s.systemSymbol
}

func (s *Ship) Modules() []*ShipModule {
	return s.modules
}

// HyperspaceTarget returns the system the ship is jumping to, if it is
// currently entering hyperspace.
func (s *Ship) HyperspaceTarget() (string, bool) {
	return s.hyperspaceTarget, s.hyperspaceTarget != ""
}

// IsEnteringHyperspace reports whether a jump is under way
func (s *Ship) IsEnteringHyperspace() bool {
	return s.hyperspaceTarget != ""
}

// Navigation state transitions

// EnterHyperspace starts a jump toward target
func (s *Ship) EnterHyperspace(target string) error {
	if target == "" {
		return shared.NewValidationError("hyperspace_target", "cannot be empty")
	}
	if target == s.systemSymbol {
		return shared.NewValidationError("hyperspace_target", fmt.Sprintf("ship %s is already in %s", s.shipSymbol, target))
	}
	if s.IsEnteringHyperspace() {
		return shared.NewDomainError(fmt.Sprintf("ship %s is already jumping to %s", s.shipSymbol, s.hyperspaceTarget))
	}
	s.hyperspaceTarget = target
	return nil
}

// Arrive completes the current jump
func (s *Ship) Arrive() error {
	if !s.IsEnteringHyperspace() {
		return shared.NewDomainError(fmt.Sprintf("ship %s is not in hyperspace", s.shipSymbol))
	}
	s.systemSymbol = s.hyperspaceTarget
	s.hyperspaceTarget = ""
	return nil
}

// Travel capabilities

// HyperdriveFuel returns the fuel a hyperlane jump costs, 0 if the ship has no hyperdrive
func (s *Ship) HyperdriveFuel() int {
	return s.cheapest(ModuleKindHyperdrive)
}

// JumpDriveFuel returns the fuel a jump drive jump costs, 0 if the ship has no jump drive
func (s *Ship) JumpDriveFuel() int {
	return s.cheapest(ModuleKindJumpDrive)
}

// JumpRange returns the longest range among installed jump drives
func (s *Ship) JumpRange() float64 {
	var best float64
	for _, module := range s.modules {
		if module.IsJumpDrive() && module.Range() > best {
			best = module.Range()
		}
	}
	return best
}

// HasModule checks whether a module with the given symbol is installed
func (s *Ship) HasModule(symbol string) bool {
	for _, module := range s.modules {
		if module.Symbol() == symbol {
			return true
		}
	}
	return false
}

// CanTraverse reports whether the ship may pass through the wormhole
func (s *Ship) CanTraverse(w *galaxy.Wormhole) bool {
	if !w.IsRestricted() {
		return true
	}
	return s.HasModule(w.AccessModule())
}

func (s *Ship) cheapest(kind ModuleKind) int {
	best := 0
	for _, module := range s.modules {
		if module.Kind() != kind || module.Fuel() <= 0 {
			continue
		}
		if best == 0 || module.Fuel() < best {
			best = module.Fuel()
		}
	}
	return best
}

func (s *Ship) String() string {
	return fmt.Sprintf("Ship(%s @ %s)", s.shipSymbol, s.systemSymbol)
}
