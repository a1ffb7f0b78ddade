package queries

import (
	"github.com/andrescamacho/starlane/internal/domain/routing"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// Defaults are the capabilities assumed for searches that start from a bare system
type Defaults struct {
	HyperdriveFuel int
	JumpFuel       int
	JumpRange      float64
	Wormholes      routing.WormholeStrategy

	// MaxSystems caps reachable-system queries; 0 or less disables the cap
	MaxSystems int
}

// DefaultDefaults mirrors the route engine's own defaults
func DefaultDefaults() Defaults {
	return Defaults{
		HyperdriveFuel: routing.DefaultHyperdriveFuel,
		JumpFuel:       routing.DefaultJumpFuel,
		JumpRange:      routing.DefaultJumpRange,
		Wormholes:      routing.NeverUsable,
		MaxSystems:     routing.Unbounded,
	}
}

// drive builds the drive of a bare-system search. A jump drive is only
// fitted when the request asks for one through jumpFuel or jumpRange.
func (d Defaults) drive(jumpFuel int, jumpRange float64) routing.Drive {
	drive := routing.Drive{HyperdriveFuel: d.HyperdriveFuel}
	if jumpFuel <= 0 && jumpRange <= 0 {
		return drive
	}

	drive.JumpFuel = d.JumpFuel
	if jumpFuel > 0 {
		drive.JumpFuel = jumpFuel
	}
	drive.JumpRange = d.JumpRange
	if jumpRange > 0 {
		drive.JumpRange = jumpRange
	}
	return drive
}

// maxSystems applies the configured cap to a requested limit
func (d Defaults) maxSystems(requested int) int {
	if d.MaxSystems <= 0 {
		if requested <= 0 {
			return routing.Unbounded
		}
		return requested
	}
	if requested <= 0 || requested > d.MaxSystems {
		return d.MaxSystems
	}
	return requested
}

func applyWormholes(q routing.Query, value string) (routing.Query, error) {
	if value == "" {
		return q, nil
	}
	strategy, err := routing.ParseWormholeStrategy(value)
	if err != nil {
		return q, shared.NewValidationError("wormholes", err.Error())
	}
	return q.WithWormholes(strategy), nil
}

func validateJump(jumpFuel int, jumpRange float64) error {
	if jumpFuel < 0 {
		return shared.NewValidationError("jump_fuel", "cannot be negative")
	}
	if jumpRange < 0 {
		return shared.NewValidationError("jump_range", "cannot be negative")
	}
	return nil
}
