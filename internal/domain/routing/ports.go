package routing

import "github.com/andrescamacho/starlane/internal/domain/galaxy"

// Knowledge is what a player knows about the galaxy.
// Searches started from a player only use links the player knows of.
type Knowledge interface {
	HasVisited(systemSymbol string) bool
	HasSeen(systemSymbol string) bool
}

// Vessel exposes the travel capabilities of a ship.
// A fuel cost of 0 means the ship lacks that drive.
type Vessel interface {
	SystemSymbol() string
	HyperspaceTarget() (string, bool)
	HyperdriveFuel() int
	JumpDriveFuel() int
	JumpRange() float64
	CanTraverse(w *galaxy.Wormhole) bool
}

// Drive describes the travel capabilities a search assumes
type Drive struct {
	HyperdriveFuel int
	JumpFuel       int
	JumpRange      float64
}

// DriveOf reads the capabilities of a vessel
func DriveOf(v Vessel) Drive {
	return Drive{
		HyperdriveFuel: v.HyperdriveFuel(),
		JumpFuel:       v.JumpDriveFuel(),
		JumpRange:      v.JumpRange(),
	}
}
