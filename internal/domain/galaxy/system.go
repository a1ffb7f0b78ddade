package galaxy

import (
	"fmt"

	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// System is a node of the galaxy map
//
// Invariants:
// - Symbol is unique within its galaxy and non-empty
// - Danger is non-negative
// - JumpRange of 0 means the system imposes no jump range of its own
//
// A System is owned by exactly one Galaxy and is read-only once the galaxy
// is handed to a route search.
type System struct {
	symbol    string
	position  shared.Position
	danger    float64
	jumpRange float64
	links     []*System
	wormholes []WormholeLink
	galaxy    *Galaxy
}

// WormholeLink is one traversal of a wormhole out of a system
type WormholeLink struct {
	Wormhole *Wormhole
	To       *System
}

// Symbol returns the system's unique identifier
func (s *System) Symbol() string {
	return s.symbol
}

// Position returns the system's map coordinates
func (s *System) Position() shared.Position {
	return s.position
}

// Danger returns the hazard scalar accumulated by routes departing this system
func (s *System) Danger() float64 {
	return s.danger
}

// JumpRange returns the system's own jump range, or 0 if ships use their drive's range
func (s *System) JumpRange() float64 {
	return s.jumpRange
}

// Links returns the outgoing hyperlane links in insertion order
func (s *System) Links() []*System {
	return s.links
}

// WormholeLinks returns every wormhole traversal that departs this system
func (s *System) WormholeLinks() []WormholeLink {
	return s.wormholes
}

// HasLinkTo reports whether a hyperlane leads directly from s to other
func (s *System) HasLinkTo(other *System) bool {
	for _, link := range s.links {
		if link == other {
			return true
		}
	}
	return false
}

// InJumpRange reports whether other lies within jump range of s. The
// system's own jump range, when set, replaces shipRange.
func (s *System) InJumpRange(other *System, shipRange float64) bool {
	jumpRange := s.effectiveJumpRange(shipRange)
	return jumpRange > 0 && s.position.DistanceTo(other.position) <= jumpRange
}

func (s *System) effectiveJumpRange(shipRange float64) float64 {
	if s.jumpRange > 0 {
		return s.jumpRange
	}
	return shipRange
}

// JumpNeighbors returns every system a jump drive of the given range can
// reach from s, hyperlane links included.
func (s *System) JumpNeighbors(shipRange float64) []*System {
	if s.galaxy == nil {
		return nil
	}
	return s.galaxy.JumpNeighbors(s, shipRange)
}

// Galaxy returns the galaxy that owns this system
func (s *System) Galaxy() *Galaxy {
	return s.galaxy
}

func (s *System) String() string {
	return fmt.Sprintf("System(%s)", s.symbol)
}
