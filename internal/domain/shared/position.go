package shared

import (
	"fmt"
	"math"
)

// Position is an immutable point on the galaxy map
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPosition creates a position, rejecting NaN and infinite coordinates
func NewPosition(x, y float64) (Position, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Position{}, NewValidationError("x", "must be a finite number")
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return Position{}, NewValidationError("y", "must be a finite number")
	}
	return Position{X: x, Y: y}, nil
}

// DistanceTo calculates Euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Position) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}
