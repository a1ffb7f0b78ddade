package routing

import (
	"fmt"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
)

// RouteEdge is the best known step into a system.
//
// Fuel, Days and Danger are cumulative from the search start. Prev is nil
// only for the start itself, whose edge is all zeroes. Danger sums the
// danger of every system departed along the way; the system the edge leads
// into is not counted.
type RouteEdge struct {
	Prev   *galaxy.System
	Fuel   int
	Days   int
	Danger float64
}

// Less reports whether e is a strictly better route than other.
// Routes compare by days, then fuel, then danger.
func (e RouteEdge) Less(other RouteEdge) bool {
	if e.Days != other.Days {
		return e.Days < other.Days
	}
	if e.Fuel != other.Fuel {
		return e.Fuel < other.Fuel
	}
	return e.Danger < other.Danger
}

// IsRoot reports whether the edge is the start of a search
func (e RouteEdge) IsRoot() bool {
	return e.Prev == nil
}

func (e RouteEdge) String() string {
	prev := "-"
	if e.Prev != nil {
		prev = e.Prev.Symbol()
	}
	return fmt.Sprintf("RouteEdge(prev=%s days=%d fuel=%d danger=%.2f)", prev, e.Days, e.Fuel, e.Danger)
}
