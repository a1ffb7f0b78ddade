package routing

import "github.com/andrescamacho/starlane/internal/domain/galaxy"

// Step is one system of a route plan with the cumulative route into it
type Step struct {
	System *galaxy.System
	Edge   RouteEdge
}

// FuelCost is the fuel one jump of a route plan consumes
type FuelCost struct {
	System *galaxy.System
	Fuel   int
}

// RoutePlan is the best route from the start of a query to one destination
type RoutePlan struct {
	steps []Step
}

// NewRoutePlan searches from the start of q until destination is reached.
// The destination passed here replaces any destination set on q.
func NewRoutePlan(q Query, destination *galaxy.System) *RoutePlan {
	plan := &RoutePlan{}
	if destination == nil {
		return plan
	}

	distances := newDestinationMap(q, destination)
	edge, ok := distances.route[destination]
	if !ok {
		return plan
	}

	plan.steps = append(plan.steps, Step{System: destination, Edge: edge})
	for edge.Prev != nil {
		system := edge.Prev
		edge = distances.route[system]
		plan.steps = append(plan.steps, Step{System: system, Edge: edge})
	}
	for i, j := 0, len(plan.steps)-1; i < j; i, j = i+1, j-1 {
		plan.steps[i], plan.steps[j] = plan.steps[j], plan.steps[i]
	}
	return plan
}

// HasRoute reports whether the destination is reachable
func (p *RoutePlan) HasRoute() bool {
	return len(p.steps) > 0
}

// Days returns the travel time to the destination, or -1 if unreachable
func (p *RoutePlan) Days() int {
	if !p.HasRoute() {
		return -1
	}
	return p.last().Edge.Days
}

// RequiredFuel returns the fuel needed to reach the destination, or -1 if unreachable
func (p *RoutePlan) RequiredFuel() int {
	if !p.HasRoute() {
		return -1
	}
	return p.last().Edge.Fuel
}

// Danger returns the danger accumulated along the route, or -1 if unreachable
func (p *RoutePlan) Danger() float64 {
	if !p.HasRoute() {
		return -1
	}
	return p.last().Edge.Danger
}

// FirstStep returns the system to jump to first. It is nil when there is no
// route or the start already is the destination.
func (p *RoutePlan) FirstStep() *galaxy.System {
	if len(p.steps) < 2 {
		return nil
	}
	return p.steps[1].System
}

// Plan returns the systems from start to destination, both included
func (p *RoutePlan) Plan() []*galaxy.System {
	systems := make([]*galaxy.System, 0, len(p.steps))
	for _, step := range p.steps {
		systems = append(systems, step.System)
	}
	return systems
}

// FuelCosts returns the fuel of each jump, in travel order
func (p *RoutePlan) FuelCosts() []FuelCost {
	if len(p.steps) < 2 {
		return nil
	}
	costs := make([]FuelCost, 0, len(p.steps)-1)
	for i := 1; i < len(p.steps); i++ {
		costs = append(costs, FuelCost{
			System: p.steps[i].System,
			Fuel:   p.steps[i].Edge.Fuel - p.steps[i-1].Edge.Fuel,
		})
	}
	return costs
}

// Steps returns every system of the route with its cumulative edge, start first
func (p *RoutePlan) Steps() []Step {
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	return steps
}

func (p *RoutePlan) last() Step {
	return p.steps[len(p.steps)-1]
}
