package routing

import (
	"container/heap"
	"sort"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
)

type linkKind int

const (
	linkHyperlane linkKind = iota
	linkJump
	linkWormhole
)

// DistanceMap holds the best route from a start system to every system a
// search reached. The search runs to completion inside NewDistanceMap; the
// result is read-only afterwards.
type DistanceMap struct {
	center      *galaxy.System
	destination *galaxy.System
	route       map[*galaxy.System]RouteEdge
}

// NewDistanceMap runs the search described by q
func NewDistanceMap(q Query) *DistanceMap {
	return build(q)
}

// newDestinationMap runs q with early stop at destination
func newDestinationMap(q Query, destination *galaxy.System) *DistanceMap {
	return build(q.withDestination(destination))
}

// search is the mutable state of one build; it never escapes build
type search struct {
	query     Query
	drive     Drive
	route     map[*galaxy.System]RouteEdge
	tentative map[*galaxy.System]RouteEdge
	queue     candidateQueue
	seq       int
}

func build(q Query) *DistanceMap {
	m := &DistanceMap{
		center:      q.start,
		destination: q.destination,
		route:       make(map[*galaxy.System]RouteEdge),
	}
	if q.start == nil || q.maxSystems == 0 {
		return m
	}

	drive := q.drive
	// Jump neighbours include every hyperlane link, so hyperlane edges at the
	// same cost add nothing.
	if drive.HyperdriveFuel == drive.JumpFuel {
		drive.HyperdriveFuel = 0
	}

	s := &search{
		query:     q,
		drive:     drive,
		route:     m.route,
		tentative: make(map[*galaxy.System]RouteEdge),
	}
	s.run()
	return m
}

func (s *search) run() {
	start := s.query.start
	s.tentative[start] = RouteEdge{}
	s.push(start, RouteEdge{})

	for s.queue.Len() > 0 {
		next := heap.Pop(&s.queue).(*candidate)
		if _, done := s.route[next.system]; done {
			continue
		}
		s.route[next.system] = next.edge

		if next.system == s.query.destination {
			return
		}
		if s.query.maxSystems != Unbounded && len(s.route) >= s.query.maxSystems {
			return
		}
		s.expand(next.system, next.edge)
	}
}

func (s *search) expand(from *galaxy.System, edge RouteEdge) {
	next := RouteEdge{
		Prev:   from,
		Fuel:   edge.Fuel,
		Days:   edge.Days + 1,
		Danger: edge.Danger + from.Danger(),
	}
	if s.query.maxDays != Unbounded && next.Days > s.query.maxDays {
		return
	}

	if s.query.wormholes != NeverUsable {
		for _, link := range from.WormholeLinks() {
			if s.query.vessel != nil && !s.query.vessel.CanTraverse(link.Wormhole) {
				continue
			}
			s.relax(from, link.To, next, linkWormhole)
		}
	}

	if s.drive.HyperdriveFuel > 0 {
		hyperlane := next
		hyperlane.Fuel += s.drive.HyperdriveFuel
		for _, to := range from.Links() {
			s.relax(from, to, hyperlane, linkHyperlane)
		}
	}

	if s.drive.JumpFuel > 0 {
		jump := next
		jump.Fuel += s.drive.JumpFuel
		for _, to := range from.JumpNeighbors(s.drive.JumpRange) {
			s.relax(from, to, jump, linkJump)
		}
	}
}

func (s *search) relax(from, to *galaxy.System, edge RouteEdge, kind linkKind) {
	if s.hasBetter(to, edge) || !s.checkLink(from, to, kind) {
		return
	}
	s.tentative[to] = edge
	s.push(to, edge)
}

// hasBetter reports whether to already has a route at least as good as edge
func (s *search) hasBetter(to *galaxy.System, edge RouteEdge) bool {
	if _, done := s.route[to]; done {
		return true
	}
	best, ok := s.tentative[to]
	return ok && !edge.Less(best)
}

// checkLink reports whether the searching player knows of the link.
// Searches without a player may use every link.
func (s *search) checkLink(from, to *galaxy.System, kind linkKind) bool {
	knowledge := s.query.knowledge
	if knowledge == nil {
		return true
	}

	if kind == linkWormhole {
		switch s.query.wormholes {
		case AlwaysUsable:
			return true
		case UsableIfMapped:
			return knowledge.HasVisited(from.Symbol()) || knowledge.HasVisited(to.Symbol())
		default:
			return false
		}
	}

	if !knowledge.HasSeen(to.Symbol()) {
		return false
	}
	// Systems in jump range are visible on the map even if unexplored.
	if kind == linkJump && from.InJumpRange(to, s.drive.JumpRange) {
		return true
	}
	return knowledge.HasVisited(from.Symbol()) || knowledge.HasVisited(to.Symbol())
}

func (s *search) push(system *galaxy.System, edge RouteEdge) {
	heap.Push(&s.queue, &candidate{system: system, edge: edge, seq: s.seq})
	s.seq++
}

// HasRoute reports whether the search reached system
func (m *DistanceMap) HasRoute(system *galaxy.System) bool {
	_, ok := m.route[system]
	return ok
}

// Days returns how many days away system is, or -1 if it was not reached
func (m *DistanceMap) Days(system *galaxy.System) int {
	edge, ok := m.route[system]
	if !ok {
		return -1
	}
	return edge.Days
}

// Edge returns the finalized route into system
func (m *DistanceMap) Edge(system *galaxy.System) (RouteEdge, bool) {
	edge, ok := m.route[system]
	return edge, ok
}

// Plan returns the systems from the start to system, both included.
// It is empty if system was not reached.
func (m *DistanceMap) Plan(system *galaxy.System) []*galaxy.System {
	if !m.HasRoute(system) {
		return nil
	}

	var plan []*galaxy.System
	for step := system; step != nil; step = m.route[step].Prev {
		plan = append(plan, step)
	}
	for i, j := 0, len(plan)-1; i < j; i, j = i+1, j-1 {
		plan[i], plan[j] = plan[j], plan[i]
	}
	return plan
}

// Systems returns every reached system sorted by symbol
func (m *DistanceMap) Systems() []*galaxy.System {
	systems := make([]*galaxy.System, 0, len(m.route))
	for system := range m.route {
		systems = append(systems, system)
	}
	sort.Slice(systems, func(i, j int) bool {
		return systems[i].Symbol() < systems[j].Symbol()
	})
	return systems
}

// Center returns the start of the search, nil if there was none
func (m *DistanceMap) Center() *galaxy.System {
	return m.center
}

func (m *DistanceMap) Len() int {
	return len(m.route)
}
