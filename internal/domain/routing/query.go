package routing

import "github.com/andrescamacho/starlane/internal/domain/galaxy"

// Unbounded disables a search limit
const Unbounded = -1

// Capabilities assumed when a search starts from a bare system
const (
	DefaultHyperdriveFuel = 100
	DefaultJumpFuel       = 200
	DefaultJumpRange      = 100.0
)

// StartKind tells where a search gets its start and capabilities from
type StartKind int

const (
	StartSystem StartKind = iota
	StartPlayer
	StartShip
)

func (k StartKind) String() string {
	switch k {
	case StartSystem:
		return "system"
	case StartPlayer:
		return "player"
	case StartShip:
		return "ship"
	default:
		return "unknown"
	}
}

// Query describes one search. Build it with FromSystem, FromPlayer or
// FromShip and refine it with the With* methods, each of which returns a
// modified copy.
type Query struct {
	kind        StartKind
	start       *galaxy.System
	destination *galaxy.System
	knowledge   Knowledge
	vessel      Vessel
	drive       Drive
	wormholes   WormholeStrategy
	maxSystems  int
	maxDays     int
}

// FromSystem searches outward from a bare system with a plain hyperdrive.
// Wormholes are not used.
func FromSystem(start *galaxy.System) Query {
	return Query{
		kind:       StartSystem,
		start:      start,
		drive:      Drive{HyperdriveFuel: DefaultHyperdriveFuel},
		wormholes:  NeverUsable,
		maxSystems: Unbounded,
		maxDays:    Unbounded,
	}
}

// FromPlayer searches from the player's flagship using its drives, limited
// to links the player knows of. A flagship entering hyperspace starts from
// its target system. Without a flagship the search finds nothing.
func FromPlayer(g *galaxy.Galaxy, knowledge Knowledge, flagship Vessel) Query {
	q := Query{
		kind:       StartPlayer,
		knowledge:  knowledge,
		wormholes:  UsableIfMapped,
		maxSystems: Unbounded,
		maxDays:    Unbounded,
	}
	if flagship == nil || g == nil {
		return q
	}

	q.vessel = flagship
	q.drive = DriveOf(flagship)

	symbol := flagship.SystemSymbol()
	if target, ok := flagship.HyperspaceTarget(); ok {
		symbol = target
	}
	if start, ok := g.System(symbol); ok {
		q.start = start
	}
	return q
}

// FromShip searches from a ship's current system to destination using the
// ship's own drives, stopping as soon as the destination is reached.
func FromShip(g *galaxy.Galaxy, ship Vessel, destination *galaxy.System) Query {
	q := Query{
		kind:        StartShip,
		destination: destination,
		wormholes:   AlwaysUsable,
		maxSystems:  Unbounded,
		maxDays:     Unbounded,
	}
	if ship == nil || g == nil {
		return q
	}

	q.vessel = ship
	q.drive = DriveOf(ship)
	if start, ok := g.System(ship.SystemSymbol()); ok {
		q.start = start
	}
	return q
}

// WithMaxSystems stops the search once k systems have a route. Negative means unbounded.
func (q Query) WithMaxSystems(k int) Query {
	if k < 0 {
		k = Unbounded
	}
	q.maxSystems = k
	return q
}

// WithMaxDays drops every route longer than d days. Negative means unbounded.
func (q Query) WithMaxDays(d int) Query {
	if d < 0 {
		d = Unbounded
	}
	q.maxDays = d
	return q
}

func (q Query) WithWormholes(strategy WormholeStrategy) Query {
	q.wormholes = strategy
	return q
}

// WithDrive replaces the assumed travel capabilities
func (q Query) WithDrive(drive Drive) Query {
	q.drive = drive
	return q
}

// WithCenter moves the start of the search, keeping everything else.
// Used to plan onward from the end of an existing route.
func (q Query) WithCenter(center *galaxy.System) Query {
	if q.kind == StartPlayer && q.vessel == nil {
		return q
	}
	q.start = center
	return q
}

func (q Query) Kind() StartKind {
	return q.kind
}

func (q Query) Start() *galaxy.System {
	return q.start
}

func (q Query) Destination() *galaxy.System {
	return q.destination
}

func (q Query) Drive() Drive {
	return q.drive
}

func (q Query) Wormholes() WormholeStrategy {
	return q.wormholes
}

func (q Query) MaxSystems() int {
	return q.maxSystems
}

func (q Query) MaxDays() int {
	return q.maxDays
}

// withDestination is only reachable through newDestinationMap
func (q Query) withDestination(destination *galaxy.System) Query {
	q.destination = destination
	return q
}
