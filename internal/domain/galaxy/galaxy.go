package galaxy

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// Galaxy is the map of star systems a route search runs over.
// It owns its systems and wormholes. Mutating methods must not be called
// while a search is in flight; the application layer only hands out
// galaxies that are no longer being built.
type Galaxy struct {
	systems   map[string]*System
	wormholes map[string]*Wormhole
}

// Link is a directed hyperlane between two systems, by symbol
type Link struct {
	From string
	To   string
}

// New creates an empty galaxy
func New() *Galaxy {
	return &Galaxy{
		systems:   make(map[string]*System),
		wormholes: make(map[string]*Wormhole),
	}
}

// AddSystem adds a system to the galaxy
func (g *Galaxy) AddSystem(symbol string, position shared.Position, danger float64) (*System, error) {
	if symbol == "" {
		return nil, shared.NewValidationError("symbol", "cannot be empty")
	}
	if _, exists := g.systems[symbol]; exists {
		return nil, shared.NewValidationError("symbol", fmt.Sprintf("system %s already exists", symbol))
	}
	if danger < 0 {
		return nil, shared.NewValidationError("danger", "cannot be negative")
	}

	system := &System{
		symbol:   symbol,
		position: position,
		danger:   danger,
		galaxy:   g,
	}
	g.systems[symbol] = system
	return system, nil
}

// SetJumpRange gives a system its own jump range, overriding ship drives
// departing from it. Zero clears the override.
func (g *Galaxy) SetJumpRange(symbol string, jumpRange float64) error {
	system, err := g.lookup(symbol)
	if err != nil {
		return err
	}
	if jumpRange < 0 {
		return shared.NewValidationError("jump_range", "cannot be negative")
	}
	system.jumpRange = jumpRange
	return nil
}

// AddHyperlane adds a bidirectional hyperlane between two systems
func (g *Galaxy) AddHyperlane(a, b string) error {
	if err := g.AddLink(a, b); err != nil {
		return err
	}
	return g.AddLink(b, a)
}

// AddLink adds a one-way hyperlane. Adding an existing link is a no-op.
func (g *Galaxy) AddLink(from, to string) error {
	if from == to {
		return shared.NewValidationError("link", fmt.Sprintf("system %s cannot link to itself", from))
	}
	source, err := g.lookup(from)
	if err != nil {
		return err
	}
	target, err := g.lookup(to)
	if err != nil {
		return err
	}
	if source.HasLinkTo(target) {
		return nil
	}
	source.links = append(source.links, target)
	return nil
}

// AddWormhole adds a wormhole cycling through the given stops.
// accessModule may be empty for an unrestricted wormhole.
func (g *Galaxy) AddWormhole(symbol, accessModule string, stops ...string) (*Wormhole, error) {
	if symbol == "" {
		return nil, shared.NewValidationError("wormhole", "symbol cannot be empty")
	}
	if _, exists := g.wormholes[symbol]; exists {
		return nil, shared.NewValidationError("wormhole", fmt.Sprintf("wormhole %s already exists", symbol))
	}
	if len(stops) < 2 {
		return nil, shared.NewValidationError("stops", "a wormhole needs at least two stops")
	}

	seen := make(map[string]bool, len(stops))
	systems := make([]*System, 0, len(stops))
	for _, stop := range stops {
		if seen[stop] {
			return nil, shared.NewValidationError("stops", fmt.Sprintf("system %s appears twice", stop))
		}
		seen[stop] = true

		system, err := g.lookup(stop)
		if err != nil {
			return nil, err
		}
		systems = append(systems, system)
	}

	wormhole := &Wormhole{
		symbol:       symbol,
		accessModule: accessModule,
		stops:        systems,
	}
	for _, from := range systems {
		from.wormholes = append(from.wormholes, WormholeLink{
			Wormhole: wormhole,
			To:       wormhole.Destination(from),
		})
	}
	g.wormholes[symbol] = wormhole
	return wormhole, nil
}

// System looks up a system by symbol
func (g *Galaxy) System(symbol string) (*System, bool) {
	system, ok := g.systems[symbol]
	return system, ok
}

// Wormhole looks up a wormhole by symbol
func (g *Galaxy) Wormhole(symbol string) (*Wormhole, bool) {
	wormhole, ok := g.wormholes[symbol]
	return wormhole, ok
}

// Systems returns all systems sorted by symbol
func (g *Galaxy) Systems() []*System {
	systems := make([]*System, 0, len(g.systems))
	for _, system := range g.systems {
		systems = append(systems, system)
	}
	sortSystems(systems)
	return systems
}

// Wormholes returns all wormholes sorted by symbol
func (g *Galaxy) Wormholes() []*Wormhole {
	wormholes := make([]*Wormhole, 0, len(g.wormholes))
	for _, wormhole := range g.wormholes {
		wormholes = append(wormholes, wormhole)
	}
	sort.Slice(wormholes, func(i, j int) bool {
		return wormholes[i].symbol < wormholes[j].symbol
	})
	return wormholes
}

// Links returns every directed hyperlane, ordered by source then insertion
func (g *Galaxy) Links() []Link {
	var links []Link
	for _, system := range g.Systems() {
		for _, to := range system.links {
			links = append(links, Link{From: system.symbol, To: to.symbol})
		}
	}
	return links
}

// Len returns the number of systems
func (g *Galaxy) Len() int {
	return len(g.systems)
}

// JumpNeighbors returns the systems a jump drive can reach from from, sorted
// by symbol: every system within jump range plus every hyperlane link.
// from's own jump range, when positive, replaces shipRange.
func (g *Galaxy) JumpNeighbors(from *System, shipRange float64) []*System {
	var neighbors []*System
	if from.effectiveJumpRange(shipRange) > 0 {
		for _, system := range g.systems {
			if system != from && from.InJumpRange(system, shipRange) {
				neighbors = append(neighbors, system)
			}
		}
	}
	for _, link := range from.links {
		if !from.InJumpRange(link, shipRange) {
			neighbors = append(neighbors, link)
		}
	}
	sortSystems(neighbors)
	return neighbors
}

func (g *Galaxy) lookup(symbol string) (*System, error) {
	system, ok := g.systems[symbol]
	if !ok {
		return nil, shared.NewNotFoundError("system", symbol)
	}
	return system, nil
}

func sortSystems(systems []*System) {
	sort.Slice(systems, func(i, j int) bool {
		return systems[i].symbol < systems[j].symbol
	})
}
