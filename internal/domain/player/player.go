package player

import (
	"sort"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// Player represents a captain and what they know about the galaxy.
// A visited system is always seen as well.
type Player struct {
	ID             int
	AgentSymbol    string
	FlagshipSymbol string
	visited        map[string]bool
	seen           map[string]bool
}

// NewPlayer creates a new player with an empty map
func NewPlayer(id int, agentSymbol string) (*Player, error) {
	if id <= 0 {
		return nil, shared.NewValidationError("id", "must be positive")
	}
	if agentSymbol == "" {
		return nil, shared.NewValidationError("agent_symbol", "cannot be empty")
	}
	return &Player{
		ID:          id,
		AgentSymbol: agentSymbol,
		visited:     make(map[string]bool),
		seen:        make(map[string]bool),
	}, nil
}

// Visit records that the player has been to system. The system's hyperlane
// neighbours become visible on the player's map.
func (p *Player) Visit(system *galaxy.System) {
	p.visited[system.Symbol()] = true
	p.seen[system.Symbol()] = true
	for _, link := range system.Links() {
		p.seen[link.Symbol()] = true
	}
}

// MarkVisited records a visit by symbol without revealing neighbours.
// Used when restoring a player from storage.
func (p *Player) MarkVisited(systemSymbol string) {
	p.visited[systemSymbol] = true
	p.seen[systemSymbol] = true
}

// MarkSeen puts a system on the player's map
func (p *Player) MarkSeen(systemSymbol string) {
	p.seen[systemSymbol] = true
}

func (p *Player) HasVisited(systemSymbol string) bool {
	return p.visited[systemSymbol]
}

func (p *Player) HasSeen(systemSymbol string) bool {
	return p.seen[systemSymbol]
}

// VisitedSystems returns visited symbols in sorted order
func (p *Player) VisitedSystems() []string {
	return sortedKeys(p.visited)
}

// SeenSystems returns seen symbols in sorted order, visited ones included
func (p *Player) SeenSystems() []string {
	return sortedKeys(p.seen)
}

// HasFlagship reports whether the player has a ship to plan routes for
func (p *Player) HasFlagship() bool {
	return p.FlagshipSymbol != ""
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
