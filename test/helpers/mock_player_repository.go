package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/starlane/internal/domain/player"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// MockPlayerRepository is a test double for PlayerRepository interface
type MockPlayerRepository struct {
	mu      sync.RWMutex
	players map[int]*player.Player    // playerID -> player
	byAgent map[string]*player.Player // agentSymbol -> player
	Saves   int
}

// NewMockPlayerRepository creates a new mock player repository
func NewMockPlayerRepository(players ...*player.Player) *MockPlayerRepository {
	m := &MockPlayerRepository{
		players: make(map[int]*player.Player),
		byAgent: make(map[string]*player.Player),
	}
	for _, p := range players {
		m.AddPlayer(p)
	}
	return m
}

// AddPlayer adds a player to the mock repository
func (m *MockPlayerRepository) AddPlayer(p *player.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = p
	m.byAgent[p.AgentSymbol] = p
}

// FindByID retrieves a player by ID
func (m *MockPlayerRepository) FindByID(ctx context.Context, playerID int) (*player.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.players[playerID]
	if !ok {
		return nil, shared.NewNotFoundError("player", playerKey(playerID))
	}
	return p, nil
}

// FindByAgentSymbol retrieves a player by agent symbol
func (m *MockPlayerRepository) FindByAgentSymbol(ctx context.Context, agentSymbol string) (*player.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.byAgent[agentSymbol]
	if !ok {
		return nil, shared.NewNotFoundError("player", agentSymbol)
	}
	return p, nil
}

// List returns every player sorted by ID
func (m *MockPlayerRepository) List(ctx context.Context) ([]*player.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	players := make([]*player.Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

// Save persists player state
func (m *MockPlayerRepository) Save(ctx context.Context, p *player.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = p
	m.byAgent[p.AgentSymbol] = p
	m.Saves++
	return nil
}
