package helpers

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// MockShipRepository is an in-memory implementation of ShipRepository for testing
type MockShipRepository struct {
	mu    sync.RWMutex
	Ships map[string]*navigation.Ship // key: ship_symbol
}

// NewMockShipRepository creates a new mock ship repository
func NewMockShipRepository(ships ...*navigation.Ship) *MockShipRepository {
	m := &MockShipRepository{Ships: make(map[string]*navigation.Ship)}
	for _, ship := range ships {
		m.Ships[ship.ShipSymbol()] = ship
	}
	return m
}

// FindBySymbol retrieves a ship by symbol
func (m *MockShipRepository) FindBySymbol(ctx context.Context, symbol string) (*navigation.Ship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ship, exists := m.Ships[symbol]
	if !exists {
		return nil, shared.NewNotFoundError("ship", symbol)
	}
	return ship, nil
}

// ListByPlayer returns a player's ships sorted by symbol
func (m *MockShipRepository) ListByPlayer(ctx context.Context, playerID int) ([]*navigation.Ship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ships []*navigation.Ship
	for _, ship := range m.Ships {
		if ship.PlayerID() == playerID {
			ships = append(ships, ship)
		}
	}
	sort.Slice(ships, func(i, j int) bool {
		return ships[i].ShipSymbol() < ships[j].ShipSymbol()
	})
	return ships, nil
}

// List returns every ship sorted by symbol
func (m *MockShipRepository) List(ctx context.Context) ([]*navigation.Ship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ships := make([]*navigation.Ship, 0, len(m.Ships))
	for _, ship := range m.Ships {
		ships = append(ships, ship)
	}
	sort.Slice(ships, func(i, j int) bool {
		return ships[i].ShipSymbol() < ships[j].ShipSymbol()
	})
	return ships, nil
}

// Save stores the ship
func (m *MockShipRepository) Save(ctx context.Context, ship *navigation.Ship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ships[ship.ShipSymbol()] = ship
	return nil
}

func playerKey(playerID int) string {
	return strconv.Itoa(playerID)
}
