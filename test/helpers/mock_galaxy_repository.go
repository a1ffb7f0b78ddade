package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// MockGalaxyRepository keeps the last saved galaxy in memory
type MockGalaxyRepository struct {
	mu     sync.Mutex
	galaxy *galaxy.Galaxy
	Loads  int
	Err    error
}

// NewMockGalaxyRepository creates a repository holding g, which may be nil
func NewMockGalaxyRepository(g *galaxy.Galaxy) *MockGalaxyRepository {
	return &MockGalaxyRepository{galaxy: g}
}

// Load returns the stored galaxy
func (m *MockGalaxyRepository) Load(ctx context.Context) (*galaxy.Galaxy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Loads++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.galaxy == nil {
		return nil, shared.NewNotFoundError("galaxy", "default")
	}
	return m.galaxy, nil
}

// Save replaces the stored galaxy
func (m *MockGalaxyRepository) Save(ctx context.Context, g *galaxy.Galaxy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.galaxy = g
	return nil
}

// Stored returns the last saved galaxy
func (m *MockGalaxyRepository) Stored() *galaxy.Galaxy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.galaxy
}
