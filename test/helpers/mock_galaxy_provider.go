package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
)

// MockGalaxyProvider hands out a fixed galaxy and counts invalidations
type MockGalaxyProvider struct {
	mu            sync.Mutex
	galaxy        *galaxy.Galaxy
	Err           error
	Invalidations int
}

// NewMockGalaxyProvider creates a provider serving g
func NewMockGalaxyProvider(g *galaxy.Galaxy) *MockGalaxyProvider {
	return &MockGalaxyProvider{galaxy: g}
}

// Galaxy returns the configured galaxy or error
func (m *MockGalaxyProvider) Galaxy(ctx context.Context) (*galaxy.Galaxy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.galaxy, nil
}

// SetGalaxy replaces the served galaxy
func (m *MockGalaxyProvider) SetGalaxy(g *galaxy.Galaxy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.galaxy = g
}

// Invalidate records the call
func (m *MockGalaxyProvider) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invalidations++
}
