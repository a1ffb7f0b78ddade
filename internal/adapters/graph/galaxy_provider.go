package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/andrescamacho/starlane/internal/adapters/metrics"
	"github.com/andrescamacho/starlane/internal/application/common"
	"github.com/andrescamacho/starlane/internal/domain/galaxy"
)

// GalaxyProvider provides the galaxy snapshot with in-memory caching
//
// The first request loads the galaxy from the repository; concurrent
// requests during that load share its result. Later requests reuse the
// cached snapshot until Invalidate is called.
type GalaxyProvider struct {
	repo  galaxy.Repository
	group singleflight.Group

	mu         sync.RWMutex
	cached     *galaxy.Galaxy
	generation uint64
}

// NewGalaxyProvider creates a new galaxy provider
func NewGalaxyProvider(repo galaxy.Repository) *GalaxyProvider {
	return &GalaxyProvider{repo: repo}
}

// Galaxy returns the cached snapshot, loading it if needed
func (p *GalaxyProvider) Galaxy(ctx context.Context) (*galaxy.Galaxy, error) {
	logger := common.LoggerFromContext(ctx)

	p.mu.RLock()
	cached, generation := p.cached, p.generation
	p.mu.RUnlock()

	if cached != nil {
		metrics.RecordGalaxyLoad("cache", 0, cached.Len())
		return cached, nil
	}

	// The load outlives any single caller; each caller still stops waiting
	// when its own context ends.
	loadCtx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("galaxy-%d", generation)
	results := p.group.DoChan(key, func() (interface{}, error) {
		// Double-check cache after winning the singleflight race
		p.mu.RLock()
		cached := p.cached
		p.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}
		return p.load(loadCtx, generation)
	})

	var result singleflight.Result
	select {
	case result = <-results:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if result.Err != nil {
		return nil, result.Err
	}
	if result.Shared {
		logger.Log("DEBUG", "Galaxy load shared with concurrent request", nil)
	}

	g, ok := result.Val.(*galaxy.Galaxy)
	if !ok {
		return nil, fmt.Errorf("unexpected galaxy load result type %T", result.Val)
	}
	return g, nil
}

// Invalidate drops the cached snapshot
func (p *GalaxyProvider) Invalidate() {
	p.mu.Lock()
	p.cached = nil
	p.generation++
	p.mu.Unlock()
}

func (p *GalaxyProvider) load(ctx context.Context, generation uint64) (*galaxy.Galaxy, error) {
	logger := common.LoggerFromContext(ctx)
	start := time.Now()

	g, err := p.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load galaxy: %w", err)
	}

	duration := time.Since(start)
	metrics.RecordGalaxyLoad("database", duration.Seconds(), g.Len())
	logger.Log("INFO", "Galaxy loaded from database", map[string]interface{}{
		"systems":     g.Len(),
		"wormholes":   len(g.Wormholes()),
		"duration_ms": duration.Milliseconds(),
	})

	p.mu.Lock()
	// An import may have replaced the galaxy while this load was running
	if p.generation == generation {
		p.cached = g
	}
	p.mu.Unlock()

	return g, nil
}
