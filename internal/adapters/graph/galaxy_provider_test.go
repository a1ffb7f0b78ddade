package graph_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane/internal/adapters/graph"
	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

type countingRepository struct {
	loads atomic.Int32
	delay time.Duration
	err   error
}

func (r *countingRepository) Load(ctx context.Context) (*galaxy.Galaxy, error) {
	r.loads.Add(1)
	time.Sleep(r.delay)
	if r.err != nil {
		return nil, r.err
	}
	g := galaxy.New()
	if _, err := g.AddSystem("Sol", shared.Position{}, 0); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *countingRepository) Save(ctx context.Context, g *galaxy.Galaxy) error {
	return nil
}

func TestGalaxyProvider_CachesSnapshot(t *testing.T) {
	repo := &countingRepository{}
	provider := graph.NewGalaxyProvider(repo)

	first, err := provider.Galaxy(context.Background())
	require.NoError(t, err)
	second, err := provider.Galaxy(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), repo.loads.Load())
}

func TestGalaxyProvider_ConcurrentRequestsShareLoad(t *testing.T) {
	repo := &countingRepository{delay: 50 * time.Millisecond}
	provider := graph.NewGalaxyProvider(repo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := provider.Galaxy(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 1, g.Len())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), repo.loads.Load())
}

func TestGalaxyProvider_InvalidateReloads(t *testing.T) {
	repo := &countingRepository{}
	provider := graph.NewGalaxyProvider(repo)

	first, err := provider.Galaxy(context.Background())
	require.NoError(t, err)
	provider.Invalidate()
	second, err := provider.Galaxy(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), repo.loads.Load())
}

func TestGalaxyProvider_LoadError(t *testing.T) {
	repo := &countingRepository{err: errors.New("database down")}
	provider := graph.NewGalaxyProvider(repo)

	_, err := provider.Galaxy(context.Background())

	assert.ErrorContains(t, err, "database down")
}

// gatedRepository blocks Load until release is closed
type gatedRepository struct {
	started chan struct{}
	release chan struct{}
	loadErr error
}

func (r *gatedRepository) Load(ctx context.Context) (*galaxy.Galaxy, error) {
	close(r.started)
	<-r.release
	if err := ctx.Err(); err != nil {
		r.loadErr = err
		return nil, err
	}
	return galaxy.New(), nil
}

func (r *gatedRepository) Save(ctx context.Context, g *galaxy.Galaxy) error {
	return nil
}

func TestGalaxyProvider_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	repo := &gatedRepository{started: make(chan struct{}), release: make(chan struct{})}
	provider := graph.NewGalaxyProvider(repo)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := provider.Galaxy(firstCtx)
		firstErr <- err
	}()
	<-repo.started

	secondDone := make(chan error, 1)
	go func() {
		_, err := provider.Galaxy(context.Background())
		secondDone <- err
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(repo.release)
	require.NoError(t, <-secondDone)
	assert.NoError(t, repo.loadErr)

	g, err := provider.Galaxy(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, g)
}
