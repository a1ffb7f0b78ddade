package galaxy

import "context"

// Repository defines galaxy persistence operations
type Repository interface {
	// Load rebuilds the full galaxy snapshot
	Load(ctx context.Context) (*Galaxy, error)

	// Save replaces the stored galaxy with the given one
	Save(ctx context.Context, g *Galaxy) error
}

// Provider hands out the current galaxy snapshot. Snapshots are shared
// between concurrent searches and must not be mutated.
type Provider interface {
	Galaxy(ctx context.Context) (*Galaxy, error)

	// Invalidate drops the cached snapshot so the next call reloads it
	Invalidate()
}
