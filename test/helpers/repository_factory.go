package helpers

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/starlane/internal/adapters/graph"
	"github.com/andrescamacho/starlane/internal/adapters/persistence"
)

// TestRepositories holds real GORM repositories over an in-memory database
type TestRepositories struct {
	DB         *gorm.DB
	GalaxyRepo *persistence.GormGalaxyRepository
	PlayerRepo *persistence.GormPlayerRepository
	ShipRepo   *persistence.GormShipRepository
	Galaxies   *graph.GalaxyProvider
}

// NewTestRepositories creates repositories backed by a fresh test database
func NewTestRepositories(t *testing.T) *TestRepositories {
	t.Helper()
	db := NewTestDB(t)
	galaxyRepo := persistence.NewGormGalaxyRepository(db)

	return &TestRepositories{
		DB:         db,
		GalaxyRepo: galaxyRepo,
		PlayerRepo: persistence.NewGormPlayerRepository(db),
		ShipRepo:   persistence.NewGormShipRepository(db),
		Galaxies:   graph.NewGalaxyProvider(galaxyRepo),
	}
}

// SeedFrontier stores the frontier fixture galaxy, player and ships
func (r *TestRepositories) SeedFrontier(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	g := NewFrontierGalaxy(t)
	if err := r.GalaxyRepo.Save(ctx, g); err != nil {
		t.Fatalf("seed galaxy: %v", err)
	}
	if err := r.PlayerRepo.Save(ctx, NewFrontierPlayer(t, g)); err != nil {
		t.Fatalf("seed player: %v", err)
	}
	for _, ship := range NewFrontierShips(t) {
		if err := r.ShipRepo.Save(ctx, ship); err != nil {
			t.Fatalf("seed ship %s: %v", ship.ShipSymbol(), err)
		}
	}
	r.Galaxies.Invalidate()
}
