package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// GormGalaxyRepository implements galaxy.Repository using GORM.
// The whole map is stored and loaded as one snapshot.
type GormGalaxyRepository struct {
	db *gorm.DB
}

// NewGormGalaxyRepository creates a new GORM-based galaxy repository
func NewGormGalaxyRepository(db *gorm.DB) *GormGalaxyRepository {
	return &GormGalaxyRepository{db: db}
}

// Load rebuilds the galaxy from the systems, links and wormholes tables
func (r *GormGalaxyRepository) Load(ctx context.Context) (*galaxy.Galaxy, error) {
	db := r.db.WithContext(ctx)

	var systems []SystemModel
	if err := db.Order("symbol").Find(&systems).Error; err != nil {
		return nil, fmt.Errorf("failed to load systems: %w", err)
	}
	if len(systems) == 0 {
		return nil, shared.NewNotFoundError("galaxy", "systems")
	}

	var links []LinkModel
	if err := db.Order("from_symbol, position").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load links: %w", err)
	}

	var wormholes []WormholeModel
	err := db.Preload("Stops", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Order("symbol").Find(&wormholes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load wormholes: %w", err)
	}

	return r.modelsToGalaxy(systems, links, wormholes)
}

// Save replaces the stored galaxy in a single transaction
func (r *GormGalaxyRepository) Save(ctx context.Context, g *galaxy.Galaxy) error {
	systems, links, wormholes, stops := r.galaxyToModels(g)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&WormholeStopModel{}, &WormholeModel{}, &LinkModel{}, &SystemModel{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}

		if err := tx.CreateInBatches(systems, 500).Error; err != nil {
			return fmt.Errorf("failed to save systems: %w", err)
		}
		if len(links) > 0 {
			if err := tx.CreateInBatches(links, 500).Error; err != nil {
				return fmt.Errorf("failed to save links: %w", err)
			}
		}
		if len(wormholes) > 0 {
			if err := tx.Omit("Stops").Create(wormholes).Error; err != nil {
				return fmt.Errorf("failed to save wormholes: %w", err)
			}
			if err := tx.CreateInBatches(stops, 500).Error; err != nil {
				return fmt.Errorf("failed to save wormhole stops: %w", err)
			}
		}
		return nil
	})
}

func (r *GormGalaxyRepository) modelsToGalaxy(systems []SystemModel, links []LinkModel, wormholes []WormholeModel) (*galaxy.Galaxy, error) {
	g := galaxy.New()

	for _, model := range systems {
		position, err := shared.NewPosition(model.X, model.Y)
		if err != nil {
			return nil, fmt.Errorf("invalid position for system %s: %w", model.Symbol, err)
		}
		if _, err := g.AddSystem(model.Symbol, position, model.Danger); err != nil {
			return nil, fmt.Errorf("invalid system %s in database: %w", model.Symbol, err)
		}
		if model.JumpRange > 0 {
			if err := g.SetJumpRange(model.Symbol, model.JumpRange); err != nil {
				return nil, err
			}
		}
	}

	for _, link := range links {
		if err := g.AddLink(link.FromSymbol, link.ToSymbol); err != nil {
			return nil, fmt.Errorf("invalid link %s -> %s in database: %w", link.FromSymbol, link.ToSymbol, err)
		}
	}

	for _, wormhole := range wormholes {
		stops := make([]string, 0, len(wormhole.Stops))
		for _, stop := range wormhole.Stops {
			stops = append(stops, stop.SystemSymbol)
		}
		if _, err := g.AddWormhole(wormhole.Symbol, wormhole.AccessModule, stops...); err != nil {
			return nil, fmt.Errorf("invalid wormhole %s in database: %w", wormhole.Symbol, err)
		}
	}

	return g, nil
}

func (r *GormGalaxyRepository) galaxyToModels(g *galaxy.Galaxy) ([]SystemModel, []LinkModel, []WormholeModel, []WormholeStopModel) {
	systems := make([]SystemModel, 0, g.Len())
	var links []LinkModel
	for _, system := range g.Systems() {
		systems = append(systems, SystemModel{
			Symbol:    system.Symbol(),
			X:         system.Position().X,
			Y:         system.Position().Y,
			Danger:    system.Danger(),
			JumpRange: system.JumpRange(),
		})
		for i, to := range system.Links() {
			links = append(links, LinkModel{
				FromSymbol: system.Symbol(),
				ToSymbol:   to.Symbol(),
				Position:   i,
			})
		}
	}

	var wormholes []WormholeModel
	var stops []WormholeStopModel
	for _, wormhole := range g.Wormholes() {
		wormholes = append(wormholes, WormholeModel{
			Symbol:       wormhole.Symbol(),
			AccessModule: wormhole.AccessModule(),
		})
		for i, stop := range wormhole.Stops() {
			stops = append(stops, WormholeStopModel{
				WormholeSymbol: wormhole.Symbol(),
				Position:       i,
				SystemSymbol:   stop.Symbol(),
			})
		}
	}

	return systems, links, wormholes, stops
}
