package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// GormShipRepository implements ShipRepository using GORM
type GormShipRepository struct {
	db *gorm.DB
}

// NewGormShipRepository creates a new GORM ship repository
func NewGormShipRepository(db *gorm.DB) *GormShipRepository {
	return &GormShipRepository{db: db}
}

func preloadModules(tx *gorm.DB) *gorm.DB {
	return tx.Order("position")
}

// FindBySymbol retrieves a ship and its modules
func (r *GormShipRepository) FindBySymbol(ctx context.Context, symbol string) (*navigation.Ship, error) {
	var model ShipModel
	result := r.db.WithContext(ctx).
		Preload("Modules", preloadModules).
		Where("ship_symbol = ?", symbol).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("ship", symbol)
		}
		return nil, fmt.Errorf("failed to find ship: %w", result.Error)
	}

	return r.modelToShip(&model)
}

// ListByPlayer returns a player's ships ordered by symbol
func (r *GormShipRepository) ListByPlayer(ctx context.Context, playerID int) ([]*navigation.Ship, error) {
	return r.list(r.db.WithContext(ctx).Where("player_id = ?", playerID))
}

// List returns every ship ordered by symbol
func (r *GormShipRepository) List(ctx context.Context) ([]*navigation.Ship, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *GormShipRepository) list(tx *gorm.DB) ([]*navigation.Ship, error) {
	var models []ShipModel
	result := tx.Preload("Modules", preloadModules).Order("ship_symbol").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list ships: %w", result.Error)
	}

	ships := make([]*navigation.Ship, 0, len(models))
	for i := range models {
		ship, err := r.modelToShip(&models[i])
		if err != nil {
			return nil, err
		}
		ships = append(ships, ship)
	}
	return ships, nil
}

// Save upserts the ship and replaces its modules
func (r *GormShipRepository) Save(ctx context.Context, ship *navigation.Ship) error {
	model := r.shipToModel(ship)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit("Modules").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ship_symbol"}},
			DoUpdates: clause.AssignmentColumns([]string{"player_id", "system_symbol", "hyperspace_target", "updated_at"}),
		}).Create(model).Error
		if err != nil {
			return fmt.Errorf("failed to save ship: %w", err)
		}

		if err := tx.Where("ship_symbol = ?", model.ShipSymbol).Delete(&ShipModuleModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear ship modules: %w", err)
		}
		if len(model.Modules) == 0 {
			return nil
		}
		if err := tx.Create(&model.Modules).Error; err != nil {
			return fmt.Errorf("failed to save ship modules: %w", err)
		}
		return nil
	})
}

func (r *GormShipRepository) modelToShip(model *ShipModel) (*navigation.Ship, error) {
	modules := make([]*navigation.ShipModule, 0, len(model.Modules))
	for _, m := range model.Modules {
		module, err := navigation.NewShipModule(m.Symbol, navigation.ParseModuleKind(m.Kind, m.Symbol), m.Fuel, m.Range)
		if err != nil {
			return nil, fmt.Errorf("invalid module %s on ship %s: %w", m.Symbol, model.ShipSymbol, err)
		}
		modules = append(modules, module)
	}

	ship, err := navigation.NewShip(model.ShipSymbol, model.PlayerID, model.SystemSymbol, modules)
	if err != nil {
		return nil, fmt.Errorf("invalid ship in database: %w", err)
	}
	if model.HyperspaceTarget != "" {
		if err := ship.EnterHyperspace(model.HyperspaceTarget); err != nil {
			return nil, fmt.Errorf("invalid hyperspace target for %s: %w", model.ShipSymbol, err)
		}
	}
	return ship, nil
}

func (r *GormShipRepository) shipToModel(ship *navigation.Ship) *ShipModel {
	model := &ShipModel{
		ShipSymbol:   ship.ShipSymbol(),
		PlayerID:     ship.PlayerID(),
		SystemSymbol: ship.SystemSymbol(),
		UpdatedAt:    time.Now().UTC(),
	}
	if target, ok := ship.HyperspaceTarget(); ok {
		model.HyperspaceTarget = target
	}
	for i, module := range ship.Modules() {
		model.Modules = append(model.Modules, ShipModuleModel{
			ShipSymbol: ship.ShipSymbol(),
			Position:   i,
			Symbol:     module.Symbol(),
			Kind:       string(module.Kind()),
			Fuel:       module.Fuel(),
			Range:      module.Range(),
		})
	}
	return model
}
