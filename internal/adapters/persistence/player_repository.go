package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/starlane/internal/domain/player"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// GormPlayerRepository implements PlayerRepository using GORM
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewGormPlayerRepository creates a new GORM player repository
func NewGormPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{db: db}
}

// FindByID retrieves a player by ID
func (r *GormPlayerRepository) FindByID(ctx context.Context, playerID int) (*player.Player, error) {
	var model PlayerModel
	result := r.db.WithContext(ctx).Preload("Systems").Where("id = ?", playerID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("player", strconv.Itoa(playerID))
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return r.modelToPlayer(&model)
}

// FindByAgentSymbol retrieves a player by agent symbol
func (r *GormPlayerRepository) FindByAgentSymbol(ctx context.Context, agentSymbol string) (*player.Player, error) {
	var model PlayerModel
	result := r.db.WithContext(ctx).Preload("Systems").Where("agent_symbol = ?", agentSymbol).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("player", agentSymbol)
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return r.modelToPlayer(&model)
}

// List returns every player ordered by ID
func (r *GormPlayerRepository) List(ctx context.Context) ([]*player.Player, error) {
	var models []PlayerModel
	if err := r.db.WithContext(ctx).Preload("Systems").Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	players := make([]*player.Player, 0, len(models))
	for i := range models {
		p, err := r.modelToPlayer(&models[i])
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

// Save upserts the player and replaces their map
func (r *GormPlayerRepository) Save(ctx context.Context, p *player.Player) error {
	model := r.playerToModel(p)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit("Systems").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"agent_symbol", "flagship_symbol", "updated_at"}),
		}).Create(model).Error
		if err != nil {
			return fmt.Errorf("failed to save player: %w", err)
		}

		if err := tx.Where("player_id = ?", p.ID).Delete(&PlayerSystemModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear player map: %w", err)
		}
		if len(model.Systems) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(model.Systems, 500).Error; err != nil {
			return fmt.Errorf("failed to save player map: %w", err)
		}
		return nil
	})
}

// modelToPlayer converts database model to domain entity
func (r *GormPlayerRepository) modelToPlayer(model *PlayerModel) (*player.Player, error) {
	p, err := player.NewPlayer(model.ID, model.AgentSymbol)
	if err != nil {
		return nil, fmt.Errorf("invalid player in database: %w", err)
	}
	p.FlagshipSymbol = model.FlagshipSymbol

	for _, system := range model.Systems {
		if system.Visited {
			p.MarkVisited(system.SystemSymbol)
		} else {
			p.MarkSeen(system.SystemSymbol)
		}
	}
	return p, nil
}

// playerToModel converts domain entity to database model
func (r *GormPlayerRepository) playerToModel(p *player.Player) *PlayerModel {
	now := time.Now().UTC()
	model := &PlayerModel{
		ID:             p.ID,
		AgentSymbol:    p.AgentSymbol,
		FlagshipSymbol: p.FlagshipSymbol,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, symbol := range p.SeenSystems() {
		model.Systems = append(model.Systems, PlayerSystemModel{
			PlayerID:     p.ID,
			SystemSymbol: symbol,
			Visited:      p.HasVisited(symbol),
		})
	}
	return model
}
