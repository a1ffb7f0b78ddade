package persistence

import (
	"time"
)

// SystemModel represents the systems table
type SystemModel struct {
	Symbol    string  `gorm:"column:symbol;primaryKey"`
	X         float64 `gorm:"column:x;not null"`
	Y         float64 `gorm:"column:y;not null"`
	Danger    float64 `gorm:"column:danger;not null;default:0"`
	JumpRange float64 `gorm:"column:jump_range;not null;default:0"` // 0 = ship range applies
}

func (SystemModel) TableName() string {
	return "systems"
}

// LinkModel represents the links table. Each row is one direction of travel;
// a hyperlane is stored as two rows.
type LinkModel struct {
	FromSymbol string `gorm:"column:from_symbol;primaryKey"`
	ToSymbol   string `gorm:"column:to_symbol;primaryKey"`
	Position   int    `gorm:"column:position;not null"` // order within the source system's links
}

func (LinkModel) TableName() string {
	return "links"
}

// WormholeModel represents the wormholes table
type WormholeModel struct {
	Symbol       string              `gorm:"column:symbol;primaryKey"`
	AccessModule string              `gorm:"column:access_module"`
	Stops        []WormholeStopModel `gorm:"foreignKey:WormholeSymbol;references:Symbol;constraint:OnDelete:CASCADE;"`
}

func (WormholeModel) TableName() string {
	return "wormholes"
}

// WormholeStopModel represents the wormhole_stops table
type WormholeStopModel struct {
	WormholeSymbol string `gorm:"column:wormhole_symbol;primaryKey"`
	Position       int    `gorm:"column:position;primaryKey"`
	SystemSymbol   string `gorm:"column:system_symbol;not null"`
}

func (WormholeStopModel) TableName() string {
	return "wormhole_stops"
}

// PlayerModel represents the players table
type PlayerModel struct {
	ID             int                 `gorm:"column:id;primaryKey;autoIncrement:false"`
	AgentSymbol    string              `gorm:"column:agent_symbol;unique;not null"`
	FlagshipSymbol string              `gorm:"column:flagship_symbol"`
	CreatedAt      time.Time           `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;not null"`
	Systems        []PlayerSystemModel `gorm:"foreignKey:PlayerID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (PlayerModel) TableName() string {
	return "players"
}

// PlayerSystemModel represents the player_systems table: one row per system
// on a player's map
type PlayerSystemModel struct {
	PlayerID     int    `gorm:"column:player_id;primaryKey"`
	SystemSymbol string `gorm:"column:system_symbol;primaryKey"`
	Visited      bool   `gorm:"column:visited;not null;default:false"`
}

func (PlayerSystemModel) TableName() string {
	return "player_systems"
}

// ShipModel represents the ships table
type ShipModel struct {
	ShipSymbol       string            `gorm:"column:ship_symbol;primaryKey"`
	PlayerID         int               `gorm:"column:player_id;not null;default:0;index"` // 0 for non-player ships
	SystemSymbol     string            `gorm:"column:system_symbol;not null"`
	HyperspaceTarget string            `gorm:"column:hyperspace_target"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;not null"`
	Modules          []ShipModuleModel `gorm:"foreignKey:ShipSymbol;references:ShipSymbol;constraint:OnDelete:CASCADE;"`
}

func (ShipModel) TableName() string {
	return "ships"
}

// ShipModuleModel represents the ship_modules table
type ShipModuleModel struct {
	ShipSymbol string  `gorm:"column:ship_symbol;primaryKey"`
	Position   int     `gorm:"column:position;primaryKey"`
	Symbol     string  `gorm:"column:symbol;not null"`
	Kind       string  `gorm:"column:kind;not null"`
	Fuel       int     `gorm:"column:fuel;not null;default:0"`
	Range      float64 `gorm:"column:jump_range;not null;default:0"`
}

func (ShipModuleModel) TableName() string {
	return "ship_modules"
}

// AllModels returns every model for migration
func AllModels() []interface{} {
	return []interface{}{
		&SystemModel{},
		&LinkModel{},
		&WormholeModel{},
		&WormholeStopModel{},
		&PlayerModel{},
		&PlayerSystemModel{},
		&ShipModel{},
		&ShipModuleModel{},
	}
}
