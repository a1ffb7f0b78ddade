package config

// RoutingConfig holds the capabilities assumed for searches that do not
// start from a ship, and limits applied to API queries
type RoutingConfig struct {
	// Fuel per hyperlane jump for bare-system searches
	DefaultHyperdriveFuel int `mapstructure:"default_hyperdrive_fuel" validate:"min=1"`

	// Fuel per jump-drive jump when a request asks for a jump drive
	DefaultJumpFuel int `mapstructure:"default_jump_fuel" validate:"min=1"`

	// Jump drive range when a request asks for a jump drive
	DefaultJumpRange float64 `mapstructure:"default_jump_range" validate:"gt=0"`

	// Wormhole strategy for bare-system searches: never, always, if-mapped
	DefaultWormholes string `mapstructure:"default_wormholes" validate:"required,oneof=never always if-mapped"`

	// Cap on systems returned by reachable-system queries (0 = no cap)
	MaxSystems int `mapstructure:"max_systems" validate:"min=0"`
}
