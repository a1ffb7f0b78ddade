package navigation

import (
	"fmt"
	"strings"
)

// ModuleKind classifies what a module does for travel
type ModuleKind string

const (
	ModuleKindHyperdrive ModuleKind = "hyperdrive"
	ModuleKindJumpDrive  ModuleKind = "jump_drive"
	ModuleKindOther      ModuleKind = "other"
)

// ParseModuleKind converts a string to a ModuleKind.
// Unknown kinds are inferred from the module symbol prefix.
func ParseModuleKind(kind, symbol string) ModuleKind {
	switch ModuleKind(strings.ToLower(kind)) {
	case ModuleKindHyperdrive:
		return ModuleKindHyperdrive
	case ModuleKindJumpDrive:
		return ModuleKindJumpDrive
	case ModuleKindOther:
		return ModuleKindOther
	}
	switch {
	case strings.HasPrefix(symbol, "MODULE_JUMP_DRIVE"):
		return ModuleKindJumpDrive
	case strings.HasPrefix(symbol, "MODULE_HYPERDRIVE"):
		return ModuleKindHyperdrive
	default:
		return ModuleKindOther
	}
}

// ShipModule represents an installed module on a ship
//
// Drive modules carry the fuel one jump costs; jump drives also carry a range.
// This value object is immutable.
//
// Invariants:
// - Symbol must be non-empty
// - Fuel and Range cannot be negative
type ShipModule struct {
	symbol string
	kind   ModuleKind
	fuel   int
	range_ float64 // use range_ to avoid Go keyword
}

// NewShipModule creates a new ShipModule value object
func NewShipModule(symbol string, kind ModuleKind, fuel int, range_ float64) (*ShipModule, error) {
	if symbol == "" {
		return nil, fmt.Errorf("module symbol cannot be empty")
	}
	if fuel < 0 {
		return nil, fmt.Errorf("module %s: fuel cannot be negative", symbol)
	}
	if range_ < 0 {
		return nil, fmt.Errorf("module %s: range cannot be negative", symbol)
	}
	return &ShipModule{
		symbol: symbol,
		kind:   kind,
		fuel:   fuel,
		range_: range_,
	}, nil
}

// Symbol returns the module symbol identifier (e.g., "MODULE_JUMP_DRIVE_I")
func (m *ShipModule) Symbol() string {
	return m.symbol
}

// Kind returns the module's travel role
func (m *ShipModule) Kind() ModuleKind {
	return m.kind
}

// Fuel returns the fuel one jump with this drive consumes
func (m *ShipModule) Fuel() int {
	return m.fuel
}

// Range returns the module's jump range (jump drives only)
func (m *ShipModule) Range() float64 {
	return m.range_
}

// IsJumpDrive checks if this module is a jump drive
func (m *ShipModule) IsJumpDrive() bool {
	return m.kind == ModuleKindJumpDrive
}

// IsHyperdrive checks if this module is a hyperdrive
func (m *ShipModule) IsHyperdrive() bool {
	return m.kind == ModuleKindHyperdrive
}
