package routing

import (
	"fmt"
	"strings"
)

// WormholeStrategy decides when wormhole links may be used
type WormholeStrategy int

const (
	// NeverUsable ignores wormholes entirely
	NeverUsable WormholeStrategy = iota
	// AlwaysUsable lets every search traverse wormholes
	AlwaysUsable
	// UsableIfMapped lets a player traverse a wormhole once they visited one of its ends
	UsableIfMapped
)

func (s WormholeStrategy) String() string {
	switch s {
	case NeverUsable:
		return "never"
	case AlwaysUsable:
		return "always"
	case UsableIfMapped:
		return "if-mapped"
	default:
		return fmt.Sprintf("WormholeStrategy(%d)", int(s))
	}
}

// ParseWormholeStrategy converts "always", "never" or "if-mapped" to a strategy
func ParseWormholeStrategy(value string) (WormholeStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "never":
		return NeverUsable, nil
	case "always":
		return AlwaysUsable, nil
	case "if-mapped", "if_mapped", "mapped":
		return UsableIfMapped, nil
	default:
		return NeverUsable, fmt.Errorf("unknown wormhole strategy %q (want always, never or if-mapped)", value)
	}
}
