// Package galaxyfile reads and writes galaxy maps as YAML documents.
//
//	systems:
//	  - {symbol: Sol, x: 0, y: 0, danger: 0}
//	hyperlanes:
//	  - [Sol, Alpha]
//	links:
//	  - [Rim, Sol]        # one way
//	wormholes:
//	  - {symbol: Rift, access_module: "", stops: [Sol, Gamma]}
//	players:
//	  - {id: 1, agent: CAPTAIN, flagship: CAPTAIN-1, visited: [Sol]}
//	ships:
//	  - symbol: CAPTAIN-1
//	    player_id: 1
//	    system: Sol
//	    modules:
//	      - {symbol: MODULE_HYPERDRIVE_I, kind: hyperdrive, fuel: 100}
package galaxyfile

// Document is the YAML layout of a galaxy file
type Document struct {
	Systems    []SystemEntry   `yaml:"systems"`
	Hyperlanes [][]string      `yaml:"hyperlanes,omitempty"`
	Links      [][]string      `yaml:"links,omitempty"`
	Wormholes  []WormholeEntry `yaml:"wormholes,omitempty"`
	Players    []PlayerEntry   `yaml:"players,omitempty"`
	Ships      []ShipEntry     `yaml:"ships,omitempty"`
}

// SystemEntry describes one system
type SystemEntry struct {
	Symbol    string  `yaml:"symbol"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Danger    float64 `yaml:"danger,omitempty"`
	JumpRange float64 `yaml:"jump_range,omitempty"`
}

// WormholeEntry describes a wormhole and its stops in cycle order
type WormholeEntry struct {
	Symbol       string   `yaml:"symbol"`
	AccessModule string   `yaml:"access_module,omitempty"`
	Stops        []string `yaml:"stops"`
}

// PlayerEntry describes a player's map. Visiting a system also reveals its
// hyperlane neighbours; Seen adds systems known without a visit.
type PlayerEntry struct {
	ID       int      `yaml:"id"`
	Agent    string   `yaml:"agent"`
	Flagship string   `yaml:"flagship,omitempty"`
	Visited  []string `yaml:"visited,omitempty"`
	Seen     []string `yaml:"seen,omitempty"`
}

// ShipEntry describes a ship and its installed modules
type ShipEntry struct {
	Symbol           string        `yaml:"symbol"`
	PlayerID         int           `yaml:"player_id,omitempty"`
	System           string        `yaml:"system"`
	HyperspaceTarget string        `yaml:"hyperspace_target,omitempty"`
	Modules          []ModuleEntry `yaml:"modules,omitempty"`
}

// ModuleEntry describes an installed module
type ModuleEntry struct {
	Symbol string  `yaml:"symbol"`
	Kind   string  `yaml:"kind,omitempty"`
	Fuel   int     `yaml:"fuel,omitempty"`
	Range  float64 `yaml:"range,omitempty"`
}
