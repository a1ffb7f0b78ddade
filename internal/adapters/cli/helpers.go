package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/andrescamacho/starlane/internal/infrastructure/config"
)

// PlayerIdentifier holds player identification (either ID or agent symbol)
type PlayerIdentifier struct {
	PlayerID    int
	AgentSymbol string
}

// IDPtr returns the ID as the optional pointer the queries take
func (p *PlayerIdentifier) IDPtr() *int {
	if p == nil || p.PlayerID <= 0 {
		return nil
	}
	id := p.PlayerID
	return &id
}

// Agent returns the agent symbol, empty when identified by ID
func (p *PlayerIdentifier) Agent() string {
	if p == nil {
		return ""
	}
	return p.AgentSymbol
}

// resolvePlayerIdentifier resolves player identification from flags or defaults
// Priority: CLI flags (--player-id or --agent) > User config defaults
// Returns error only if no player can be identified from any source
func resolvePlayerIdentifier() (*PlayerIdentifier, error) {
	if ident := flagPlayerIdentifier(); ident != nil {
		return ident, nil
	}

	userCfg, err := loadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("no player specified and failed to load user config: %w", err)
	}

	// Use default player from config
	if userCfg.DefaultPlayerID != nil {
		return &PlayerIdentifier{PlayerID: *userCfg.DefaultPlayerID}, nil
	}
	if userCfg.DefaultAgent != "" {
		return &PlayerIdentifier{AgentSymbol: userCfg.DefaultAgent}, nil
	}

	return nil, fmt.Errorf("no player specified: use --player-id or --agent, or set default with 'starlane config set-player'")
}

// flagPlayerIdentifier returns the player named on the command line, if any
func flagPlayerIdentifier() *PlayerIdentifier {
	if playerID > 0 {
		return &PlayerIdentifier{PlayerID: playerID}
	}
	if agentSymbol != "" {
		return &PlayerIdentifier{AgentSymbol: agentSymbol}
	}
	return nil
}

func loadUserConfig() (*config.UserConfig, error) {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return nil, err
	}
	return handler.Load()
}

// resolveRemoteAddress returns the route server to talk to, or "" for the local database
func resolveRemoteAddress() string {
	if remoteAddress != "" {
		return remoteAddress
	}
	userCfg, err := loadUserConfig()
	if err != nil {
		return ""
	}
	return userCfg.RemoteAddress
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatLimit renders an optional non-negative limit
func formatLimit(value int) string {
	if value < 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", value)
}
