package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents CLI preferences stored in ~/.starlane/config.json
type UserConfig struct {
	// Default player ID to plan for when not specified via CLI
	DefaultPlayerID *int `json:"default_player_id,omitempty"`

	// Default agent symbol to plan for when not specified via CLI
	DefaultAgent string `json:"default_agent,omitempty"`

	// gRPC address used by --remote when the flag has no value
	RemoteAddress string `json:"remote_address,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for the config file in the user's home
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".starlane", "config.json")), nil
}

// NewUserConfigHandlerAt creates a handler for an explicit config file path
func NewUserConfigHandlerAt(configPath string) *UserConfigHandler {
	return &UserConfigHandler{configPath: configPath}
}

// Load reads the user config from disk. A missing file is an empty config.
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	data, err := os.ReadFile(h.configPath)
	if os.IsNotExist(err) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}
	return &config, nil
}

// Save writes the user config to disk, creating its directory
func (h *UserConfigHandler) Save(config *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(h.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}
	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	return nil
}

// SetDefaultPlayer sets the default player, by ID and agent symbol
func (h *UserConfigHandler) SetDefaultPlayer(playerID int, agent string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultPlayerID = &playerID
	config.DefaultAgent = agent
	return h.Save(config)
}

// ClearDefaultPlayer removes the default player setting
func (h *UserConfigHandler) ClearDefaultPlayer() error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultPlayerID = nil
	config.DefaultAgent = ""
	return h.Save(config)
}

// SetRemoteAddress sets the route server used when --remote is omitted.
// An empty address switches the CLI back to the local database.
func (h *UserConfigHandler) SetRemoteAddress(address string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.RemoteAddress = address
	return h.Save(config)
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
