package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starlane/internal/application/common"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/player"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// ImportGalaxyCommand replaces the stored galaxy and upserts the players
// and ships that live in it
type ImportGalaxyCommand struct {
	Galaxy  *galaxy.Galaxy
	Players []*player.Player
	Ships   []*navigation.Ship
}

// ImportGalaxyResponse reports what was stored
type ImportGalaxyResponse struct {
	Systems    int
	Hyperlanes int
	Wormholes  int
	Players    int
	Ships      int
}

// ImportGalaxyHandler handles the ImportGalaxy command
type ImportGalaxyHandler struct {
	galaxyRepo galaxy.Repository
	playerRepo player.PlayerRepository
	shipRepo   navigation.ShipRepository
	galaxies   galaxy.Provider
}

// NewImportGalaxyHandler creates a new ImportGalaxyHandler
func NewImportGalaxyHandler(
	galaxyRepo galaxy.Repository,
	playerRepo player.PlayerRepository,
	shipRepo navigation.ShipRepository,
	galaxies galaxy.Provider,
) *ImportGalaxyHandler {
	return &ImportGalaxyHandler{
		galaxyRepo: galaxyRepo,
		playerRepo: playerRepo,
		shipRepo:   shipRepo,
		galaxies:   galaxies,
	}
}

// Handle executes the ImportGalaxy command
func (h *ImportGalaxyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportGalaxyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportGalaxyCommand")
	}
	if cmd.Galaxy == nil || cmd.Galaxy.Len() == 0 {
		return nil, shared.NewValidationError("galaxy", "must contain at least one system")
	}

	if err := validateImport(cmd); err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)

	if err := h.galaxyRepo.Save(ctx, cmd.Galaxy); err != nil {
		return nil, fmt.Errorf("failed to save galaxy: %w", err)
	}
	// Searches started after this point see the new map
	h.galaxies.Invalidate()

	for _, p := range cmd.Players {
		if err := h.playerRepo.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to save player %s: %w", p.AgentSymbol, err)
		}
	}
	for _, ship := range cmd.Ships {
		if err := h.shipRepo.Save(ctx, ship); err != nil {
			return nil, fmt.Errorf("failed to save ship %s: %w", ship.ShipSymbol(), err)
		}
	}

	response := &ImportGalaxyResponse{
		Systems:    cmd.Galaxy.Len(),
		Hyperlanes: len(cmd.Galaxy.Links()),
		Wormholes:  len(cmd.Galaxy.Wormholes()),
		Players:    len(cmd.Players),
		Ships:      len(cmd.Ships),
	}

	logger.Log("INFO", "Galaxy imported", map[string]interface{}{
		"systems":   response.Systems,
		"links":     response.Hyperlanes,
		"wormholes": response.Wormholes,
		"players":   response.Players,
		"ships":     response.Ships,
	})

	return response, nil
}

// validateImport checks that every ship and player refers to systems,
// owners and flagships present in the import
func validateImport(cmd *ImportGalaxyCommand) error {
	players := make(map[int]*player.Player, len(cmd.Players))
	agents := make(map[string]bool, len(cmd.Players))
	for _, p := range cmd.Players {
		if _, dup := players[p.ID]; dup {
			return shared.NewValidationError("players", fmt.Sprintf("duplicate player id %d", p.ID))
		}
		if agents[p.AgentSymbol] {
			return shared.NewValidationError("players", fmt.Sprintf("duplicate agent %s", p.AgentSymbol))
		}
		players[p.ID] = p
		agents[p.AgentSymbol] = true

		for _, symbol := range p.SeenSystems() {
			if _, ok := cmd.Galaxy.System(symbol); !ok {
				return shared.NewNotFoundError("system", symbol)
			}
		}
	}

	ships := make(map[string]*navigation.Ship, len(cmd.Ships))
	for _, ship := range cmd.Ships {
		if _, dup := ships[ship.ShipSymbol()]; dup {
			return shared.NewValidationError("ships", fmt.Sprintf("duplicate ship %s", ship.ShipSymbol()))
		}
		ships[ship.ShipSymbol()] = ship

		if _, ok := cmd.Galaxy.System(ship.SystemSymbol()); !ok {
			return shared.NewNotFoundError("system", ship.SystemSymbol())
		}
		if target, ok := ship.HyperspaceTarget(); ok {
			if _, ok := cmd.Galaxy.System(target); !ok {
				return shared.NewNotFoundError("system", target)
			}
		}
		if ship.PlayerID() != 0 {
			if _, ok := players[ship.PlayerID()]; !ok {
				return shared.NewNotFoundError("player", fmt.Sprintf("%d", ship.PlayerID()))
			}
		}
	}

	for _, p := range cmd.Players {
		if !p.HasFlagship() {
			continue
		}
		flagship, ok := ships[p.FlagshipSymbol]
		if !ok {
			return shared.NewNotFoundError("ship", p.FlagshipSymbol)
		}
		if flagship.PlayerID() != p.ID {
			return shared.NewValidationError("flagship", fmt.Sprintf("%s does not belong to %s", p.FlagshipSymbol, p.AgentSymbol))
		}
	}
	return nil
}
