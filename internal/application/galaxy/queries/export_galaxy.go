package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starlane/internal/application/common"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/player"
)

// ExportGalaxyQuery asks for the current galaxy with every player and ship
type ExportGalaxyQuery struct{}

// ExportGalaxyResponse is a snapshot that can be written back out and re-imported
type ExportGalaxyResponse struct {
	Galaxy  *galaxy.Galaxy
	Players []*player.Player
	Ships   []*navigation.Ship
}

// ExportGalaxyHandler handles the ExportGalaxy query
type ExportGalaxyHandler struct {
	galaxies   galaxy.Provider
	playerRepo player.PlayerRepository
	shipRepo   navigation.ShipRepository
}

// NewExportGalaxyHandler creates a new ExportGalaxyHandler
func NewExportGalaxyHandler(
	galaxies galaxy.Provider,
	playerRepo player.PlayerRepository,
	shipRepo navigation.ShipRepository,
) *ExportGalaxyHandler {
	return &ExportGalaxyHandler{
		galaxies:   galaxies,
		playerRepo: playerRepo,
		shipRepo:   shipRepo,
	}
}

// Handle executes the ExportGalaxy query
func (h *ExportGalaxyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ExportGalaxyQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportGalaxyQuery")
	}

	g, err := h.galaxies.Galaxy(ctx)
	if err != nil {
		return nil, err
	}
	players, err := h.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	ships, err := h.shipRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("DEBUG", "Galaxy exported", map[string]interface{}{
		"systems": g.Len(),
		"players": len(players),
		"ships":   len(ships),
	})

	return &ExportGalaxyResponse{Galaxy: g, Players: players, Ships: ships}, nil
}
