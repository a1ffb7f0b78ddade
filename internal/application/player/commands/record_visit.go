package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starlane/internal/application/common"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/player"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// RecordVisitCommand records that a player has been to a system
type RecordVisitCommand struct {
	PlayerID    *int   // Optional: identify the player by ID
	AgentSymbol string // Optional: identify the player by agent symbol
	System      string
}

// RecordVisitResponse represents the player's map after the visit
type RecordVisitResponse struct {
	PlayerID       int
	AgentSymbol    string
	System         string
	NewlySeen      []string
	VisitedCount   int
	SeenCount      int
	AlreadyVisited bool
}

// RecordVisitHandler handles the RecordVisit command
type RecordVisitHandler struct {
	galaxies       galaxy.Provider
	playerRepo     player.PlayerRepository
	playerResolver *common.PlayerResolver
}

// NewRecordVisitHandler creates a new RecordVisitHandler
func NewRecordVisitHandler(galaxies galaxy.Provider, playerRepo player.PlayerRepository) *RecordVisitHandler {
	return &RecordVisitHandler{
		galaxies:       galaxies,
		playerRepo:     playerRepo,
		playerResolver: common.NewPlayerResolver(playerRepo),
	}
}

// Handle executes the RecordVisit command
func (h *RecordVisitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecordVisitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordVisitCommand")
	}
	if cmd.System == "" {
		return nil, shared.NewValidationError("system", "cannot be empty")
	}

	p, err := h.playerResolver.ResolvePlayer(ctx, cmd.PlayerID, cmd.AgentSymbol)
	if err != nil {
		return nil, err
	}

	g, err := h.galaxies.Galaxy(ctx)
	if err != nil {
		return nil, err
	}
	system, ok := g.System(cmd.System)
	if !ok {
		return nil, shared.NewNotFoundError("system", cmd.System)
	}

	alreadyVisited := p.HasVisited(system.Symbol())
	newlySeen := []string{}
	if !p.HasSeen(system.Symbol()) {
		newlySeen = append(newlySeen, system.Symbol())
	}
	for _, link := range system.Links() {
		if !p.HasSeen(link.Symbol()) {
			newlySeen = append(newlySeen, link.Symbol())
		}
	}

	p.Visit(system)

	if err := h.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Visit recorded", map[string]interface{}{
		"agent":       p.AgentSymbol,
		"system":      system.Symbol(),
		"newly_seen":  len(newlySeen),
		"first_visit": !alreadyVisited,
	})

	return &RecordVisitResponse{
		PlayerID:       p.ID,
		AgentSymbol:    p.AgentSymbol,
		System:         system.Symbol(),
		NewlySeen:      newlySeen,
		VisitedCount:   len(p.VisitedSystems()),
		SeenCount:      len(p.SeenSystems()),
		AlreadyVisited: alreadyVisited,
	}, nil
}
