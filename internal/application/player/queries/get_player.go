package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starlane/internal/application/common"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	"github.com/andrescamacho/starlane/internal/domain/player"
)

// GetPlayerQuery represents a query to get a player by ID or agent symbol
type GetPlayerQuery struct {
	PlayerID    *int   // Optional: get by player ID
	AgentSymbol string // Optional: get by agent symbol
}

// GetPlayerResponse represents the player and their map of the galaxy
type GetPlayerResponse struct {
	ID       int
	Agent    string
	Flagship string
	Visited  []string
	Seen     []string
}

// GetPlayerHandler handles the GetPlayer query
type GetPlayerHandler struct {
	playerResolver *common.PlayerResolver
}

// NewGetPlayerHandler creates a new GetPlayerHandler
func NewGetPlayerHandler(playerRepo player.PlayerRepository) *GetPlayerHandler {
	return &GetPlayerHandler{
		playerResolver: common.NewPlayerResolver(playerRepo),
	}
}

// Handle executes the GetPlayer query
func (h *GetPlayerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPlayerQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlayerQuery")
	}

	p, err := h.playerResolver.ResolvePlayer(ctx, query.PlayerID, query.AgentSymbol)
	if err != nil {
		return nil, err
	}

	return &GetPlayerResponse{
		ID:       p.ID,
		Agent:    p.AgentSymbol,
		Flagship: p.FlagshipSymbol,
		Visited:  p.VisitedSystems(),
		Seen:     p.SeenSystems(),
	}, nil
}
