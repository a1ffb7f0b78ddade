package common

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starlane/internal/domain/player"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// PlayerResolver finds a player by either a numeric ID or an agent symbol.
//
// Business rules:
//   - At least one of playerID or agentSymbol must be provided
//   - If both are provided, playerID takes precedence
//   - Unknown players yield a *shared.NotFoundError
type PlayerResolver struct {
	playerRepo player.PlayerRepository
}

// NewPlayerResolver creates a new player resolver with required dependencies.
func NewPlayerResolver(playerRepo player.PlayerRepository) *PlayerResolver {
	return &PlayerResolver{
		playerRepo: playerRepo,
	}
}

// Wants reports whether a request names a player at all
func (r *PlayerResolver) Wants(playerID *int, agentSymbol string) bool {
	return playerID != nil || agentSymbol != ""
}

// ResolvePlayer loads the player identified by playerID or agentSymbol.
//
// Example usage:
//
//	resolver := NewPlayerResolver(playerRepo)
//	p, err := resolver.ResolvePlayer(ctx, query.PlayerID, query.AgentSymbol)
//	if err != nil {
//	    return nil, err
//	}
func (r *PlayerResolver) ResolvePlayer(ctx context.Context, playerID *int, agentSymbol string) (*player.Player, error) {
	if !r.Wants(playerID, agentSymbol) {
		return nil, shared.NewValidationError("player", "either player_id or agent_symbol must be provided")
	}

	if playerID != nil {
		if *playerID <= 0 {
			return nil, shared.NewValidationError("player_id", "must be positive")
		}
		p, err := r.playerRepo.FindByID(ctx, *playerID)
		if err != nil {
			return nil, fmt.Errorf("failed to find player %d: %w", *playerID, err)
		}
		return p, nil
	}

	p, err := r.playerRepo.FindByAgentSymbol(ctx, agentSymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to find player by agent symbol: %w", err)
	}
	return p, nil
}
