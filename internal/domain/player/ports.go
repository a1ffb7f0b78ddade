package player

import "context"

// PlayerRepository defines player persistence operations
type PlayerRepository interface {
	FindByID(ctx context.Context, playerID int) (*Player, error)
	FindByAgentSymbol(ctx context.Context, agentSymbol string) (*Player, error)
	List(ctx context.Context) ([]*Player, error)
	Save(ctx context.Context, player *Player) error
}
