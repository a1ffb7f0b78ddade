package navigation

import "context"

// ShipRepository defines ship persistence operations
type ShipRepository interface {
	FindBySymbol(ctx context.Context, symbol string) (*Ship, error)
	ListByPlayer(ctx context.Context, playerID int) ([]*Ship, error)
	List(ctx context.Context) ([]*Ship, error)
	Save(ctx context.Context, ship *Ship) error
}
