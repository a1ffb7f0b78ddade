package setup

import (
	"reflect"

	galaxyCommands "github.com/andrescamacho/starlane/internal/application/galaxy/commands"
	galaxyQueries "github.com/andrescamacho/starlane/internal/application/galaxy/queries"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	playerCommands "github.com/andrescamacho/starlane/internal/application/player/commands"
	playerQueries "github.com/andrescamacho/starlane/internal/application/player/queries"
	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/player"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	galaxyRepo galaxy.Repository
	galaxies   galaxy.Provider
	playerRepo player.PlayerRepository
	shipRepo   navigation.ShipRepository
	defaults   routingQueries.Defaults
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// galaxyRepo may be nil for read-only use, in which case imports are not registered.
func NewHandlerRegistry(
	galaxyRepo galaxy.Repository,
	galaxies galaxy.Provider,
	playerRepo player.PlayerRepository,
	shipRepo navigation.ShipRepository,
	defaults routingQueries.Defaults,
) *HandlerRegistry {
	return &HandlerRegistry{
		galaxyRepo: galaxyRepo,
		galaxies:   galaxies,
		playerRepo: playerRepo,
		shipRepo:   shipRepo,
		defaults:   defaults,
	}
}

// RegisterRoutingHandlers registers the route search queries
//
// This method registers:
//   - PlanRouteQuery → PlanRouteHandler
//   - ReachableSystemsQuery → ReachableSystemsHandler
//   - GetSystemQuery → GetSystemHandler
func (r *HandlerRegistry) RegisterRoutingHandlers(m mediator.Mediator) error {
	planRouteHandler := routingQueries.NewPlanRouteHandler(r.galaxies, r.playerRepo, r.shipRepo, r.defaults)
	if err := m.Register(
		reflect.TypeOf(&routingQueries.PlanRouteQuery{}),
		planRouteHandler,
	); err != nil {
		return err
	}

	reachableHandler := routingQueries.NewReachableSystemsHandler(r.galaxies, r.playerRepo, r.shipRepo, r.defaults)
	if err := m.Register(
		reflect.TypeOf(&routingQueries.ReachableSystemsQuery{}),
		reachableHandler,
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&routingQueries.GetSystemQuery{}),
		routingQueries.NewGetSystemHandler(r.galaxies),
	)
}

// RegisterPlayerHandlers registers the player map command and query
func (r *HandlerRegistry) RegisterPlayerHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&playerCommands.RecordVisitCommand{}),
		playerCommands.NewRecordVisitHandler(r.galaxies, r.playerRepo),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&playerQueries.GetPlayerQuery{}),
		playerQueries.NewGetPlayerHandler(r.playerRepo),
	)
}

// RegisterExportHandlers registers the galaxy export query
func (r *HandlerRegistry) RegisterExportHandlers(m mediator.Mediator) error {
	return m.Register(
		reflect.TypeOf(&galaxyQueries.ExportGalaxyQuery{}),
		galaxyQueries.NewExportGalaxyHandler(r.galaxies, r.playerRepo, r.shipRepo),
	)
}

// RegisterGalaxyHandlers registers the galaxy import command
func (r *HandlerRegistry) RegisterGalaxyHandlers(m mediator.Mediator) error {
	importHandler := galaxyCommands.NewImportGalaxyHandler(r.galaxyRepo, r.playerRepo, r.shipRepo, r.galaxies)
	return m.Register(
		reflect.TypeOf(&galaxyCommands.ImportGalaxyCommand{}),
		importHandler,
	)
}

// CreateConfiguredMediator creates a new mediator with every handler registered
// and the given middlewares installed, outermost first.
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, middleware := range middlewares {
		m.Use(middleware)
	}

	if err := r.RegisterRoutingHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterPlayerHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterExportHandlers(m); err != nil {
		return nil, err
	}

	// Imports need write access to the galaxy store
	if r.galaxyRepo != nil {
		if err := r.RegisterGalaxyHandlers(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}
