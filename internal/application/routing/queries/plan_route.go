package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/starlane/internal/adapters/metrics"
	"github.com/andrescamacho/starlane/internal/application/common"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/player"
	"github.com/andrescamacho/starlane/internal/domain/routing"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// PlanRouteQuery asks for the best route to a destination system.
//
// The start is chosen from the most specific field given:
//   - ShipSymbol: the ship's own drives, wormholes always usable
//   - PlayerID / AgentSymbol: the player's flagship and map knowledge
//   - From alone: a bare system with the configured default drive
//
// From, when set together with a ship or player, moves the start there.
type PlanRouteQuery struct {
	From        string
	To          string
	PlayerID    *int
	AgentSymbol string
	ShipSymbol  string
	Wormholes   string  // Optional: "always", "never" or "if-mapped"
	JumpFuel    int     // Optional: fit a jump drive to a bare-system search
	JumpRange   float64 // Optional: jump drive range for a bare-system search
}

// RouteStep is one system along a planned route
type RouteStep struct {
	Symbol   string
	Days     int
	Fuel     int
	FuelCost int
	Danger   float64
}

// PlanRouteResponse represents the result of planning a route
type PlanRouteResponse struct {
	Found     bool
	From      string
	To        string
	StartKind string
	Days      int
	Fuel      int
	Danger    float64
	Steps     []RouteStep
}

// PlanRouteHandler handles the PlanRoute query
type PlanRouteHandler struct {
	galaxies       galaxy.Provider
	shipRepo       navigation.ShipRepository
	playerResolver *common.PlayerResolver
	defaults       Defaults
}

// NewPlanRouteHandler creates a new PlanRouteHandler
func NewPlanRouteHandler(
	galaxies galaxy.Provider,
	playerRepo player.PlayerRepository,
	shipRepo navigation.ShipRepository,
	defaults Defaults,
) *PlanRouteHandler {
	return &PlanRouteHandler{
		galaxies:       galaxies,
		shipRepo:       shipRepo,
		playerResolver: common.NewPlayerResolver(playerRepo),
		defaults:       defaults,
	}
}

// Handle executes the PlanRoute query
func (h *PlanRouteHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*PlanRouteQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PlanRouteQuery")
	}

	if query.To == "" {
		return nil, shared.NewValidationError("to", "destination system is required")
	}
	if err := validateJump(query.JumpFuel, query.JumpRange); err != nil {
		return nil, err
	}

	g, err := h.galaxies.Galaxy(ctx)
	if err != nil {
		return nil, err
	}

	destination, ok := g.System(query.To)
	if !ok {
		return nil, shared.NewNotFoundError("system", query.To)
	}

	q, err := h.buildQuery(ctx, g, query, destination)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	plan := routing.NewRoutePlan(q, destination)
	elapsed := time.Since(start)

	response := toPlanRouteResponse(q, destination, plan)

	metrics.RecordSearch(metrics.SearchInfo{
		Operation: "plan",
		StartKind: response.StartKind,
		Found:     response.Found,
		Systems:   len(response.Steps),
		Days:      response.Days,
		Fuel:      response.Fuel,
		Duration:  elapsed.Seconds(),
	})

	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Route planned", map[string]interface{}{
		"from":       response.From,
		"to":         response.To,
		"start_kind": response.StartKind,
		"found":      response.Found,
		"days":       response.Days,
		"fuel":       response.Fuel,
		"elapsed_us": elapsed.Microseconds(),
	})

	return response, nil
}

func (h *PlanRouteHandler) buildQuery(ctx context.Context, g *galaxy.Galaxy, query *PlanRouteQuery, destination *galaxy.System) (routing.Query, error) {
	var q routing.Query

	switch {
	case query.ShipSymbol != "":
		ship, err := h.shipRepo.FindBySymbol(ctx, query.ShipSymbol)
		if err != nil {
			return q, fmt.Errorf("failed to get ship: %w", err)
		}
		q = routing.FromShip(g, ship, destination)

	case h.playerResolver.Wants(query.PlayerID, query.AgentSymbol):
		p, err := h.playerResolver.ResolvePlayer(ctx, query.PlayerID, query.AgentSymbol)
		if err != nil {
			return q, err
		}
		flagship, err := loadFlagship(ctx, h.shipRepo, p)
		if err != nil {
			return q, err
		}
		q = routing.FromPlayer(g, p, flagship)

	default:
		if query.From == "" {
			return q, shared.NewValidationError("from", "a start system, ship or player is required")
		}
		start, ok := g.System(query.From)
		if !ok {
			return q, shared.NewNotFoundError("system", query.From)
		}
		q = routing.FromSystem(start).
			WithDrive(h.defaults.drive(query.JumpFuel, query.JumpRange)).
			WithWormholes(h.defaults.Wormholes)
	}

	if query.From != "" && q.Kind() != routing.StartSystem {
		center, ok := g.System(query.From)
		if !ok {
			return q, shared.NewNotFoundError("system", query.From)
		}
		q = q.WithCenter(center)
	}

	return applyWormholes(q, query.Wormholes)
}

// loadFlagship loads the player's flagship; a player without one yields nil
func loadFlagship(ctx context.Context, shipRepo navigation.ShipRepository, p *player.Player) (routing.Vessel, error) {
	if !p.HasFlagship() {
		return nil, nil
	}
	ship, err := shipRepo.FindBySymbol(ctx, p.FlagshipSymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get flagship of %s: %w", p.AgentSymbol, err)
	}
	return ship, nil
}

func toPlanRouteResponse(q routing.Query, destination *galaxy.System, plan *routing.RoutePlan) *PlanRouteResponse {
	response := &PlanRouteResponse{
		Found:     plan.HasRoute(),
		To:        destination.Symbol(),
		StartKind: q.Kind().String(),
		Days:      plan.Days(),
		Fuel:      plan.RequiredFuel(),
		Danger:    plan.Danger(),
		Steps:     []RouteStep{},
	}
	if start := q.Start(); start != nil {
		response.From = start.Symbol()
	}

	previousFuel := 0
	for _, step := range plan.Steps() {
		response.Steps = append(response.Steps, RouteStep{
			Symbol:   step.System.Symbol(),
			Days:     step.Edge.Days,
			Fuel:     step.Edge.Fuel,
			FuelCost: step.Edge.Fuel - previousFuel,
			Danger:   step.Edge.Danger,
		})
		previousFuel = step.Edge.Fuel
	}
	return response
}
