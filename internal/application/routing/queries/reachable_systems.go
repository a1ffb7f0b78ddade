package queries

import (
	"context"
	"fmt"
	"sort"
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

// ReachableSystemsQuery asks how far every system around a start is.
// MaxSystems of 0 means the configured cap; a negative MaxDays means no limit.
type ReachableSystemsQuery struct {
	From        string
	PlayerID    *int
	AgentSymbol string
	MaxSystems  int
	MaxDays     int
	Wormholes   string
}

// ReachableSystem is one entry of a distance map
type ReachableSystem struct {
	Symbol string
	Via    string // Previous system on the best route, empty for the center
	Days   int
	Fuel   int
	Danger float64
}

// ReachableSystemsResponse lists reachable systems, nearest first
type ReachableSystemsResponse struct {
	Center  string
	Systems []ReachableSystem
}

// ReachableSystemsHandler handles the ReachableSystems query
type ReachableSystemsHandler struct {
	galaxies       galaxy.Provider
	shipRepo       navigation.ShipRepository
	playerResolver *common.PlayerResolver
	defaults       Defaults
}

// NewReachableSystemsHandler creates a new ReachableSystemsHandler
func NewReachableSystemsHandler(
	galaxies galaxy.Provider,
	playerRepo player.PlayerRepository,
	shipRepo navigation.ShipRepository,
	defaults Defaults,
) *ReachableSystemsHandler {
	return &ReachableSystemsHandler{
		galaxies:       galaxies,
		shipRepo:       shipRepo,
		playerResolver: common.NewPlayerResolver(playerRepo),
		defaults:       defaults,
	}
}

// Handle executes the ReachableSystems query
func (h *ReachableSystemsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ReachableSystemsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ReachableSystemsQuery")
	}

	g, err := h.galaxies.Galaxy(ctx)
	if err != nil {
		return nil, err
	}

	var q routing.Query
	if h.playerResolver.Wants(query.PlayerID, query.AgentSymbol) {
		p, err := h.playerResolver.ResolvePlayer(ctx, query.PlayerID, query.AgentSymbol)
		if err != nil {
			return nil, err
		}
		flagship, err := loadFlagship(ctx, h.shipRepo, p)
		if err != nil {
			return nil, err
		}
		q = routing.FromPlayer(g, p, flagship)
		if query.From != "" {
			center, ok := g.System(query.From)
			if !ok {
				return nil, shared.NewNotFoundError("system", query.From)
			}
			q = q.WithCenter(center)
		}
	} else {
		if query.From == "" {
			return nil, shared.NewValidationError("from", "a start system or player is required")
		}
		start, ok := g.System(query.From)
		if !ok {
			return nil, shared.NewNotFoundError("system", query.From)
		}
		q = routing.FromSystem(start).
			WithDrive(h.defaults.drive(0, 0)).
			WithWormholes(h.defaults.Wormholes)
	}

	q = q.WithMaxSystems(h.defaults.maxSystems(query.MaxSystems)).WithMaxDays(query.MaxDays)
	if q, err = applyWormholes(q, query.Wormholes); err != nil {
		return nil, err
	}

	start := time.Now()
	distances := routing.NewDistanceMap(q)
	elapsed := time.Since(start)

	response := toReachableSystemsResponse(distances)

	metrics.RecordSearch(metrics.SearchInfo{
		Operation: "reachable",
		StartKind: q.Kind().String(),
		Found:     distances.Len() > 0,
		Systems:   distances.Len(),
		Duration:  elapsed.Seconds(),
	})

	common.LoggerFromContext(ctx).Log("DEBUG", "Distance map built", map[string]interface{}{
		"center":     response.Center,
		"systems":    len(response.Systems),
		"start_kind": q.Kind().String(),
		"elapsed_us": elapsed.Microseconds(),
	})

	return response, nil
}

func toReachableSystemsResponse(distances *routing.DistanceMap) *ReachableSystemsResponse {
	response := &ReachableSystemsResponse{Systems: []ReachableSystem{}}
	if center := distances.Center(); center != nil {
		response.Center = center.Symbol()
	}

	for _, system := range distances.Systems() {
		edge, _ := distances.Edge(system)
		entry := ReachableSystem{
			Symbol: system.Symbol(),
			Days:   edge.Days,
			Fuel:   edge.Fuel,
			Danger: edge.Danger,
		}
		if edge.Prev != nil {
			entry.Via = edge.Prev.Symbol()
		}
		response.Systems = append(response.Systems, entry)
	}

	sort.SliceStable(response.Systems, func(i, j int) bool {
		a, b := response.Systems[i], response.Systems[j]
		if a.Days != b.Days {
			return a.Days < b.Days
		}
		return a.Fuel < b.Fuel
	})
	return response
}
