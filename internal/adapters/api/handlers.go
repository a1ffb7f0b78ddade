package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andrescamacho/starlane/internal/adapters/metrics"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	playerCommands "github.com/andrescamacho/starlane/internal/application/player/commands"
	playerQueries "github.com/andrescamacho/starlane/internal/application/player/queries"
	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
)

// Handler serves the route, system and player endpoints
type Handler struct {
	mediator    mediator.Mediator
	log         *logrus.Logger
	httpMetrics *metrics.HTTPMetricsCollector
	version     string
	startTime   time.Time
}

// NewHandler creates a Handler. httpMetrics may be nil.
func NewHandler(m mediator.Mediator, log *logrus.Logger, httpMetrics *metrics.HTTPMetricsCollector, version string) *Handler {
	return &Handler{
		mediator:    m,
		log:         log,
		httpMetrics: httpMetrics,
		version:     version,
		startTime:   time.Now(),
	}
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// PlanRoute handles GET /routes/plan
func (h *Handler) PlanRoute(c *gin.Context) {
	query := &routingQueries.PlanRouteQuery{
		From:        c.Query("from"),
		To:          c.Query("to"),
		AgentSymbol: c.Query("agent"),
		ShipSymbol:  c.Query("ship"),
		Wormholes:   c.Query("wormholes"),
	}

	var err error
	if query.PlayerID, err = optionalInt(c, "player_id"); err != nil {
		h.invalid(c, err)
		return
	}
	if query.JumpFuel, err = intParam(c, "jump_fuel", 0); err != nil {
		h.invalid(c, err)
		return
	}
	if query.JumpRange, err = floatParam(c, "jump_range", 0); err != nil {
		h.invalid(c, err)
		return
	}

	response, err := h.mediator.Send(c.Request.Context(), query)
	if err != nil {
		h.respondHandlerError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToPlanRouteDTO(response.(*routingQueries.PlanRouteResponse)))
}

// ReachableSystems handles GET /routes/reachable
func (h *Handler) ReachableSystems(c *gin.Context) {
	query := &routingQueries.ReachableSystemsQuery{
		From:        c.Query("from"),
		AgentSymbol: c.Query("agent"),
		Wormholes:   c.Query("wormholes"),
	}

	var err error
	if query.PlayerID, err = optionalInt(c, "player_id"); err != nil {
		h.invalid(c, err)
		return
	}
	if query.MaxSystems, err = intParam(c, "max_systems", 0); err != nil {
		h.invalid(c, err)
		return
	}
	// An absent max_days means no limit
	if query.MaxDays, err = intParam(c, "max_days", -1); err != nil {
		h.invalid(c, err)
		return
	}

	response, err := h.mediator.Send(c.Request.Context(), query)
	if err != nil {
		h.respondHandlerError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToReachableDTO(response.(*routingQueries.ReachableSystemsResponse)))
}

// GetSystem handles GET /systems/:symbol
func (h *Handler) GetSystem(c *gin.Context) {
	response, err := h.mediator.Send(c.Request.Context(), &routingQueries.GetSystemQuery{Symbol: c.Param("symbol")})
	if err != nil {
		h.respondHandlerError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToSystemDTO(response.(*routingQueries.SystemDetails)))
}

// GetPlayer handles GET /players/:player, where :player is an id or agent symbol
func (h *Handler) GetPlayer(c *gin.Context) {
	playerID, agent := playerRef(c.Param("player"))

	response, err := h.mediator.Send(c.Request.Context(), &playerQueries.GetPlayerQuery{PlayerID: playerID, AgentSymbol: agent})
	if err != nil {
		h.respondHandlerError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToPlayerDTO(response.(*playerQueries.GetPlayerResponse)))
}

// RecordVisit handles POST /players/:player/visits
func (h *Handler) RecordVisit(c *gin.Context) {
	var body VisitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.invalid(c, err)
		return
	}
	playerID, agent := playerRef(c.Param("player"))

	response, err := h.mediator.Send(c.Request.Context(), &playerCommands.RecordVisitCommand{
		PlayerID:    playerID,
		AgentSymbol: agent,
		System:      body.System,
	})
	if err != nil {
		h.respondHandlerError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToVisitDTO(response.(*playerCommands.RecordVisitResponse)))
}

func (h *Handler) invalid(c *gin.Context, err error) {
	respondError(c, h.httpMetrics, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
}

func playerRef(value string) (*int, string) {
	if id, err := strconv.Atoi(value); err == nil {
		return &id, ""
	}
	return nil, value
}

func optionalInt(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &v, nil
}

func intParam(c *gin.Context, name string, fallback int) (int, error) {
	v, err := optionalInt(c, name)
	if err != nil || v == nil {
		return fallback, err
	}
	return *v, nil
}

func floatParam(c *gin.Context, name string, fallback float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}
