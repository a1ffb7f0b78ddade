// Package api serves route queries over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/starlane/internal/adapters/metrics"
	"github.com/andrescamacho/starlane/internal/application/mediator"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Mediator    mediator.Mediator
	HTTPMetrics *metrics.HTTPMetricsCollector // nil disables request metrics
	Limiter     *rate.Limiter                 // nil disables rate limiting
	CORSOrigins []string
	MetricsPath string
	Version     string
}

func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(ContextLogger(deps.Log))

	corsConfig := cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{RequestIDHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}
	if len(deps.CORSOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	if deps.HTTPMetrics != nil {
		r.Use(RequestMetrics(deps.HTTPMetrics))
	}

	if metrics.IsEnabled() {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	}
}

func registerRoutes(api *gin.RouterGroup, h *Handler) {
	api.GET("/routes/plan", h.PlanRoute)
	api.GET("/routes/reachable", h.ReachableSystems)
	api.GET("/systems/:symbol", h.GetSystem)

	api.GET("/players/:player", h.GetPlayer)
	api.POST("/players/:player/visits", h.RecordVisit)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)

	h := NewHandler(deps.Mediator, deps.Log, deps.HTTPMetrics, deps.Version)
	r.GET("/healthz", h.Health)

	api := r.Group("/api/v1")
	if deps.Limiter != nil {
		api.Use(RateLimit(deps.Limiter, deps.HTTPMetrics))
	}
	registerRoutes(api, h)

	return r
}
