package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/andrescamacho/starlane/internal/adapters/graph"
	"github.com/andrescamacho/starlane/internal/adapters/metrics"
	"github.com/andrescamacho/starlane/internal/adapters/persistence"
	"github.com/andrescamacho/starlane/internal/application/common"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
	"github.com/andrescamacho/starlane/internal/application/setup"
	"github.com/andrescamacho/starlane/internal/domain/routing"
	"github.com/andrescamacho/starlane/internal/infrastructure/config"
	"github.com/andrescamacho/starlane/internal/infrastructure/database"
	"github.com/andrescamacho/starlane/internal/infrastructure/logging"
)

// runtime is the wired application behind one CLI invocation
type runtime struct {
	cfg         *config.Config
	log         *logrus.Logger
	db          *gorm.DB
	galaxies    *graph.GalaxyProvider
	mediator    mediator.Mediator
	httpMetrics *metrics.HTTPMetricsCollector
}

// bootstrap loads configuration, opens the database and builds the mediator.
// Only the server registers metrics collectors and keeps logs on stdout.
func bootstrap(server bool) (*runtime, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Logging
	if !server && logCfg.Output == "stdout" {
		// Keep stdout for command output
		logCfg.Output = "stderr"
	}
	if verbose {
		logCfg.Level = "debug"
	}
	log, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	defaults, err := routingDefaults(cfg.Routing)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log, db: db}

	var middlewares []mediator.Middleware
	if server && cfg.Metrics.Enabled {
		commandCollector, err := rt.enableMetrics()
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		middlewares = append(middlewares, metrics.MediatorMiddleware(commandCollector))
	}

	galaxyRepo := persistence.NewGormGalaxyRepository(db)
	rt.galaxies = graph.NewGalaxyProvider(galaxyRepo)

	registry := setup.NewHandlerRegistry(
		galaxyRepo,
		rt.galaxies,
		persistence.NewGormPlayerRepository(db),
		persistence.NewGormShipRepository(db),
		defaults,
	)
	rt.mediator, err = registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to create mediator: %w", err)
	}

	log.WithFields(logrus.Fields{
		"database":  cfg.Database.Type,
		"wormholes": defaults.Wormholes.String(),
		"metrics":   metrics.IsEnabled(),
	}).Debug("Application wired")

	return rt, nil
}

// enableMetrics creates the registry and every collector
func (r *runtime) enableMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	routingCollector := metrics.NewRoutingMetricsCollector()
	if err := routingCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register routing metrics: %w", err)
	}
	metrics.SetGlobalRoutingCollector(routingCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}

	r.httpMetrics = metrics.NewHTTPMetricsCollector()
	if err := r.httpMetrics.Register(); err != nil {
		return nil, fmt.Errorf("failed to register HTTP metrics: %w", err)
	}
	return commandCollector, nil
}

// withLogger attaches the runtime logger to ctx for the handlers
func (r *runtime) withLogger(ctx context.Context) context.Context {
	return common.WithLogger(ctx, logging.NewContextLogger(logrus.NewEntry(r.log)))
}

// Close releases the database connection
func (r *runtime) Close() error {
	return database.Close(r.db)
}

// routingDefaults converts the routing config section into query defaults
func routingDefaults(cfg config.RoutingConfig) (routingQueries.Defaults, error) {
	strategy, err := routing.ParseWormholeStrategy(cfg.DefaultWormholes)
	if err != nil {
		return routingQueries.Defaults{}, fmt.Errorf("invalid routing.default_wormholes: %w", err)
	}

	maxSystems := cfg.MaxSystems
	if maxSystems == 0 {
		maxSystems = routing.Unbounded
	}

	return routingQueries.Defaults{
		HyperdriveFuel: cfg.DefaultHyperdriveFuel,
		JumpFuel:       cfg.DefaultJumpFuel,
		JumpRange:      cfg.DefaultJumpRange,
		Wormholes:      strategy,
		MaxSystems:     maxSystems,
	}, nil
}
