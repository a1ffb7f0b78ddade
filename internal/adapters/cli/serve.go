package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/starlane/internal/adapters/api"
	routegrpc "github.com/andrescamacho/starlane/internal/adapters/grpc"
	"github.com/andrescamacho/starlane/internal/infrastructure/config"
	"github.com/andrescamacho/starlane/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC and HTTP route servers",
		Long: `Serve route queries over gRPC and HTTP from the configured database.

The gRPC server answers "starlane --remote" clients. The HTTP server exposes
the JSON API under /api/v1, a health check at /healthz and, when metrics are
enabled, Prometheus metrics.

Example:
  starlane serve --config configs/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Take over the PID file even if it looks held")

	return cmd
}

// runServer serves until ctx is cancelled or a listener fails, then shuts
// both servers down within the configured timeout
func runServer(ctx context.Context, force bool) error {
	rt, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.cfg
	log := rt.log

	if cfg.Server.PIDFile != "" {
		pf := pidfile.New(cfg.Server.PIDFile)
		if force {
			_ = pf.Release()
		}
		if err := pf.Acquire(); err != nil {
			return err
		}
		defer func() {
			if err := pf.Release(); err != nil {
				log.WithError(err).Warn("Failed to remove PID file")
			}
		}()
		log.WithField("path", pf.Path()).Debug("PID file lock acquired")
	}

	// Warm the galaxy cache so the first query does not pay for the load
	if g, err := rt.galaxies.Galaxy(rt.withLogger(ctx)); err != nil {
		log.WithError(err).Warn("No galaxy loaded yet; import one with 'starlane galaxy import'")
	} else {
		log.WithField("systems", g.Len()).Info("Galaxy loaded")
	}

	limiter := newLimiter(cfg.Server.RateLimit)

	grpcListener, err := net.Listen("tcp", cfg.Server.GRPCAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.GRPCAddress, err)
	}
	routeServer := routegrpc.NewRouteServer(rt.mediator, log, limiter)

	httpServer := &http.Server{
		Addr: cfg.Server.HTTPAddress,
		Handler: api.NewRouter(&api.RouterDeps{
			Log:         log,
			Mediator:    rt.mediator,
			HTTPMetrics: rt.httpMetrics,
			Limiter:     limiter,
			CORSOrigins: cfg.Server.CORSOrigins,
			MetricsPath: cfg.Metrics.Path,
			Version:     Version,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.WithField("address", cfg.Server.GRPCAddress).Info("gRPC route server listening")
		return routeServer.Serve(grpcListener)
	})

	group.Go(func() error {
		log.WithField("address", cfg.Server.HTTPAddress).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Shutting down")
		return shutdown(log, cfg.Server, routeServer, httpServer)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("Server stopped")
	return nil
}

// shutdown stops both servers, forcing the gRPC server once the timeout passes
func shutdown(log *logrus.Logger, cfg config.ServerConfig, routeServer *routegrpc.RouteServer, httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		routeServer.GracefulStop()
		close(stopped)
	}()

	httpErr := httpServer.Shutdown(ctx)

	select {
	case <-stopped:
	case <-ctx.Done():
		log.Warn("gRPC graceful stop timed out, forcing")
		routeServer.Stop()
	}

	if httpErr != nil {
		return fmt.Errorf("HTTP shutdown failed: %w", httpErr)
	}
	return nil
}

func newLimiter(cfg config.RateLimitConfig) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(cfg.Requests), cfg.Burst)
}
