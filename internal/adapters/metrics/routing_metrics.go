package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SearchInfo describes one finished route search
type SearchInfo struct {
	Operation string // "plan" or "reachable"
	StartKind string // "system", "player" or "ship"
	Found     bool
	Systems   int
	Days      int
	Fuel      int
	Duration  float64
}

// RoutingMetricsCollector handles all route search and galaxy cache metrics
type RoutingMetricsCollector struct {
	// Search metrics
	searchesTotal   *prometheus.CounterVec
	searchDuration  *prometheus.HistogramVec
	systemsExplored *prometheus.HistogramVec

	// Route metrics
	routeDays *prometheus.HistogramVec
	routeFuel *prometheus.HistogramVec

	// Galaxy snapshot metrics
	galaxyLoads   *prometheus.CounterVec
	galaxyLoadDur prometheus.Histogram
	galaxySystems prometheus.Gauge
}

// NewRoutingMetricsCollector creates a new routing metrics collector
func NewRoutingMetricsCollector() *RoutingMetricsCollector {
	return &RoutingMetricsCollector{
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "searches_total",
				Help:      "Total number of route searches by operation, start kind and result",
			},
			[]string{"operation", "start_kind", "result"},
		),

		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "search_duration_seconds",
				Help:      "Route search duration distribution",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"operation", "start_kind"},
		),

		systemsExplored: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "systems_explored",
				Help:      "Number of systems with a finalized route per search",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"operation"},
		),

		routeDays: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "route_days",
				Help:      "Travel days of planned routes",
				Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
			},
			[]string{"start_kind"},
		),

		routeFuel: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "route_fuel",
				Help:      "Fuel required by planned routes",
				Buckets:   []float64{0, 100, 200, 400, 800, 1600, 3200},
			},
			[]string{"start_kind"},
		),

		galaxyLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "galaxy_loads_total",
				Help:      "Galaxy snapshot requests by source (cache or database)",
			},
			[]string{"source"},
		),

		galaxyLoadDur: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "galaxy_load_duration_seconds",
				Help:      "Time spent rebuilding the galaxy snapshot from the database",
				Buckets:   prometheus.DefBuckets,
			},
		),

		galaxySystems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "galaxy_systems",
				Help:      "Number of systems in the current galaxy snapshot",
			},
		),
	}
}

// Register registers all routing metrics with the Prometheus registry
func (c *RoutingMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.searchesTotal,
		c.searchDuration,
		c.systemsExplored,
		c.routeDays,
		c.routeFuel,
		c.galaxyLoads,
		c.galaxyLoadDur,
		c.galaxySystems,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordSearch records a route search
func (c *RoutingMetricsCollector) RecordSearch(search SearchInfo) {
	result := "found"
	if !search.Found {
		result = "unreachable"
	}

	c.searchesTotal.WithLabelValues(search.Operation, search.StartKind, result).Inc()
	c.searchDuration.WithLabelValues(search.Operation, search.StartKind).Observe(search.Duration)
	c.systemsExplored.WithLabelValues(search.Operation).Observe(float64(search.Systems))

	// Days and fuel only mean something for a planned route
	if search.Operation == "plan" && search.Found {
		c.routeDays.WithLabelValues(search.StartKind).Observe(float64(search.Days))
		c.routeFuel.WithLabelValues(search.StartKind).Observe(float64(search.Fuel))
	}
}

// RecordGalaxyLoad records a galaxy snapshot request
func (c *RoutingMetricsCollector) RecordGalaxyLoad(source string, duration float64, systems int) {
	c.galaxyLoads.WithLabelValues(source).Inc()
	if source == "database" {
		c.galaxyLoadDur.Observe(duration)
	}
	c.galaxySystems.Set(float64(systems))
}
