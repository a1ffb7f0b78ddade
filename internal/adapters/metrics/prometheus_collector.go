package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// Namespace for all metrics
	namespace = "starlane"
	// Subsystem for route engine metrics
	subsystem = "routing"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalRoutingCollector is the singleton routing metrics collector
	// Set by SetGlobalRoutingCollector() when metrics are enabled
	globalRoutingCollector RoutingMetricsRecorder
)

// RoutingMetricsRecorder defines the interface for recording route engine metrics
// This interface is used by application code to record metrics
type RoutingMetricsRecorder interface {
	RecordSearch(search SearchInfo)
	RecordGalaxyLoad(source string, duration float64, systems int)
}

// InitRegistry initializes the Prometheus registry with process and Go runtime collectors.
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and global collectors
func Reset() {
	Registry = nil
	globalRoutingCollector = nil
}

// SetGlobalRoutingCollector sets the global routing metrics collector
func SetGlobalRoutingCollector(collector RoutingMetricsRecorder) {
	globalRoutingCollector = collector
}

// RecordSearch records a completed route search globally
func RecordSearch(search SearchInfo) {
	if globalRoutingCollector != nil {
		globalRoutingCollector.RecordSearch(search)
	}
}

// RecordGalaxyLoad records a galaxy snapshot load globally
func RecordGalaxyLoad(source string, duration float64, systems int) {
	if globalRoutingCollector != nil {
		globalRoutingCollector.RecordGalaxyLoad(source, duration, systems)
	}
}
