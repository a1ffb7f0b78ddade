package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetricsCollector tracks requests served by the HTTP API
type HTTPMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
}

// NewHTTPMetricsCollector creates a new HTTP metrics collector
func NewHTTPMetricsCollector() *HTTPMetricsCollector {
	return &HTTPMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration by method, route and status",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "errors_total",
				Help:      "Error responses by error code",
			},
			[]string{"code"},
		),
	}
}

// Register registers the collector's metrics with the Prometheus registry
func (c *HTTPMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal, c.errorsTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records one served request.
// route is the matched route pattern, never the raw path.
func (c *HTTPMetricsCollector) RecordRequest(method, route, status string, duration float64) {
	c.requestDuration.WithLabelValues(method, route, status).Observe(duration)
	c.requestsTotal.WithLabelValues(method, route, status).Inc()
}

// RecordError counts an error response by its code
func (c *HTTPMetricsCollector) RecordError(code string) {
	c.errorsTotal.WithLabelValues(code).Inc()
}
