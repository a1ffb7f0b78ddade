package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane/internal/adapters/metrics"
	"github.com/andrescamacho/starlane/internal/application/mediator"
)

type sampleQuery struct{}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "sampleQuery", metrics.RequestName(&sampleQuery{}))
	assert.Equal(t, "UnknownRequest", metrics.RequestName(nil))
}

func TestMediatorMiddleware_RecordsOutcome(t *testing.T) {
	metrics.InitRegistry()
	defer metrics.Reset()

	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	middleware := metrics.MediatorMiddleware(collector)

	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "ok", nil }
	fail := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }

	_, err := middleware(context.Background(), &sampleQuery{}, ok)
	require.NoError(t, err)
	_, err = middleware(context.Background(), &sampleQuery{}, fail)
	require.Error(t, err)

	assert.Equal(t, 2, seriesCount(t, "starlane_mediator_requests_total"))
}

func TestRoutingCollector_RecordSearch(t *testing.T) {
	metrics.InitRegistry()
	defer metrics.Reset()

	collector := metrics.NewRoutingMetricsCollector()
	require.NoError(t, collector.Register())
	metrics.SetGlobalRoutingCollector(collector)

	metrics.RecordSearch(metrics.SearchInfo{Operation: "plan", StartKind: "ship", Found: true, Systems: 4, Days: 3, Fuel: 300})
	metrics.RecordSearch(metrics.SearchInfo{Operation: "plan", StartKind: "ship", Found: false, Systems: 9})
	metrics.RecordGalaxyLoad("database", 0.01, 12)

	assert.Equal(t, 2, seriesCount(t, "starlane_routing_searches_total"))
	assert.Equal(t, 1, seriesCount(t, "starlane_routing_route_days"))
	assert.Equal(t, 1, seriesCount(t, "starlane_routing_galaxy_systems"))
}

func seriesCount(t *testing.T, name string) int {
	t.Helper()
	families, err := metrics.Registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return len(family.GetMetric())
		}
	}
	return 0
}

func TestRegister_WithoutRegistryIsNoop(t *testing.T) {
	metrics.Reset()

	assert.NoError(t, metrics.NewRoutingMetricsCollector().Register())
	assert.False(t, metrics.IsEnabled())

	// Global helpers are safe without a collector
	metrics.RecordSearch(metrics.SearchInfo{})
}

func TestHTTPCollector_RecordRequest(t *testing.T) {
	metrics.InitRegistry()
	defer metrics.Reset()

	collector := metrics.NewHTTPMetricsCollector()
	require.NoError(t, collector.Register())

	collector.RecordRequest("GET", "/api/v1/routes/plan", "200", 0.002)
	collector.RecordRequest("GET", "/api/v1/routes/plan", "404", 0.001)
	collector.RecordError("not_found")

	assert.Equal(t, 2, seriesCount(t, "starlane_http_requests_total"))
	assert.Equal(t, 1, seriesCount(t, "starlane_http_errors_total"))
}
