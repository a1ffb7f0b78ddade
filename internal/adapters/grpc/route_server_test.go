package grpc_test

import (
	"context"
	"net"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	routegrpc "github.com/andrescamacho/starlane/internal/adapters/grpc"
	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
	"github.com/andrescamacho/starlane/internal/application/setup"
	"github.com/andrescamacho/starlane/test/helpers"
)

const bufSize = 1024 * 1024

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

// startServer runs a route server over an in-memory listener and returns a
// dial option reaching it
func startServer(t *testing.T, limiter *rate.Limiter) grpc.DialOption {
	t.Helper()
	g := helpers.NewFrontierGalaxy(t)
	registry := setup.NewHandlerRegistry(
		nil,
		helpers.NewMockGalaxyProvider(g),
		helpers.NewMockPlayerRepository(helpers.NewFrontierPlayer(t, g)),
		helpers.NewMockShipRepository(helpers.NewFrontierShips(t)...),
		routingQueries.DefaultDefaults(),
	)
	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	lis := bufconn.Listen(bufSize)
	server := routegrpc.NewRouteServer(m, testLogger(), limiter)
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

func newClient(t *testing.T, limiter *rate.Limiter) *routegrpc.RouteClient {
	t.Helper()
	client, err := routegrpc.NewRouteClient("passthrough:///bufnet", startServer(t, limiter))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRouteClient_PlanRoute(t *testing.T) {
	client := newClient(t, nil)

	response, err := client.PlanRoute(context.Background(), &routingQueries.PlanRouteQuery{From: "Sol", To: "Gamma"})

	require.NoError(t, err)
	assert.True(t, response.Found)
	assert.Equal(t, "system", response.StartKind)
	assert.Equal(t, 3, response.Days)
	assert.Equal(t, 300, response.Fuel)
	assert.Equal(t, 3.0, response.Danger)
	require.Len(t, response.Steps, 4)
	assert.Equal(t, "Gamma", response.Steps[3].Symbol)
	assert.Equal(t, 100, response.Steps[3].FuelCost)
}

func TestRouteClient_PlanRouteFromPlayer(t *testing.T) {
	client := newClient(t, nil)
	playerID := helpers.FrontierPlayerID

	response, err := client.PlanRoute(context.Background(), &routingQueries.PlanRouteQuery{PlayerID: &playerID, To: "Beta"})

	require.NoError(t, err)
	assert.False(t, response.Found, "Beta is not on the player's map")
	assert.Equal(t, -1, response.Days)
	assert.Empty(t, response.Steps)
}

func TestRouteClient_ReachableSystems(t *testing.T) {
	client := newClient(t, nil)

	unbounded, err := client.ReachableSystems(context.Background(), &routingQueries.ReachableSystemsQuery{From: "Sol", MaxDays: -1})
	require.NoError(t, err)
	assert.Equal(t, "Sol", unbounded.Center)
	assert.Len(t, unbounded.Systems, 5)

	oneDay, err := client.ReachableSystems(context.Background(), &routingQueries.ReachableSystemsQuery{From: "Sol", MaxDays: 1})
	require.NoError(t, err)
	assert.Len(t, oneDay.Systems, 3)
	assert.Equal(t, "", oneDay.Systems[0].Via)
	assert.Equal(t, "Sol", oneDay.Systems[1].Via)
}

func TestRouteClient_GetSystem(t *testing.T) {
	client := newClient(t, nil)

	details, err := client.GetSystem(context.Background(), &routingQueries.GetSystemQuery{Symbol: "Gamma"})

	require.NoError(t, err)
	assert.Equal(t, 300.0, details.X)
	assert.Equal(t, []string{"Beta"}, details.Links)
	require.Len(t, details.Wormholes, 1)
	assert.Equal(t, "Sol", details.Wormholes[0].To)
}

func TestRouteClient_ErrorCodes(t *testing.T) {
	client := newClient(t, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		query *routingQueries.PlanRouteQuery
		code  codes.Code
	}{
		{name: "missing destination", query: &routingQueries.PlanRouteQuery{From: "Sol"}, code: codes.InvalidArgument},
		{name: "unknown system", query: &routingQueries.PlanRouteQuery{From: "Sol", To: "Nowhere"}, code: codes.NotFound},
		{name: "unknown ship", query: &routingQueries.PlanRouteQuery{ShipSymbol: "GHOST", To: "Sol"}, code: codes.NotFound},
		{name: "bad wormhole strategy", query: &routingQueries.PlanRouteQuery{From: "Sol", To: "Vega", Wormholes: "sometimes"}, code: codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.PlanRoute(ctx, tt.query)
			require.Error(t, err)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}

	assert.Equal(t, routegrpc.CircuitClosed, client.Breaker().State(), "request errors never trip the breaker")
}

func TestRouteServer_RateLimit(t *testing.T) {
	client := newClient(t, rate.NewLimiter(rate.Every(1<<62), 1))
	ctx := context.Background()

	_, err := client.GetSystem(ctx, &routingQueries.GetSystemQuery{Symbol: "Sol"})
	require.NoError(t, err)

	_, err = client.GetSystem(ctx, &routingQueries.GetSystemQuery{Symbol: "Sol"})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestRouteServer_RequestIDHeader(t *testing.T) {
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		startServer(t, nil),
	)
	require.NoError(t, err)
	defer conn.Close()

	in, err := structpb.NewStruct(map[string]interface{}{"symbol": "Sol"})
	require.NoError(t, err)

	var header metadata.MD
	out := &structpb.Struct{}
	err = conn.Invoke(context.Background(), routegrpc.FullMethod(routegrpc.MethodGetSystem), in, out, grpc.Header(&header))

	require.NoError(t, err)
	assert.Len(t, header.Get(routegrpc.RequestIDMetadataKey), 1)
	assert.Equal(t, "Sol", out.GetFields()["symbol"].GetStringValue())
}
