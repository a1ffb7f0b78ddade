package setup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	galaxyCommands "github.com/andrescamacho/starlane/internal/application/galaxy/commands"
	galaxyQueries "github.com/andrescamacho/starlane/internal/application/galaxy/queries"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
	"github.com/andrescamacho/starlane/internal/application/setup"
	"github.com/andrescamacho/starlane/test/helpers"
)

func TestCreateConfiguredMediator_DispatchesRouteQueries(t *testing.T) {
	g := helpers.NewFrontierGalaxy(t)
	registry := setup.NewHandlerRegistry(
		helpers.NewMockGalaxyRepository(g),
		helpers.NewMockGalaxyProvider(g),
		helpers.NewMockPlayerRepository(helpers.NewFrontierPlayer(t, g)),
		helpers.NewMockShipRepository(helpers.NewFrontierShips(t)...),
		routingQueries.DefaultDefaults(),
	)

	var seen []string
	recorder := func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		seen = append(seen, "request")
		return next(ctx, request)
	}

	m, err := registry.CreateConfiguredMediator(recorder)
	require.NoError(t, err)

	response, err := m.Send(context.Background(), &routingQueries.PlanRouteQuery{From: "Sol", To: "Vega"})
	require.NoError(t, err)
	assert.Equal(t, 1, response.(*routingQueries.PlanRouteResponse).Days)
	assert.Equal(t, []string{"request"}, seen)
}

func TestCreateConfiguredMediator_ReadOnly(t *testing.T) {
	g := helpers.NewFrontierGalaxy(t)
	registry := setup.NewHandlerRegistry(
		nil,
		helpers.NewMockGalaxyProvider(g),
		helpers.NewMockPlayerRepository(),
		helpers.NewMockShipRepository(),
		routingQueries.DefaultDefaults(),
	)

	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	_, err = m.Send(context.Background(), &galaxyCommands.ImportGalaxyCommand{Galaxy: g})
	assert.ErrorContains(t, err, "no handler registered")

	// Exports only read, so they stay available
	response, err := m.Send(context.Background(), &galaxyQueries.ExportGalaxyQuery{})
	require.NoError(t, err)
	assert.Same(t, g, response.(*galaxyQueries.ExportGalaxyResponse).Galaxy)
}
