package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane/internal/application/galaxy/queries"
	"github.com/andrescamacho/starlane/internal/domain/shared"
	"github.com/andrescamacho/starlane/test/helpers"
)

func TestExportGalaxy_ReturnsSnapshot(t *testing.T) {
	g := helpers.NewFrontierGalaxy(t)
	handler := queries.NewExportGalaxyHandler(
		helpers.NewMockGalaxyProvider(g),
		helpers.NewMockPlayerRepository(helpers.NewFrontierPlayer(t, g)),
		helpers.NewMockShipRepository(helpers.NewFrontierShips(t)...),
	)

	response, err := handler.Handle(context.Background(), &queries.ExportGalaxyQuery{})

	require.NoError(t, err)
	snapshot := response.(*queries.ExportGalaxyResponse)
	assert.Same(t, g, snapshot.Galaxy)
	require.Len(t, snapshot.Players, 1)
	assert.Equal(t, helpers.FrontierAgent, snapshot.Players[0].AgentSymbol)
	require.Len(t, snapshot.Ships, 2)
	assert.Equal(t, helpers.FrontierFlagship, snapshot.Ships[0].ShipSymbol())
	assert.Equal(t, helpers.FrontierScout, snapshot.Ships[1].ShipSymbol())
}

func TestExportGalaxy_NoGalaxy(t *testing.T) {
	provider := helpers.NewMockGalaxyProvider(nil)
	provider.Err = shared.NewNotFoundError("galaxy", "current")
	handler := queries.NewExportGalaxyHandler(
		provider,
		helpers.NewMockPlayerRepository(),
		helpers.NewMockShipRepository(),
	)

	_, err := handler.Handle(context.Background(), &queries.ExportGalaxyQuery{})

	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestExportGalaxy_WrongRequest(t *testing.T) {
	handler := queries.NewExportGalaxyHandler(nil, nil, nil)

	_, err := handler.Handle(context.Background(), struct{}{})

	assert.EqualError(t, err, "invalid request type: expected *ExportGalaxyQuery")
}
