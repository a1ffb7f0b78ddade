package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane/internal/application/player/commands"
	"github.com/andrescamacho/starlane/internal/domain/shared"
	"github.com/andrescamacho/starlane/test/helpers"
)

func intPtr(v int) *int {
	return &v
}

func TestRecordVisit_RevealsNeighbours(t *testing.T) {
	// Arrange
	g := helpers.NewFrontierGalaxy(t)
	p := helpers.NewFrontierPlayer(t, g)
	players := helpers.NewMockPlayerRepository(p)
	handler := commands.NewRecordVisitHandler(helpers.NewMockGalaxyProvider(g), players)

	// Act
	response, err := handler.Handle(context.Background(), &commands.RecordVisitCommand{
		PlayerID: intPtr(helpers.FrontierPlayerID),
		System:   "Alpha",
	})

	// Assert
	require.NoError(t, err)
	result := response.(*commands.RecordVisitResponse)
	assert.Equal(t, []string{"Beta"}, result.NewlySeen)
	assert.False(t, result.AlreadyVisited)
	assert.Equal(t, 2, result.VisitedCount)
	assert.Equal(t, 4, result.SeenCount)

	assert.True(t, p.HasVisited("Alpha"))
	assert.True(t, p.HasSeen("Beta"))
	assert.Equal(t, 1, players.Saves)
}

func TestRecordVisit_RepeatVisit(t *testing.T) {
	g := helpers.NewFrontierGalaxy(t)
	players := helpers.NewMockPlayerRepository(helpers.NewFrontierPlayer(t, g))
	handler := commands.NewRecordVisitHandler(helpers.NewMockGalaxyProvider(g), players)

	response, err := handler.Handle(context.Background(), &commands.RecordVisitCommand{
		AgentSymbol: helpers.FrontierAgent,
		System:      "Sol",
	})

	require.NoError(t, err)
	result := response.(*commands.RecordVisitResponse)
	assert.True(t, result.AlreadyVisited)
	assert.Empty(t, result.NewlySeen)
}

func TestRecordVisit_Errors(t *testing.T) {
	g := helpers.NewFrontierGalaxy(t)
	players := helpers.NewMockPlayerRepository(helpers.NewFrontierPlayer(t, g))
	handler := commands.NewRecordVisitHandler(helpers.NewMockGalaxyProvider(g), players)

	_, err := handler.Handle(context.Background(), &commands.RecordVisitCommand{PlayerID: intPtr(1)})
	var validation *shared.ValidationError
	assert.True(t, errors.As(err, &validation))

	_, err = handler.Handle(context.Background(), &commands.RecordVisitCommand{PlayerID: intPtr(1), System: "Nowhere"})
	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound))

	_, err = handler.Handle(context.Background(), &commands.RecordVisitCommand{AgentSymbol: "NOBODY", System: "Sol"})
	assert.True(t, errors.As(err, &notFound))
	assert.Zero(t, players.Saves)
}
