package steps

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/andrescamacho/starlane/internal/adapters/graph"
	"github.com/andrescamacho/starlane/internal/adapters/persistence"
	galaxyCommands "github.com/andrescamacho/starlane/internal/application/galaxy/commands"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	playerCommands "github.com/andrescamacho/starlane/internal/application/player/commands"
	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
	"github.com/andrescamacho/starlane/internal/application/setup"
	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/player"
	"github.com/andrescamacho/starlane/internal/domain/shared"
	"github.com/andrescamacho/starlane/internal/infrastructure/database"
)

// ============================================================================
// Test Context
// ============================================================================

type routeServiceContext struct {
	// Database and wiring
	db       *gorm.DB
	mediator mediator.Mediator

	// Galaxy under construction, imported by "the galaxy is imported"
	galaxy  *galaxy.Galaxy
	players []*player.Player
	ships   []*navigation.Ship

	// Results
	plan      *routingQueries.PlanRouteResponse
	reachable *routingQueries.ReachableSystemsResponse
	visit     *playerCommands.RecordVisitResponse
	err       error
}

func (ctx *routeServiceContext) reset() error {
	if ctx.db != nil {
		_ = database.Close(ctx.db)
	}
	*ctx = routeServiceContext{galaxy: galaxy.New()}

	db, err := database.NewTestConnection()
	if err != nil {
		return err
	}
	ctx.db = db

	galaxyRepo := persistence.NewGormGalaxyRepository(db)
	registry := setup.NewHandlerRegistry(
		galaxyRepo,
		graph.NewGalaxyProvider(galaxyRepo),
		persistence.NewGormPlayerRepository(db),
		persistence.NewGormShipRepository(db),
		routingQueries.DefaultDefaults(),
	)
	ctx.mediator, err = registry.CreateConfiguredMediator()
	return err
}

func splitSymbols(list string) []string {
	var symbols []string
	for _, symbol := range strings.Split(list, ",") {
		if symbol = strings.TrimSpace(symbol); symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	return symbols
}

func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 1 {
		return nil, fmt.Errorf("table needs a header row")
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows, nil
}

// ============================================================================
// Given
// ============================================================================

func (ctx *routeServiceContext) aStoredGalaxyWithSystems(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		x, err := strconv.ParseFloat(row["x"], 64)
		if err != nil {
			return err
		}
		y, err := strconv.ParseFloat(row["y"], 64)
		if err != nil {
			return err
		}
		danger, err := strconv.ParseFloat(row["danger"], 64)
		if err != nil {
			return err
		}
		position, err := shared.NewPosition(x, y)
		if err != nil {
			return err
		}
		if _, err := ctx.galaxy.AddSystem(row["symbol"], position, danger); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *routeServiceContext) hyperlanes(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := ctx.galaxy.AddHyperlane(row["from"], row["to"]); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *routeServiceContext) aWormholeThrough(symbol, stops string) error {
	_, err := ctx.galaxy.AddWormhole(symbol, "", splitSymbols(stops)...)
	return err
}

func (ctx *routeServiceContext) playerHasVisitedAndFlies(id int, agent, system, flagship string) error {
	p, err := player.NewPlayer(id, agent)
	if err != nil {
		return err
	}
	visited, ok := ctx.galaxy.System(system)
	if !ok {
		return fmt.Errorf("system %s is not in the galaxy", system)
	}
	p.Visit(visited)
	p.FlagshipSymbol = flagship
	ctx.players = append(ctx.players, p)
	return nil
}

func (ctx *routeServiceContext) shipOfPlayerIsAtWithHyperdrive(symbol string, playerID int, system string, fuel int) error {
	hyperdrive, err := navigation.NewShipModule("MODULE_HYPERDRIVE_I", navigation.ModuleKindHyperdrive, fuel, 0)
	if err != nil {
		return err
	}
	ship, err := navigation.NewShip(symbol, playerID, system, []*navigation.ShipModule{hyperdrive})
	if err != nil {
		return err
	}
	ctx.ships = append(ctx.ships, ship)
	return nil
}

func (ctx *routeServiceContext) theGalaxyIsImported() error {
	_, err := ctx.mediator.Send(context.Background(), &galaxyCommands.ImportGalaxyCommand{
		Galaxy:  ctx.galaxy,
		Players: ctx.players,
		Ships:   ctx.ships,
	})
	return err
}

// ============================================================================
// When
// ============================================================================

func (ctx *routeServiceContext) planRoute(query *routingQueries.PlanRouteQuery) {
	ctx.plan = nil
	response, err := ctx.mediator.Send(context.Background(), query)
	ctx.err = err
	if err == nil {
		ctx.plan = response.(*routingQueries.PlanRouteResponse)
	}
}

func (ctx *routeServiceContext) iPlanARouteFromTo(from, to string) error {
	ctx.planRoute(&routingQueries.PlanRouteQuery{From: from, To: to})
	return nil
}

func (ctx *routeServiceContext) iPlanARouteFromToWithWormholes(from, to, wormholes string) error {
	ctx.planRoute(&routingQueries.PlanRouteQuery{From: from, To: to, Wormholes: wormholes})
	return nil
}

func (ctx *routeServiceContext) playerPlansARouteTo(agent, to string) error {
	ctx.planRoute(&routingQueries.PlanRouteQuery{AgentSymbol: agent, To: to})
	return nil
}

func (ctx *routeServiceContext) playerVisits(agent, system string) error {
	response, err := ctx.mediator.Send(context.Background(), &playerCommands.RecordVisitCommand{
		AgentSymbol: agent,
		System:      system,
	})
	if err != nil {
		return err
	}
	ctx.visit = response.(*playerCommands.RecordVisitResponse)
	return nil
}

func (ctx *routeServiceContext) iListSystemsReachableFromWithinDays(from string, days int) error {
	response, err := ctx.mediator.Send(context.Background(), &routingQueries.ReachableSystemsQuery{
		From:    from,
		MaxDays: days,
	})
	ctx.err = err
	if err == nil {
		ctx.reachable = response.(*routingQueries.ReachableSystemsResponse)
	}
	return nil
}

// ============================================================================
// Then
// ============================================================================

func (ctx *routeServiceContext) requirePlan() error {
	if ctx.err != nil {
		return fmt.Errorf("expected a plan, got error: %w", ctx.err)
	}
	if ctx.plan == nil {
		return fmt.Errorf("no route was planned")
	}
	return nil
}

func (ctx *routeServiceContext) theRouteShouldBe(expected string) error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	if !ctx.plan.Found {
		return fmt.Errorf("expected route %s, but no route was found", expected)
	}
	actual := make([]string, 0, len(ctx.plan.Steps))
	for _, step := range ctx.plan.Steps {
		actual = append(actual, step.Symbol)
	}
	if got := strings.Join(actual, ", "); got != strings.Join(splitSymbols(expected), ", ") {
		return fmt.Errorf("expected route %s, got %s", expected, got)
	}
	return nil
}

func (ctx *routeServiceContext) theRouteShouldTakeDaysAndFuel(days, fuel int) error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	if ctx.plan.Days != days || ctx.plan.Fuel != fuel {
		return fmt.Errorf("expected %d days and %d fuel, got %d days and %d fuel", days, fuel, ctx.plan.Days, ctx.plan.Fuel)
	}
	return nil
}

func (ctx *routeServiceContext) noRouteShouldBeFound() error {
	if err := ctx.requirePlan(); err != nil {
		return err
	}
	if ctx.plan.Found || ctx.plan.Days != -1 || len(ctx.plan.Steps) != 0 {
		return fmt.Errorf("expected no route, got %d days over %d steps", ctx.plan.Days, len(ctx.plan.Steps))
	}
	return nil
}

func (ctx *routeServiceContext) theNewlySeenSystemsShouldBe(expected string) error {
	if ctx.visit == nil {
		return fmt.Errorf("no visit was recorded")
	}
	if got := strings.Join(ctx.visit.NewlySeen, ", "); got != strings.Join(splitSymbols(expected), ", ") {
		return fmt.Errorf("expected newly seen %s, got %s", expected, got)
	}
	return nil
}

func (ctx *routeServiceContext) theRequestShouldFailWithANotFoundError() error {
	var notFound *shared.NotFoundError
	if !errors.As(ctx.err, &notFound) {
		return fmt.Errorf("expected a not found error, got %v", ctx.err)
	}
	return nil
}

func (ctx *routeServiceContext) theRequestShouldFailWithAValidationError() error {
	var validation *shared.ValidationError
	if !errors.As(ctx.err, &validation) {
		return fmt.Errorf("expected a validation error, got %v", ctx.err)
	}
	return nil
}

func (ctx *routeServiceContext) theReachableSystemsShouldBe(expected string) error {
	if ctx.err != nil {
		return fmt.Errorf("expected reachable systems, got error: %w", ctx.err)
	}
	actual := make([]string, 0, len(ctx.reachable.Systems))
	for _, system := range ctx.reachable.Systems {
		actual = append(actual, system.Symbol)
	}
	sort.Strings(actual)
	if got := strings.Join(actual, ", "); got != strings.Join(splitSymbols(expected), ", ") {
		return fmt.Errorf("expected reachable %s, got %s", expected, got)
	}
	return nil
}

// InitializeRouteServiceScenario registers the route service steps
func InitializeRouteServiceScenario(sc *godog.ScenarioContext) {
	ctx := &routeServiceContext{}

	sc.Before(func(c context.Context, scenario *godog.Scenario) (context.Context, error) {
		return c, ctx.reset()
	})
	sc.After(func(c context.Context, scenario *godog.Scenario, err error) (context.Context, error) {
		if ctx.db != nil {
			_ = database.Close(ctx.db)
			ctx.db = nil
		}
		return c, nil
	})

	sc.Step(`^a stored galaxy with systems:$`, ctx.aStoredGalaxyWithSystems)
	sc.Step(`^hyperlanes:$`, ctx.hyperlanes)
	sc.Step(`^a wormhole "([^"]*)" through "([^"]*)"$`, ctx.aWormholeThrough)
	sc.Step(`^player (\d+) "([^"]*)" has visited "([^"]*)" and flies "([^"]*)"$`, ctx.playerHasVisitedAndFlies)
	sc.Step(`^ship "([^"]*)" of player (\d+) is at "([^"]*)" with a hyperdrive using (\d+) fuel$`, ctx.shipOfPlayerIsAtWithHyperdrive)
	sc.Step(`^the galaxy is imported$`, ctx.theGalaxyIsImported)

	sc.Step(`^I plan a route from "([^"]*)" to "([^"]*)"$`, ctx.iPlanARouteFromTo)
	sc.Step(`^I plan a route from "([^"]*)" to "([^"]*)" with wormholes "([^"]*)"$`, ctx.iPlanARouteFromToWithWormholes)
	sc.Step(`^player "([^"]*)" plans a route to "([^"]*)"$`, ctx.playerPlansARouteTo)
	sc.Step(`^player "([^"]*)" visits "([^"]*)"$`, ctx.playerVisits)
	sc.Step(`^I list systems reachable from "([^"]*)" within (-?\d+) days$`, ctx.iListSystemsReachableFromWithinDays)

	sc.Step(`^the route should be "([^"]*)"$`, ctx.theRouteShouldBe)
	sc.Step(`^the route should take (\d+) days and (\d+) fuel$`, ctx.theRouteShouldTakeDaysAndFuel)
	sc.Step(`^no route should be found$`, ctx.noRouteShouldBeFound)
	sc.Step(`^the newly seen systems should be "([^"]*)"$`, ctx.theNewlySeenSystemsShouldBe)
	sc.Step(`^the request should fail with a not found error$`, ctx.theRequestShouldFailWithANotFoundError)
	sc.Step(`^the request should fail with a validation error$`, ctx.theRequestShouldFailWithAValidationError)
	sc.Step(`^the reachable systems should be "([^"]*)"$`, ctx.theReachableSystemsShouldBe)
}
