package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starlane/internal/adapters/api"
	routegrpc "github.com/andrescamacho/starlane/internal/adapters/grpc"
	"github.com/andrescamacho/starlane/internal/application/mediator"
	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
)

// routeService answers route queries, either in process or through a route server
type routeService interface {
	PlanRoute(ctx context.Context, query *routingQueries.PlanRouteQuery) (*routingQueries.PlanRouteResponse, error)
	ReachableSystems(ctx context.Context, query *routingQueries.ReachableSystemsQuery) (*routingQueries.ReachableSystemsResponse, error)
	GetSystem(ctx context.Context, query *routingQueries.GetSystemQuery) (*routingQueries.SystemDetails, error)
}

// localRoutes sends route queries through an in-process mediator
type localRoutes struct {
	mediator mediator.Mediator
}

func (l *localRoutes) PlanRoute(ctx context.Context, query *routingQueries.PlanRouteQuery) (*routingQueries.PlanRouteResponse, error) {
	response, err := l.mediator.Send(ctx, query)
	if err != nil {
		return nil, err
	}
	return response.(*routingQueries.PlanRouteResponse), nil
}

func (l *localRoutes) ReachableSystems(ctx context.Context, query *routingQueries.ReachableSystemsQuery) (*routingQueries.ReachableSystemsResponse, error) {
	response, err := l.mediator.Send(ctx, query)
	if err != nil {
		return nil, err
	}
	return response.(*routingQueries.ReachableSystemsResponse), nil
}

func (l *localRoutes) GetSystem(ctx context.Context, query *routingQueries.GetSystemQuery) (*routingQueries.SystemDetails, error) {
	response, err := l.mediator.Send(ctx, query)
	if err != nil {
		return nil, err
	}
	return response.(*routingQueries.SystemDetails), nil
}

// withRouteService runs fn against the remote route server when one is
// configured, and against the local database otherwise
func withRouteService(ctx context.Context, fn func(ctx context.Context, routes routeService) error) error {
	if address := resolveRemoteAddress(); address != "" {
		client, err := routegrpc.NewRouteClient(address)
		if err != nil {
			return fmt.Errorf("failed to connect to route server: %w", err)
		}
		defer client.Close()
		return fn(ctx, client)
	}

	rt, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt.withLogger(ctx), &localRoutes{mediator: rt.mediator})
}

// NewRouteCommand creates the route command with subcommands
func NewRouteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Plan routes between systems",
		Long: `Plan the fewest-days route to a system, or list what can be reached.

A search starts from one of:
  --from SYSTEM   a bare system, with the configured default drive
  --ship SHIP     a ship, using its drives and current system
  a player        the player's flagship, limited to systems they have seen

With none of --from or --ship, the player from --player-id, --agent or
the default player is used.

Examples:
  starlane route plan --from Sol --to Gamma
  starlane route plan --from Sol --to Gamma --jump-fuel 200 --jump-range 150
  starlane route plan --agent CAPTAIN --to Gamma
  starlane route reachable --from Sol --max-days 2`,
	}

	cmd.AddCommand(newRoutePlanCommand())
	cmd.AddCommand(newRouteReachableCommand())

	return cmd
}

// startFlags are the flags shared by every search
type startFlags struct {
	from      string
	ship      string
	wormholes string
}

func (s *startFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.from, "from", "", "Start system")
	cmd.Flags().StringVar(&s.ship, "ship", "", "Start from a ship")
	cmd.Flags().StringVar(&s.wormholes, "wormholes", "", "Wormhole use: never, always or if-mapped")
}

// player resolves the player a search starts from. Explicit starts only
// take a player given on the command line.
func (s *startFlags) player() (*PlayerIdentifier, error) {
	if s.from != "" || s.ship != "" {
		return flagPlayerIdentifier(), nil
	}
	return resolvePlayerIdentifier()
}

func newRoutePlanCommand() *cobra.Command {
	var (
		start     startFlags
		to        string
		jumpFuel  int
		jumpRange float64
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan the fewest-days route to a system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return fmt.Errorf("--to flag is required")
			}
			ident, err := start.player()
			if err != nil {
				return err
			}

			query := &routingQueries.PlanRouteQuery{
				From:        start.from,
				To:          to,
				PlayerID:    ident.IDPtr(),
				AgentSymbol: ident.Agent(),
				ShipSymbol:  start.ship,
				Wormholes:   start.wormholes,
				JumpFuel:    jumpFuel,
				JumpRange:   jumpRange,
			}

			return withRouteService(cmd.Context(), func(ctx context.Context, routes routeService) error {
				result, err := routes.PlanRoute(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to plan route: %w", err)
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), api.ToPlanRouteDTO(result))
				}
				return printPlan(cmd.OutOrStdout(), result)
			})
		},
	}

	start.bind(cmd)
	cmd.Flags().StringVar(&to, "to", "", "Destination system (required)")
	cmd.Flags().IntVar(&jumpFuel, "jump-fuel", 0, "Fit a jump drive using this much fuel per jump")
	cmd.Flags().Float64Var(&jumpRange, "jump-range", 0, "Fit a jump drive with this range")

	return cmd
}

func newRouteReachableCommand() *cobra.Command {
	var (
		start      startFlags
		maxDays    int
		maxSystems int
	)

	cmd := &cobra.Command{
		Use:   "reachable",
		Short: "List systems reachable from a start, nearest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ident, err := start.player()
			if err != nil {
				return err
			}

			query := &routingQueries.ReachableSystemsQuery{
				From:        start.from,
				PlayerID:    ident.IDPtr(),
				AgentSymbol: ident.Agent(),
				MaxSystems:  maxSystems,
				MaxDays:     maxDays,
				Wormholes:   start.wormholes,
			}

			return withRouteService(cmd.Context(), func(ctx context.Context, routes routeService) error {
				result, err := routes.ReachableSystems(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to list reachable systems: %w", err)
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), api.ToReachableDTO(result))
				}
				return printReachable(cmd.OutOrStdout(), result, maxDays)
			})
		},
	}

	cmd.Flags().StringVar(&start.from, "from", "", "Start system")
	cmd.Flags().StringVar(&start.wormholes, "wormholes", "", "Wormhole use: never, always or if-mapped")
	cmd.Flags().IntVar(&maxDays, "max-days", -1, "Stop after this many days (-1 for no limit)")
	cmd.Flags().IntVar(&maxSystems, "max-systems", 0, "Stop after this many systems (0 for the server default)")

	return cmd
}

func printPlan(out io.Writer, result *routingQueries.PlanRouteResponse) error {
	if !result.Found {
		fmt.Fprintf(out, "No route from %s to %s\n", result.From, result.To)
		return nil
	}

	fmt.Fprintf(out, "Route %s → %s (%s start)\n", result.From, result.To, result.StartKind)
	fmt.Fprintf(out, "  Days:   %d\n", result.Days)
	fmt.Fprintf(out, "  Fuel:   %d\n", result.Fuel)
	fmt.Fprintf(out, "  Danger: %g\n\n", result.Danger)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSYSTEM\tDAY\tFUEL\tJUMP COST\tDANGER")
	fmt.Fprintln(w, "-\t------\t---\t----\t---------\t------")
	for i, step := range result.Steps {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%g\n", i, step.Symbol, step.Days, step.Fuel, step.FuelCost, step.Danger)
	}
	return w.Flush()
}

func printReachable(out io.Writer, result *routingQueries.ReachableSystemsResponse, maxDays int) error {
	fmt.Fprintf(out, "Systems reachable from %s within %s days: %d\n\n", result.Center, formatLimit(maxDays), len(result.Systems))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYSTEM\tVIA\tDAYS\tFUEL\tDANGER")
	fmt.Fprintln(w, "------\t---\t----\t----\t------")
	for _, system := range result.Systems {
		via := system.Via
		if via == "" {
			via = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%g\n", system.Symbol, via, system.Days, system.Fuel, system.Danger)
	}
	return w.Flush()
}

func printSystem(out io.Writer, system *routingQueries.SystemDetails) error {
	fmt.Fprintf(out, "System %s\n", system.Symbol)
	fmt.Fprintf(out, "  Position:   (%g, %g)\n", system.X, system.Y)
	fmt.Fprintf(out, "  Danger:     %g\n", system.Danger)
	fmt.Fprintf(out, "  Jump range: %g\n", system.JumpRange)
	if len(system.Links) > 0 {
		fmt.Fprintf(out, "  Hyperlanes: %s\n", strings.Join(system.Links, ", "))
	} else {
		fmt.Fprintf(out, "  Hyperlanes: (none)\n")
	}

	if len(system.Wormholes) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nWormholes:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  WORMHOLE\tTO\tREQUIRES")
	for _, exit := range system.Wormholes {
		requires := exit.AccessModule
		if requires == "" {
			requires = "-"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", exit.Wormhole, exit.To, requires)
	}
	return w.Flush()
}
