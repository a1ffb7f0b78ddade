package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starlane/internal/adapters/api"
	playerCommands "github.com/andrescamacho/starlane/internal/application/player/commands"
	playerQueries "github.com/andrescamacho/starlane/internal/application/player/queries"
)

// NewPlayerCommand creates the player command with subcommands
func NewPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Inspect and update a player's map",
		Long: `Inspect and update which systems a player has visited and seen.

Player searches only route through systems the player has seen. Visiting
a system marks it visited and its hyperlane neighbours seen.

Specify the player using --player-id or --agent, or set a default with
'starlane config set-player'.

Examples:
  starlane player show --agent CAPTAIN
  starlane player visit Alpha --player-id 1`,
	}

	cmd.AddCommand(newPlayerShowCommand())
	cmd.AddCommand(newPlayerVisitCommand())

	return cmd
}

func newPlayerShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show a player's flagship and map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ident, err := resolvePlayerIdentifier()
			if err != nil {
				return err
			}

			rt, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			response, err := rt.mediator.Send(rt.withLogger(cmd.Context()), &playerQueries.GetPlayerQuery{
				PlayerID:    ident.IDPtr(),
				AgentSymbol: ident.Agent(),
			})
			if err != nil {
				return fmt.Errorf("failed to get player: %w", err)
			}
			p := response.(*playerQueries.GetPlayerResponse)

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), api.ToPlayerDTO(p))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Player Information\n")
			fmt.Fprintf(out, "==================\n\n")
			fmt.Fprintf(out, "Player ID:     %d\n", p.ID)
			fmt.Fprintf(out, "Agent Symbol:  %s\n", p.Agent)
			if p.Flagship != "" {
				fmt.Fprintf(out, "Flagship:      %s\n", p.Flagship)
			} else {
				fmt.Fprintf(out, "Flagship:      (none)\n")
			}
			fmt.Fprintf(out, "Visited (%d):   %s\n", len(p.Visited), strings.Join(p.Visited, ", "))
			fmt.Fprintf(out, "Seen (%d):      %s\n", len(p.Seen), strings.Join(p.Seen, ", "))
			return nil
		},
	}
}

func newPlayerVisitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "visit <system>",
		Short: "Record that the player visited a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ident, err := resolvePlayerIdentifier()
			if err != nil {
				return err
			}

			rt, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			response, err := rt.mediator.Send(rt.withLogger(cmd.Context()), &playerCommands.RecordVisitCommand{
				PlayerID:    ident.IDPtr(),
				AgentSymbol: ident.Agent(),
				System:      args[0],
			})
			if err != nil {
				return fmt.Errorf("failed to record visit: %w", err)
			}
			result := response.(*playerCommands.RecordVisitResponse)

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), api.ToVisitDTO(result))
			}

			out := cmd.OutOrStdout()
			if result.AlreadyVisited {
				fmt.Fprintf(out, "%s had already visited %s\n", result.AgentSymbol, result.System)
			} else {
				fmt.Fprintf(out, "✓ %s visited %s\n", result.AgentSymbol, result.System)
			}
			if len(result.NewlySeen) > 0 {
				fmt.Fprintf(out, "  Newly seen: %s\n", strings.Join(result.NewlySeen, ", "))
			}
			fmt.Fprintf(out, "  Visited: %d  Seen: %d\n", result.VisitedCount, result.SeenCount)
			return nil
		},
	}
}
