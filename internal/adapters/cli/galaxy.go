package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starlane/internal/adapters/api"
	"github.com/andrescamacho/starlane/internal/adapters/galaxyfile"
	galaxyCommands "github.com/andrescamacho/starlane/internal/application/galaxy/commands"
	galaxyQueries "github.com/andrescamacho/starlane/internal/application/galaxy/queries"
	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
)

// NewGalaxyCommand creates the galaxy command with subcommands
func NewGalaxyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "galaxy",
		Short: "Import, export and inspect the star map",
		Long: `Manage the star map stored in the local database.

Galaxies are exchanged as YAML files listing systems, hyperlanes,
wormholes, players and ships. Importing replaces the stored map.

Examples:
  starlane galaxy import frontier.yaml
  starlane galaxy export backup.yaml
  starlane galaxy show Sol`,
	}

	cmd.AddCommand(newGalaxyImportCommand())
	cmd.AddCommand(newGalaxyExportCommand())
	cmd.AddCommand(newGalaxyShowCommand())

	return cmd
}

func newGalaxyImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored galaxy with a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := galaxyfile.Load(args[0])
			if err != nil {
				return err
			}

			rt, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			response, err := rt.mediator.Send(rt.withLogger(cmd.Context()), &galaxyCommands.ImportGalaxyCommand{
				Galaxy:  content.Galaxy,
				Players: content.Players,
				Ships:   content.Ships,
			})
			if err != nil {
				return fmt.Errorf("failed to import galaxy: %w", err)
			}
			result := response.(*galaxyCommands.ImportGalaxyResponse)

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Galaxy imported from %s\n", args[0])
			fmt.Fprintf(out, "  Systems:    %d\n", result.Systems)
			fmt.Fprintf(out, "  Hyperlanes: %d\n", result.Hyperlanes)
			fmt.Fprintf(out, "  Wormholes:  %d\n", result.Wormholes)
			fmt.Fprintf(out, "  Players:    %d\n", result.Players)
			fmt.Fprintf(out, "  Ships:      %d\n", result.Ships)
			return nil
		},
	}
}

func newGalaxyExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the stored galaxy as YAML (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			response, err := rt.mediator.Send(rt.withLogger(cmd.Context()), &galaxyQueries.ExportGalaxyQuery{})
			if err != nil {
				return fmt.Errorf("failed to export galaxy: %w", err)
			}
			snapshot := response.(*galaxyQueries.ExportGalaxyResponse)
			doc := galaxyfile.Export(snapshot.Galaxy, snapshot.Players, snapshot.Ships)

			if len(args) == 0 {
				return galaxyfile.Write(cmd.OutOrStdout(), doc)
			}

			file, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			if err := galaxyfile.Write(file, doc); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Galaxy exported to %s (%d systems)\n", args[0], len(doc.Systems))
			return nil
		},
	}
}

func newGalaxyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <system>",
		Short: "Show a system and its connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRouteService(cmd.Context(), func(ctx context.Context, routes routeService) error {
				system, err := routes.GetSystem(ctx, &routingQueries.GetSystemQuery{Symbol: args[0]})
				if err != nil {
					return fmt.Errorf("failed to get system: %w", err)
				}
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), api.ToSystemDTO(system))
				}
				return printSystem(cmd.OutOrStdout(), system)
			})
		},
	}
}
