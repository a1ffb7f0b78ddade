package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	playerQueries "github.com/andrescamacho/starlane/internal/application/player/queries"
	"github.com/andrescamacho/starlane/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Starlane configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (STARLANE_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default player, route server) are stored in ~/.starlane/config.json

Examples:
  starlane config show
  starlane config set-player --agent CAPTAIN
  starlane config set-remote localhost:50061
  starlane config clear-player`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetPlayerCommand())
	cmd.AddCommand(newConfigClearPlayerCommand())
	cmd.AddCommand(newConfigSetRemoteCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Starlane Configuration")
			fmt.Fprintln(out, "======================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			switch {
			case userCfg.DefaultPlayerID != nil:
				fmt.Fprintf(out, "  Default Player:   ID=%d (%s)\n", *userCfg.DefaultPlayerID, userCfg.DefaultAgent)
			case userCfg.DefaultAgent != "":
				fmt.Fprintf(out, "  Default Player:   Agent=%s\n", userCfg.DefaultAgent)
			default:
				fmt.Fprintf(out, "  Default Player:   (not set)\n")
			}
			if userCfg.RemoteAddress != "" {
				fmt.Fprintf(out, "  Route Server:     %s\n", userCfg.RemoteAddress)
			} else {
				fmt.Fprintf(out, "  Route Server:     (local database)\n")
			}

			db := cfg.Database.Redacted()
			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", db.Type)
			switch {
			case db.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", db.URL)
			case db.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", db.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", db.Host)
				fmt.Fprintf(out, "  Port:             %d\n", db.Port)
				fmt.Fprintf(out, "  Database:         %s\n", db.Name)
				fmt.Fprintf(out, "  User:             %s\n", db.User)
				fmt.Fprintf(out, "  Password:         %s\n", db.Password)
			}

			fmt.Fprintln(out, "\nRouting:")
			fmt.Fprintf(out, "  Hyperdrive Fuel:  %d\n", cfg.Routing.DefaultHyperdriveFuel)
			fmt.Fprintf(out, "  Jump Fuel:        %d\n", cfg.Routing.DefaultJumpFuel)
			fmt.Fprintf(out, "  Jump Range:       %g\n", cfg.Routing.DefaultJumpRange)
			fmt.Fprintf(out, "  Wormholes:        %s\n", cfg.Routing.DefaultWormholes)
			if cfg.Routing.MaxSystems > 0 {
				fmt.Fprintf(out, "  Max Systems:      %d\n", cfg.Routing.MaxSystems)
			} else {
				fmt.Fprintf(out, "  Max Systems:      unlimited\n")
			}

			fmt.Fprintln(out, "\nServer:")
			fmt.Fprintf(out, "  gRPC Address:     %s\n", cfg.Server.GRPCAddress)
			fmt.Fprintf(out, "  HTTP Address:     %s\n", cfg.Server.HTTPAddress)
			fmt.Fprintf(out, "  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)
			fmt.Fprintf(out, "  Shutdown Timeout: %s\n", cfg.Server.ShutdownTimeout)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Path:             %s\n", cfg.Metrics.Path)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

func newConfigSetPlayerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-player",
		Short: "Set default player",
		Long: `Set the default player to use for commands.

Specify the player using either --player-id or --agent flag. The player
must exist in the local database.

Examples:
  starlane config set-player --player-id 1
  starlane config set-player --agent CAPTAIN`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ident := flagPlayerIdentifier()
			if ident == nil {
				return fmt.Errorf("either --player-id or --agent flag is required")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			rt, err := bootstrap(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			// Verify player exists in database
			response, err := rt.mediator.Send(rt.withLogger(cmd.Context()), &playerQueries.GetPlayerQuery{
				PlayerID:    ident.IDPtr(),
				AgentSymbol: ident.Agent(),
			})
			if err != nil {
				return fmt.Errorf("failed to find player: %w", err)
			}
			p := response.(*playerQueries.GetPlayerResponse)

			if err := userConfigHandler.SetDefaultPlayer(p.ID, p.Agent); err != nil {
				return fmt.Errorf("failed to set default player: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Default player set successfully")
			fmt.Fprintf(out, "  Player ID:    %d\n", p.ID)
			fmt.Fprintf(out, "  Agent Symbol: %s\n", p.Agent)
			fmt.Fprintf(out, "\nOverride with --player-id or --agent flags.\n")
			return nil
		},
	}
}

func newConfigClearPlayerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-player",
		Short: "Clear default player setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultPlayer(); err != nil {
				return fmt.Errorf("failed to clear default player: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Default player cleared")
			return nil
		},
	}
}

func newConfigSetRemoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-remote [address]",
		Short: "Send route queries to a route server (no address to use the local database)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			address := ""
			if len(args) == 1 {
				address = args[0]
			}
			if err := userConfigHandler.SetRemoteAddress(address); err != nil {
				return fmt.Errorf("failed to set route server: %w", err)
			}

			if address == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Route queries use the local database")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Route queries go to %s\n", address)
			}
			return nil
		},
	}
}
