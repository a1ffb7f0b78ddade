package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=..."
var Version = "dev"

var (
	// Global flags
	configPath    string
	playerID      int
	agentSymbol   string
	remoteAddress string
	jsonOutput    bool
	verbose       bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "starlane",
		Short: "Starlane - shortest routes across a star map",
		Long: `Starlane plans the fewest-days route between star systems, following
hyperlanes, jump drives and wormholes the way a ship or player could.

Commands read the local database directly, or talk to a running
"starlane serve" over gRPC when --remote is given.

Examples:
  starlane galaxy import frontier.yaml
  starlane route plan --from Sol --to Gamma
  starlane route plan --ship SCOUT-1 --to Gamma --wormholes always
  starlane route reachable --agent CAPTAIN --max-days 2
  starlane player visit Alpha --agent CAPTAIN
  starlane serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&playerID, "player-id", 0,
		"Player ID (alternative to agent)")
	rootCmd.PersistentFlags().StringVar(&agentSymbol, "agent", "",
		"Agent symbol (alternative to player-id)")
	rootCmd.PersistentFlags().StringVar(&remoteAddress, "remote", "",
		"gRPC address of a running route server")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewRouteCommand())
	rootCmd.AddCommand(NewGalaxyCommand())
	rootCmd.AddCommand(NewPlayerCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
