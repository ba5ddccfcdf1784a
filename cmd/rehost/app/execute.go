package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/EthanYidong/rehost/pkg/logging"
)

// Execute runs the rehost CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
// The root command itself assembles the configured files and serves them.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "rehost <config>",
		Short:   "Serve local and remote files with text substitutions",
		Version: a.version,
		Long: `rehost assembles a set of files at startup and serves them over HTTP.

Each file in the configuration is read from a local path or fetched from a
URL, passed through its find/replace rules (with {name} placeholders
expanded from [vars] and, with --override, the environment), optionally
renamed, and then served at /<name>.`,
		Example: `  # Serve on the default address 0.0.0.0:8000
  rehost site.toml

  # Custom port, environment variables win over [vars]
  rehost site.toml --port 3000 --override

  # List what would be served without binding a socket
  rehost inspect site.toml --format json`,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd.Context(), args[0])
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Override, "override", "o", a.config.Override, "let environment variables override [vars]")
	rootCmd.PersistentFlags().IntVar(&a.config.Concurrency, "concurrency", a.config.Concurrency, "number of files resolved in parallel")

	// Server flags
	rootCmd.Flags().StringVar(&a.config.Host, "host", a.config.Host, "IP address to bind")
	rootCmd.Flags().IntVarP(&a.config.Port, "port", "p", a.config.Port, "port to bind")
	rootCmd.Flags().DurationVar(&a.config.ShutdownTimeout, "shutdown-timeout", a.config.ShutdownTimeout, "how long in-flight requests may run after a shutdown signal")

	rootCmd.SetVersionTemplate("rehost {{.Version}}\n")
	if a.out != nil {
		rootCmd.SetOut(a.out)
	}

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// Flags write straight into a.config; only the logger needs rebuilding.
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.NewInspectCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
