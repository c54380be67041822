package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"socialhub/internal/config"
	"syscall"

	"github.com/spf13/cobra"
)

type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the socialhub CLI with serve and migrate subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "socialhub",
		Short: "Social network backend",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.Verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())

	return cmd
}

func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Start the HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if cmd.Flags().Changed("port") {
				cfg.ServerPort = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return Serve(ctx, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides SERVER_PORT)")

	return cmd
}

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Create tables or indexes for the configured storage",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Migrate(contextOf(cmd), config.LoadConfig())
		},
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
