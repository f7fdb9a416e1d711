package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rad/internal/app"
	"rad/internal/term"
)

var (
	home       string
	configPath string

	console *term.Console
	logger  *zap.Logger
	wire    *app.Wire
)

// Execute runs the CLI and reports any failure on the console.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	console = term.Stdio()
	root := newRoot()
	if err := root.ExecuteContext(ctx); err != nil {
		console.Error(err)
		return err
	}
	return nil
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "rad",
		Short:         "Manage radicle identities and tracking",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.ResolveHome(home)
			if err != nil {
				return err
			}
			cfg, err := app.Load(dir, configPath, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err = newLogger(cfg.Verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger.Debug("config resolved",
				zap.String("home", cfg.Home),
				zap.String("agent_socket", cfg.AgentSocket),
				zap.Duration("agent_timeout", cfg.Timeout()),
			)

			wire, err = app.NewWire(cfg, logger, console)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "profile store (default $RAD_HOME or ~/.radicle)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	root.PersistentFlags().String("agent-socket", "", "ssh-agent socket (default $SSH_AUTH_SOCK)")
	root.PersistentFlags().String("agent-timeout", "", "timeout per ssh-agent call (default 10s)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(authCmd(), selfCmd(), trackCmd(), untrackCmd())
	return root
}

// newLogger builds a production logger that stays quiet below warnings unless
// verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
