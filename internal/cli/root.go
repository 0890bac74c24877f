package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"nucdash/internal/app"
	"nucdash/internal/config"
	"nucdash/internal/dataprocessing"
	apierrors "nucdash/internal/errors"
	"nucdash/internal/infrastructure"
	"nucdash/pkg/contracts"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	LogLevel   string

	cfg     *config.Config
	logger  *slog.Logger
	logFile *os.File
}

// NewRootCommand creates the root command of the nucdash CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "nucdash",
		Short:         config.AppTitle,
		Long:          config.AppDescription + ".",
		Version:       contracts.GetFullVersionString(),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logFile != nil {
				return opts.logFile.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewPrepareCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))

	return cmd
}

// load reads the configuration and builds the logger. Logs go to stderr so that
// command output on stdout stays clean.
func (o *RootOptions) load(stderr io.Writer) error {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigFile != "" {
		cfg, err = config.LoadFrom(o.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return apierrors.NewConfigError("failed to load configuration", err)
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
		if err := cfg.Validate(); err != nil {
			return apierrors.NewConfigError("invalid --log-level", err)
		}
	}

	logger, file, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)
	o.cfg, o.logger, o.logFile = cfg, infrastructure.WithComponent(logger, "cli"), file
	return nil
}

// prepareViews runs the pipeline once on the configured source, or on source when set.
// The run gets its own trace ID so its log lines can be correlated.
func (o *RootOptions) prepareViews(ctx context.Context, source string) (*dataprocessing.Views, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	if source != "" {
		o.cfg.Data.SourceFile = source
	}
	paths, err := config.NewPaths(o.cfg.Paths)
	if err != nil {
		return nil, err
	}
	return app.PrepareViews(ctx, o.cfg.Data, paths, nil, o.logger)
}
