package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nucdash/internal/app"
)

type serveOptions struct {
	source string
	port   int
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Prepare the views and serve the dashboard",
		Long: `Prepare the global and shell closure views from the source dataset and serve
the dashboard page, the JSON API and the Prometheus metrics until interrupted.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			if opts.source != "" {
				cfg.Data.SourceFile = opts.source
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = opts.port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApplication(ctx, cfg, rootOpts.logger)
			if err != nil {
				return err
			}
			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", "", "source dataset (overrides data.source_file)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}
