package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nucdash/internal/config"
	"nucdash/internal/exporter"
)

type prepareOptions struct {
	source string
	out    string
	xlsx   bool
}

// NewPrepareCommand creates the prepare command.
func NewPrepareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &prepareOptions{}

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Write the prepared views as CSV",
		Long: `Run the preparation pipeline once and write global.csv and local.csv to the
output directory. With --xlsx the views and the fitted scaler are also written
to views.xlsx.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			views, err := rootOpts.prepareViews(ctx, opts.source)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(opts.out, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			exp := exporter.New(&config.Paths{ExportsDir: opts.out}, rootOpts.logger)

			var written []string
			if opts.xlsx {
				written, err = exp.ExportAll(ctx, views)
			} else {
				written, err = exp.ExportCSV(ctx, views)
			}
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", "", "source dataset (overrides data.source_file)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "exports", "output directory")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "also write views.xlsx")
	return cmd
}
