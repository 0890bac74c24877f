package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nucdash/internal/app"
	"nucdash/internal/charts"
)

type renderOptions struct {
	source string
	out    string
	format string
}

// ValidRenderFormats defines the allowed --format values.
var ValidRenderFormats = []string{charts.FormatPNG, charts.FormatSVG, "all"}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render every dashboard chart to image files",
		Long: `Prepare the views and render every chart of the dashboard into the output
directory as <chart id>.<format>.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := renderFormats(opts.format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			views, err := rootOpts.prepareViews(ctx, opts.source)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(opts.out, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			cache, err := app.RenderCharts(ctx, rootOpts.cfg.Charts, views, formats, opts.out, nil, rootOpts.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %d images to %s\n", cache.Len(), opts.out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", "", "source dataset (overrides data.source_file)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "charts", "output directory")
	cmd.Flags().StringVar(&opts.format, "format", charts.FormatPNG, "image format (png|svg|all)")
	return cmd
}

func renderFormats(format string) ([]string, error) {
	switch format {
	case charts.FormatPNG, charts.FormatSVG:
		return []string{format}, nil
	case "all":
		return charts.Formats, nil
	}
	return nil, fmt.Errorf("invalid format %q: must be one of %v", format, ValidRenderFormats)
}
