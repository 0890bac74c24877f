package app

import (
	"context"
	"log/slog"
	"time"

	"nucdash/internal/charts"
	"nucdash/internal/config"
	"nucdash/internal/dataprocessing"
	"nucdash/internal/infrastructure"
)

// PipelineOptions maps the data section of the configuration to pipeline options.
func PipelineOptions(cfg config.DataConfig, logger *slog.Logger) dataprocessing.Options {
	opts := dataprocessing.DefaultOptions()
	opts.Delimiter = cfg.DelimiterRune()
	if cfg.InvalidHalfLife != "" {
		opts.InvalidHalfLife = dataprocessing.HalfLifePolicy(cfg.InvalidHalfLife)
	}
	if cfg.LocalNMax > 0 {
		opts.LocalBand = dataprocessing.Band{Min: cfg.LocalNMin, Max: cfg.LocalNMax}
	}
	opts.Logger = logger
	return opts
}

// PrepareViews runs the pipeline on the configured source and records the run.
func PrepareViews(ctx context.Context, cfg config.DataConfig, paths *config.Paths, metrics *infrastructure.DashboardMetrics, logger *slog.Logger) (*dataprocessing.Views, error) {
	source := cfg.SourceFile
	if paths != nil {
		source = paths.ResolveSource(source)
	}

	start := time.Now()
	views, err := dataprocessing.Prepare(ctx, source, PipelineOptions(cfg, logger))
	rows := map[string]int{}
	if views != nil {
		rows[dataprocessing.ViewGlobal] = views.Global().Len()
		rows[dataprocessing.ViewLocal] = views.Local().Len()
	}
	metrics.RecordPipelineRun(ctx, time.Since(start), rows, err)
	return views, err
}

// RenderCharts renders every chart of the catalog in the given formats. A non-empty
// dir also receives the image files.
func RenderCharts(ctx context.Context, cfg config.ChartsConfig, views *dataprocessing.Views, formats []string, dir string, metrics *infrastructure.DashboardMetrics, logger *slog.Logger) (*charts.Cache, error) {
	renderer := charts.NewRenderer(cfg.WidthInch, cfg.HeightInch)
	p := charts.NewPrerenderer(renderer, cfg.Concurrency, metrics, logger)
	p.Dir = dir

	cache := charts.NewCache()
	if err := p.Run(ctx, charts.DefaultCatalog(), views, formats, cache); err != nil {
		return nil, err
	}
	return cache, nil
}
