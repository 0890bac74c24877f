package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"nucdash/internal/config"
	"nucdash/internal/dataprocessing"
)

// Exporter writes every export of a pair of views to the exports directory
type Exporter struct {
	paths    *config.Paths
	CSV      *CSVWriter
	Workbook *WorkbookWriter
	logger   *slog.Logger
}

// New creates an exporter rooted at paths.ExportsDir
func New(paths *config.Paths, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	csvw := NewCSVWriter(logger)
	csvw.BOMPrefix = true
	return &Exporter{
		paths:    paths,
		CSV:      csvw,
		Workbook: NewWorkbookWriter(logger),
		logger:   logger.With(slog.String("component", "exporter")),
	}
}

// ExportCSV writes global.csv and local.csv and returns their paths
func (e *Exporter) ExportCSV(ctx context.Context, views *dataprocessing.Views) ([]string, error) {
	var written []string
	for _, t := range []*dataprocessing.Table{views.Global(), views.Local()} {
		path := e.paths.GetExportPath(Filename(t.Name(), FormatCSV))
		if err := e.CSV.WriteTableFile(ctx, path, t); err != nil {
			return written, fmt.Errorf("export %s: %w", t.Name(), err)
		}
		written = append(written, path)
	}
	return written, nil
}

// ExportAll writes global.csv, local.csv and views.xlsx and returns their paths
func (e *Exporter) ExportAll(ctx context.Context, views *dataprocessing.Views) ([]string, error) {
	written, err := e.ExportCSV(ctx, views)
	if err != nil {
		return written, err
	}

	path := e.paths.GetExportPath(config.ViewsXLSXName)
	if err := e.Workbook.WriteViewsFile(ctx, path, views); err != nil {
		return written, fmt.Errorf("export workbook: %w", err)
	}
	written = append(written, path)

	e.logger.InfoContext(ctx, "exports written", slog.Int("files", len(written)))
	return written, nil
}
