package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"nucdash/internal/charts"
	"nucdash/internal/dataprocessing"
	"nucdash/internal/exporter"
	"nucdash/internal/infrastructure"
	"nucdash/pkg/contracts/domain"
)

var viewTitles = map[string]string{
	dataprocessing.ViewGlobal: "Global Distribution",
	dataprocessing.ViewLocal:  "Shell Closure",
}

// DashboardService serves the prepared views, the chart catalog and the exports.
// Views are immutable once prepared, so every method is safe for concurrent use.
type DashboardService struct {
	views      *dataprocessing.Views
	catalog    domain.Catalog
	summarizer *dataprocessing.Summarizer
	renderer   *charts.Renderer
	cache      *charts.Cache
	csv        *exporter.CSVWriter
	workbook   *exporter.WorkbookWriter
	metrics    *infrastructure.DashboardMetrics
	logger     *slog.Logger
}

// NewDashboardService creates a dashboard service over prepared views. A nil cache
// creates an empty one; metrics may be nil.
func NewDashboardService(views *dataprocessing.Views, renderer *charts.Renderer, cache *charts.Cache, metrics *infrastructure.DashboardMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if renderer == nil {
		renderer = charts.NewRenderer(0, 0)
	}
	if cache == nil {
		cache = charts.NewCache()
	}
	csvWriter := exporter.NewCSVWriter(logger)
	csvWriter.BOMPrefix = true

	return &DashboardService{
		views:      views,
		catalog:    charts.DefaultCatalog(),
		summarizer: dataprocessing.NewSummarizer(logger),
		renderer:   renderer,
		cache:      cache,
		csv:        csvWriter,
		workbook:   exporter.NewWorkbookWriter(logger),
		metrics:    metrics,
		logger:     logger.With(slog.String("service", "dashboard")),
	}
}

func (s *DashboardService) table(name string) (*dataprocessing.Table, error) {
	if s.views == nil {
		return nil, ErrNotPrepared
	}
	t, ok := s.views.View(name)
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: %q", ErrViewNotFound, name)
	}
	return t, nil
}

func (s *DashboardService) info(t *dataprocessing.Table) domain.ViewInfo {
	info := domain.ViewInfo{
		Name:    t.Name(),
		Title:   viewTitles[t.Name()],
		Rows:    t.Len(),
		Columns: t.Columns(),
	}
	if t.Name() == dataprocessing.ViewLocal {
		b := s.views.Band()
		info.Band = &domain.NeutronBand{Min: b.Min, Max: b.Max}
	}
	return info
}

// Views lists both prepared views.
func (s *DashboardService) Views() []domain.ViewInfo {
	if s.views == nil {
		return nil
	}
	return []domain.ViewInfo{s.info(s.views.Global()), s.info(s.views.Local())}
}

// View describes one prepared view.
func (s *DashboardService) View(name string) (domain.ViewInfo, error) {
	t, err := s.table(name)
	if err != nil {
		return domain.ViewInfo{}, err
	}
	return s.info(t), nil
}

// Rows returns a window of rows of a view. An offset past the end yields an empty page.
func (s *DashboardService) Rows(ctx context.Context, view string, offset, limit int) (*domain.RowsPage, error) {
	t, err := s.table(view)
	if err != nil {
		return nil, err
	}
	rows := t.MapRecords(t.Slice(offset, limit))

	s.logger.DebugContext(ctx, "rows served",
		slog.String("view", view),
		slog.Int("offset", offset),
		slog.Int("limit", limit),
		slog.Int("returned", len(rows)))

	return &domain.RowsPage{
		View:    view,
		Offset:  offset,
		Limit:   limit,
		Total:   t.Len(),
		Columns: t.Columns(),
		Rows:    rows,
	}, nil
}

// Column returns every value of one column, addressed by verbatim name or field id.
func (s *DashboardService) Column(ctx context.Context, view, column string) (*domain.ColumnData, error) {
	t, err := s.table(view)
	if err != nil {
		return nil, err
	}
	f, ok := t.Schema().FieldByName(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	return &domain.ColumnData{
		View:   view,
		Column: t.Schema().Column(f),
		Field:  f.String(),
		Values: t.Values(f),
	}, nil
}

// Summary describes the numeric columns of a view.
func (s *DashboardService) Summary(ctx context.Context, view string) (*dataprocessing.Summary, error) {
	t, err := s.table(view)
	if err != nil {
		return nil, err
	}
	return s.summarizer.Summarize(ctx, t)
}

// Scaler returns the standardization fitted on the full dataset.
func (s *DashboardService) Scaler() (domain.ScalerParams, error) {
	if s.views == nil {
		return domain.ScalerParams{}, ErrNotPrepared
	}
	sc := s.views.Scaler()
	schema := s.views.Global().Schema()

	params := domain.ScalerParams{Features: make([]domain.FeatureScaling, len(sc.Columns))}
	for i, col := range sc.Columns {
		fs := domain.FeatureScaling{
			Column:   col,
			Mean:     finitePtr(sc.Mean[i]),
			Variance: finitePtr(sc.Var[i]),
			Scale:    sc.Scale[i],
			Samples:  sc.NSamples[i],
		}
		if f, ok := schema.FieldByColumn(col); ok {
			fs.Field = f.String()
			fs.LogTransformed = f == dataprocessing.FieldHalfLife
		}
		params.Features[i] = fs
	}
	return params, nil
}

// Dataset describes the source the views were prepared from.
func (s *DashboardService) Dataset() (domain.DatasetInfo, error) {
	if s.views == nil {
		return domain.DatasetInfo{}, ErrNotPrepared
	}
	src := s.views.Source()
	return domain.DatasetInfo{
		Path:        src.Path,
		Bytes:       src.Bytes,
		SHA256:      src.SHA256,
		SourceRows:  src.Rows,
		DroppedRows: s.views.DroppedRows(),
		PreparedAt:  s.views.PreparedAt(),
	}, nil
}

// Catalog returns the dashboard layout.
func (s *DashboardService) Catalog() domain.Catalog {
	return s.catalog
}

func (s *DashboardService) chart(id string) (domain.ChartSpec, error) {
	spec, ok := s.catalog.Chart(id)
	if !ok {
		return domain.ChartSpec{}, fmt.Errorf("%w: %q", ErrChartNotFound, id)
	}
	return spec, nil
}

// ChartData computes the data behind one chart.
func (s *DashboardService) ChartData(ctx context.Context, id string) (*domain.ChartData, error) {
	spec, err := s.chart(id)
	if err != nil {
		return nil, err
	}
	if s.views == nil {
		return nil, ErrNotPrepared
	}
	return charts.Data(spec, s.views)
}

// ChartImage returns a rendered chart, drawing and caching it on first use.
func (s *DashboardService) ChartImage(ctx context.Context, id, format string) ([]byte, error) {
	spec, err := s.chart(id)
	if err != nil {
		return nil, err
	}
	if img, ok := s.cache.Get(id, format); ok {
		return img, nil
	}
	if s.views == nil {
		return nil, ErrNotPrepared
	}

	start := time.Now()
	img, err := s.renderer.Render(ctx, spec, s.views, format)
	s.metrics.RecordChartRender(ctx, id, format, time.Since(start), err)
	if err != nil {
		s.logger.ErrorContext(ctx, "chart render failed",
			slog.String("chart", id),
			slog.String("format", format),
			slog.String("error", err.Error()))
		return nil, err
	}
	s.cache.Put(id, format, img)
	return img, nil
}

// ExportCSV writes one view as CSV.
func (s *DashboardService) ExportCSV(ctx context.Context, w io.Writer, view string) error {
	t, err := s.table(view)
	if err != nil {
		return err
	}
	if err := s.csv.WriteTable(ctx, w, t); err != nil {
		return err
	}
	s.metrics.RecordExport(ctx, view, string(exporter.FormatCSV))
	return nil
}

// ExportXLSX writes both views and the scaler as one workbook.
func (s *DashboardService) ExportXLSX(ctx context.Context, w io.Writer) error {
	if s.views == nil {
		return ErrNotPrepared
	}
	if err := s.workbook.WriteViews(ctx, w, s.views); err != nil {
		return err
	}
	s.metrics.RecordExport(ctx, "all", string(exporter.FormatXLSX))
	return nil
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
