package http

import (
	"context"
	"io"

	"nucdash/internal/dataprocessing"
	"nucdash/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations the handlers need
type DashboardServiceInterface interface {
	Views() []domain.ViewInfo
	View(name string) (domain.ViewInfo, error)
	Rows(ctx context.Context, view string, offset, limit int) (*domain.RowsPage, error)
	Column(ctx context.Context, view, column string) (*domain.ColumnData, error)
	Summary(ctx context.Context, view string) (*dataprocessing.Summary, error)
	Scaler() (domain.ScalerParams, error)
	Dataset() (domain.DatasetInfo, error)
	Catalog() domain.Catalog
	ChartData(ctx context.Context, id string) (*domain.ChartData, error)
	ChartImage(ctx context.Context, id, format string) ([]byte, error)
	ExportCSV(ctx context.Context, w io.Writer, view string) error
	ExportXLSX(ctx context.Context, w io.Writer) error
}
