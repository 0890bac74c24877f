package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"nucdash/internal/dataprocessing"
)

// ScalerSheet is the workbook tab holding the fitted standardization
const ScalerSheet = "Scaler"

// WorkbookWriter writes both views and the scaler into one XLSX workbook
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger.With(slog.String("component", "xlsx_writer"))}
}

// WriteViews writes the workbook to out. Sheets are "Global", "Shell Closure" and
// "Scaler", in that order.
func (w *WorkbookWriter) WriteViews(ctx context.Context, out io.Writer, views *dataprocessing.Views) error {
	if views == nil {
		return fmt.Errorf("no views to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range []*dataprocessing.Table{views.Global(), views.Local()} {
		name := sheetName(t.Name())
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := writeTableSheet(ctx, f, name, t, bold); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(ScalerSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", ScalerSheet, err)
	}
	if err := writeScalerSheet(f, views.Scaler(), bold); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	w.logger.DebugContext(ctx, "workbook written",
		slog.Int("global_rows", views.Global().Len()),
		slog.Int("local_rows", views.Local().Len()))
	return nil
}

// WriteViewsFile writes the workbook to path atomically
func (w *WorkbookWriter) WriteViewsFile(ctx context.Context, path string, views *dataprocessing.Views) error {
	w.logger.InfoContext(ctx, "Writing XLSX file", slog.String("file_path", path))
	return writeAtomic(path, func(out io.Writer) error {
		return w.WriteViews(ctx, out, views)
	})
}

func writeTableSheet(ctx context.Context, f *excelize.File, sheet string, t *dataprocessing.Table, headerStyle int) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet %s: %w", sheet, err)
	}

	if err := sw.SetRow("A1", headerRow(t.Columns(), headerStyle)); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}

	fields := dataprocessing.Fields()
	for i, r := range t.Records() {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		row := make([]any, len(fields))
		for j, fld := range fields {
			row[j] = r.Value(fld)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return sw.Flush()
}

func writeScalerSheet(f *excelize.File, s *dataprocessing.StandardScaler, headerStyle int) error {
	sw, err := f.NewStreamWriter(ScalerSheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet %s: %w", ScalerSheet, err)
	}
	header := []string{"column", "mean", "variance", "scale", "samples"}
	if err := sw.SetRow("A1", headerRow(header, headerStyle)); err != nil {
		return err
	}
	for i, col := range s.Columns {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{col, nullable(s.Mean[i]), nullable(s.Var[i]), nullable(s.Scale[i]), s.NSamples[i]}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func headerRow(names []string, style int) []any {
	row := make([]any, len(names))
	for i, n := range names {
		row[i] = excelize.Cell{StyleID: style, Value: n}
	}
	return row
}
