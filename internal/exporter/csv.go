package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"nucdash/internal/dataprocessing"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes prepared views as CSV
type CSVWriter struct {
	// BOMPrefix adds a UTF-8 BOM so spreadsheet tools detect the encoding
	BOMPrefix bool
	logger    *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_writer"))}
}

// WriteTable streams the header and every row of t. Missing features are written
// as empty cells.
func (w *CSVWriter) WriteTable(ctx context.Context, out io.Writer, t *dataprocessing.Table) error {
	if t == nil {
		return fmt.Errorf("no table to write")
	}
	if w.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(out)
	for i, record := range t.Strings() {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTableFile writes t to path. The file is written next to its final name and
// renamed into place, so readers never see a partial export.
func (w *CSVWriter) WriteTableFile(ctx context.Context, path string, t *dataprocessing.Table) error {
	w.logger.InfoContext(ctx, "Writing CSV file",
		slog.String("view", t.Name()),
		slog.String("file_path", path),
		slog.Int("record_count", t.Len()))

	return writeAtomic(path, func(f io.Writer) error {
		return w.WriteTable(ctx, f, t)
	})
}

func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
