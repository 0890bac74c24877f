// Package exporter writes prepared views to disk or to an HTTP response.
//
// CSVWriter writes one view as CSV with the verbatim column names, so the file
// reads back with the same header the pipeline produced. WorkbookWriter writes both
// views and the fitted scaler into one XLSX workbook. Exporter ties both to the
// configured exports directory.
//
// Example usage:
//
//	exp := exporter.New(paths, logger)
//	files, err := exp.ExportAll(ctx, views)
package exporter
