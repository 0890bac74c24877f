package exporter

import (
	"fmt"
	"math"

	"nucdash/internal/config"
	"nucdash/internal/dataprocessing"
)

// Format is a download format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename returns the download name of a view in the format. XLSX always holds
// both views.
func Filename(view string, f Format) string {
	if f == FormatXLSX {
		return config.ViewsXLSXName
	}
	switch view {
	case dataprocessing.ViewGlobal:
		return config.GlobalCSVName
	case dataprocessing.ViewLocal:
		return config.LocalCSVName
	}
	return fmt.Sprintf("%s.csv", view)
}

// sheetName is the workbook tab holding a view, named like the dashboard tabs
func sheetName(view string) string {
	switch view {
	case dataprocessing.ViewLocal:
		return "Shell Closure"
	default:
		return "Global"
	}
}

// nullable maps non-finite numbers to nil so they become empty cells
func nullable(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
