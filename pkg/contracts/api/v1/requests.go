// Package api contains API contract definitions for the nucdash HTTP API.
// Version v1 represents the current stable API version.
package api

// ViewRequest selects a prepared view.
type ViewRequest struct {
	View string `json:"view" validate:"required,oneof=global local"`
}

// RowsRequest selects a window of rows of a prepared view.
type RowsRequest struct {
	View   string `json:"view" validate:"required,oneof=global local"`
	Offset int    `json:"offset" validate:"min=0"`
	Limit  int    `json:"limit" validate:"min=1,max=5000"`
}

// ColumnRequest selects one column of a prepared view by verbatim name or field id.
type ColumnRequest struct {
	View   string `json:"view" validate:"required,oneof=global local"`
	Column string `json:"column" validate:"required,max=64"`
}

// ChartImageRequest selects a rendered chart image.
type ChartImageRequest struct {
	ID     string `json:"id" validate:"required,max=64"`
	Format string `json:"format" validate:"required,oneof=png svg"`
}

