package domain

import "time"

// NeutronBand is the inclusive neutron-number range of the local view.
type NeutronBand struct {
	Min int `json:"n_min"`
	Max int `json:"n_max"`
}

// ViewInfo describes one prepared view.
type ViewInfo struct {
	Name    string       `json:"name"`
	Title   string       `json:"title"`
	Rows    int          `json:"rows"`
	Columns []string     `json:"columns"`
	Band    *NeutronBand `json:"band,omitempty"`
}

// RowsPage is a window of rows of a prepared view, keyed by verbatim column name.
// Missing feature values are null.
type RowsPage struct {
	View    string           `json:"view"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
	Total   int              `json:"total"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// ColumnData holds every value of one column of a prepared view.
type ColumnData struct {
	View   string `json:"view"`
	Column string `json:"column"`
	Field  string `json:"field"`
	Values []any  `json:"values"`
}

// FeatureScaling holds the fitted standardization of one feature. Mean and Variance
// are null when the column had no values.
type FeatureScaling struct {
	Column         string   `json:"column"`
	Field          string   `json:"field"`
	Mean           *float64 `json:"mean"`
	Variance       *float64 `json:"variance"`
	Scale          float64  `json:"scale"`
	Samples        int      `json:"samples"`
	LogTransformed bool     `json:"log_transformed"`
}

// ScalerParams is the fitted standardization shared by both views.
type ScalerParams struct {
	Features []FeatureScaling `json:"features"`
}

// DatasetInfo describes the source the views were prepared from.
type DatasetInfo struct {
	Path        string    `json:"path"`
	Bytes       int       `json:"bytes"`
	SHA256      string    `json:"sha256"`
	SourceRows  int       `json:"source_rows"`
	DroppedRows []int     `json:"dropped_rows,omitempty"`
	PreparedAt  time.Time `json:"prepared_at"`
}
