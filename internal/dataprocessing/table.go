package dataprocessing

import (
	"math"
	"strconv"
)

// View names of the two prepared tables.
const (
	ViewGlobal = "global"
	ViewLocal  = "local"
)

// Record is one prepared nuclide row. Features hold standardized values indexed by
// feature Field; NaN marks a value that was missing in the source.
type Record struct {
	Features    [NumFeatures]float64
	Z           int
	N           int
	A           int
	NMinusZ     int
	SpinParity  string
	Decay       string
	Radioactive bool
	// SourceRow is the 1-based data row of the source file.
	SourceRow int
}

// Feature returns the standardized value of a feature field.
func (r Record) Feature(f Field) float64 {
	if !f.IsFeature() {
		return math.NaN()
	}
	return r.Features[f]
}

// Number returns the numeric value of a field. String fields return NaN.
func (r Record) Number(f Field) float64 {
	switch f {
	case FieldZ:
		return float64(r.Z)
	case FieldN:
		return float64(r.N)
	case FieldA:
		return float64(r.A)
	case FieldNMinusZ:
		return float64(r.NMinusZ)
	case FieldRadioactive:
		if r.Radioactive {
			return 1
		}
		return 0
	}
	return r.Feature(f)
}

// Value returns a JSON-friendly value: float64 or nil for features, int for counts and
// the flag, string for spin/parity and decay mode.
func (r Record) Value(f Field) any {
	switch f {
	case FieldZ:
		return r.Z
	case FieldN:
		return r.N
	case FieldA:
		return r.A
	case FieldNMinusZ:
		return r.NMinusZ
	case FieldSpinParity:
		return r.SpinParity
	case FieldDecay:
		return r.Decay
	case FieldRadioactive:
		if r.Radioactive {
			return 1
		}
		return 0
	}
	v := r.Feature(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// Text formats a field the way it is written to CSV. Missing features are empty.
func (r Record) Text(f Field) string {
	switch v := r.Value(f).(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	}
	return ""
}

// Label returns a categorical label for a field, used to color or group charts.
func (r Record) Label(f Field) string {
	return r.Text(f)
}

// Table is an immutable, row-ordered prepared view.
type Table struct {
	name    string
	schema  Schema
	records []Record
}

func newTable(name string, schema Schema, records []Record) *Table {
	return &Table{name: name, schema: schema, records: records}
}

// Name returns the view name ("global" or "local").
func (t *Table) Name() string { return t.name }

// Schema returns the schema the table was prepared with.
func (t *Table) Schema() Schema { return t.schema }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.records) }

// Columns returns the verbatim output column names.
func (t *Table) Columns() []string { return t.schema.OutputColumns() }

// Record returns a copy of row i.
func (t *Table) Record(i int) Record { return t.records[i] }

// Records returns a copy of all rows.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Slice returns a copy of rows [offset, offset+limit), clamped to the table.
func (t *Table) Slice(offset, limit int) []Record {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.records) {
		offset = len(t.records)
	}
	end := len(t.records)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]Record, end-offset)
	copy(out, t.records[offset:end])
	return out
}

// Floats returns a numeric column. String fields yield NaN.
func (t *Table) Floats(f Field) []float64 {
	out := make([]float64, len(t.records))
	for i, r := range t.records {
		out[i] = r.Number(f)
	}
	return out
}

// Ints returns an integer passthrough column.
func (t *Table) Ints(f Field) []int {
	out := make([]int, len(t.records))
	for i, r := range t.records {
		out[i] = int(r.Number(f))
	}
	return out
}

// Values returns a column as JSON-friendly values.
func (t *Table) Values(f Field) []any {
	out := make([]any, len(t.records))
	for i, r := range t.records {
		out[i] = r.Value(f)
	}
	return out
}

// Filter returns a new table holding the rows for which keep returns true, in order.
func (t *Table) Filter(name string, keep func(Record) bool) *Table {
	out := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return newTable(name, t.schema, out)
}

// Strings returns the header followed by every row, formatted for CSV output.
func (t *Table) Strings() [][]string {
	fields := Fields()
	out := make([][]string, 0, len(t.records)+1)
	out = append(out, t.Columns())
	for _, r := range t.records {
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = r.Text(f)
		}
		out = append(out, row)
	}
	return out
}

// Maps returns every row keyed by verbatim column name.
func (t *Table) Maps() []map[string]any {
	return t.MapRecords(t.records)
}

// MapRecords keys the given rows by this table's verbatim column names.
func (t *Table) MapRecords(records []Record) []map[string]any {
	fields := Fields()
	out := make([]map[string]any, len(records))
	for i, r := range records {
		m := make(map[string]any, len(fields))
		for _, f := range fields {
			m[t.schema.Column(f)] = r.Value(f)
		}
		out[i] = m
	}
	return out
}
