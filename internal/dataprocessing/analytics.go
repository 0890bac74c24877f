package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Statistic is one named descriptive statistic. Value is nil when it is not finite.
type Statistic struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// ColumnSummary describes one numeric column of a prepared view.
type ColumnSummary struct {
	Column  string      `json:"column"`
	Field   string      `json:"field"`
	Count   int         `json:"count"`
	Missing int         `json:"missing"`
	Stats   []Statistic `json:"stats"`
}

// CategoryCount is the number of rows holding one categorical value.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Summary is the descriptive summary of a prepared view.
type Summary struct {
	View        string          `json:"view"`
	Rows        int             `json:"rows"`
	Columns     []ColumnSummary `json:"columns"`
	Decay       []CategoryCount `json:"decay"`
	Radioactive int             `json:"radioactive"`
}

// Summarizer computes descriptive statistics of prepared views.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer. A nil logger falls back to slog.Default.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger.With(slog.String("component", "summarizer"))}
}

// Summarize describes every numeric column of the table. Missing cells are excluded
// per column, so a column's statistics never turn NaN because of another column.
func (s *Summarizer) Summarize(ctx context.Context, t *Table) (*Summary, error) {
	if t == nil {
		return nil, ErrEmptyDataset
	}

	summary := &Summary{
		View:    t.Name(),
		Rows:    t.Len(),
		Columns: make([]ColumnSummary, 0, numFields),
	}

	for _, f := range Fields() {
		if f == FieldSpinParity || f == FieldDecay {
			continue
		}
		cs, err := describeColumn(t.Schema().Column(f), f, t.Floats(f))
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to describe column",
				slog.String("view", t.Name()),
				slog.String("column", t.Schema().Column(f)),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("describe %s: %w", f, err)
		}
		summary.Columns = append(summary.Columns, cs)
	}

	counts := make(map[string]int)
	for _, r := range t.records {
		counts[r.Decay]++
		if r.Radioactive {
			summary.Radioactive++
		}
	}
	for v, n := range counts {
		summary.Decay = append(summary.Decay, CategoryCount{Value: v, Count: n})
	}
	sort.Slice(summary.Decay, func(i, j int) bool {
		if summary.Decay[i].Count != summary.Decay[j].Count {
			return summary.Decay[i].Count > summary.Decay[j].Count
		}
		return summary.Decay[i].Value < summary.Decay[j].Value
	})

	s.logger.DebugContext(ctx, "view summarized",
		slog.String("view", t.Name()),
		slog.Int("rows", summary.Rows))
	return summary, nil
}

// describeColumn runs a single-column gota Describe over the present values.
func describeColumn(column string, f Field, values []float64) (ColumnSummary, error) {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	cs := ColumnSummary{
		Column:  column,
		Field:   f.String(),
		Count:   len(present),
		Missing: len(values) - len(present),
	}
	if len(present) == 0 {
		return cs, nil
	}

	df := dataframe.New(series.New(present, series.Float, column))
	if df.Err != nil {
		return cs, df.Err
	}
	desc := df.Describe()
	if desc.Err != nil {
		return cs, desc.Err
	}

	labels := desc.Col("column").Records()
	stats := desc.Col(column).Float()
	cs.Stats = make([]Statistic, len(labels))
	for i, name := range labels {
		cs.Stats[i] = Statistic{Name: name, Value: finite(stats[i])}
	}
	return cs, nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
