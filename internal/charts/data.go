package charts

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"nucdash/internal/dataprocessing"
	"nucdash/pkg/contracts/domain"
)

// ErrUnknownView is returned when a chart refers to a view that was not prepared.
var ErrUnknownView = errors.New("unknown view")

// FieldError reports a chart encoding that names a field the schema does not know.
type FieldError struct {
	Chart string
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("chart %q: unknown field %q", e.Chart, e.Field)
}

func resolve(spec domain.ChartSpec, schema dataprocessing.Schema, name string) (dataprocessing.Field, error) {
	f, ok := schema.FieldByName(name)
	if !ok {
		return 0, &FieldError{Chart: spec.ID, Field: name}
	}
	return f, nil
}

// Data computes the values behind a chart from the prepared views. Rows whose plotted
// values are missing are left out and counted in Skipped.
func Data(spec domain.ChartSpec, views *dataprocessing.Views) (*domain.ChartData, error) {
	if views == nil {
		return nil, dataprocessing.ErrEmptyDataset
	}
	t, ok := views.View(spec.View)
	if !ok || t == nil {
		return nil, fmt.Errorf("chart %q: %w %q", spec.ID, ErrUnknownView, spec.View)
	}

	switch spec.Kind {
	case domain.ChartScatter:
		return scatterData(spec, t)
	case domain.ChartHistogram:
		return histogramData(spec, t)
	case domain.ChartDistribution:
		return distributionData(spec, t)
	}
	return nil, fmt.Errorf("chart %q: unsupported kind %q", spec.ID, spec.Kind)
}

func scatterData(spec domain.ChartSpec, t *dataprocessing.Table) (*domain.ChartData, error) {
	schema := t.Schema()
	xf, err := resolve(spec, schema, spec.X)
	if err != nil {
		return nil, err
	}
	yf, err := resolve(spec, schema, spec.Y)
	if err != nil {
		return nil, err
	}
	var cf *dataprocessing.Field
	if spec.Color != "" {
		f, err := resolve(spec, schema, spec.Color)
		if err != nil {
			return nil, err
		}
		cf = &f
	}
	tips := make([]dataprocessing.Field, 0, len(spec.Tooltip))
	for _, name := range spec.Tooltip {
		f, err := resolve(spec, schema, name)
		if err != nil {
			return nil, err
		}
		tips = append(tips, f)
	}

	out := &domain.ChartData{Chart: spec, Points: make([]domain.ScatterPoint, 0, t.Len())}
	for _, r := range t.Records() {
		x, y := r.Number(xf), r.Number(yf)
		if !finite(x) || !finite(y) {
			out.Skipped++
			continue
		}
		p := domain.ScatterPoint{X: x, Y: y}
		if cf != nil {
			p.Color = r.Label(*cf)
		}
		if len(tips) > 0 {
			p.Tooltip = make(map[string]any, len(tips))
			for _, f := range tips {
				p.Tooltip[schema.Column(f)] = r.Value(f)
			}
		}
		out.Points = append(out.Points, p)
	}
	return out, nil
}

// groupValues splits the finite values of field v by the label of field g.
func groupValues(t *dataprocessing.Table, v, g dataprocessing.Field) (map[string][]float64, int) {
	groups := make(map[string][]float64)
	skipped := 0
	for _, r := range t.Records() {
		x := r.Number(v)
		if !finite(x) {
			skipped++
			continue
		}
		label := r.Label(g)
		groups[label] = append(groups[label], x)
	}
	return groups, skipped
}

func histogramData(spec domain.ChartSpec, t *dataprocessing.Table) (*domain.ChartData, error) {
	schema := t.Schema()
	vf, err := resolve(spec, schema, spec.X)
	if err != nil {
		return nil, err
	}
	gf, err := resolve(spec, schema, spec.Color)
	if err != nil {
		return nil, err
	}

	groups, skipped := groupValues(t, vf, gf)
	out := &domain.ChartData{Chart: spec, Skipped: skipped}
	if len(groups) == 0 {
		return out, nil
	}

	var all []float64
	for _, vals := range groups {
		all = append(all, vals...)
	}
	dividers := binEdges(floats.Min(all), floats.Max(all), spec.Bins)

	for _, label := range sortedLabels(groups) {
		vals := groups[label]
		sort.Float64s(vals)
		counts := stat.Histogram(nil, dividers, vals, nil)
		series := domain.HistogramSeries{Label: label, Bins: make([]domain.HistogramBin, len(counts))}
		for i, c := range counts {
			series.Bins[i] = domain.HistogramBin{Low: dividers[i], High: dividers[i+1], Count: int(c)}
		}
		out.Series = append(out.Series, series)
	}
	return out, nil
}

// binEdges returns n+1 evenly spaced dividers covering [lo, hi]. The last divider is
// nudged up so that hi falls inside the final bin.
func binEdges(lo, hi float64, n int) []float64 {
	if n <= 0 {
		n = histogramBins
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := floats.Span(make([]float64, n+1), lo, hi)
	edges[n] = math.Nextafter(hi, math.Inf(1))
	return edges
}

func distributionData(spec domain.ChartSpec, t *dataprocessing.Table) (*domain.ChartData, error) {
	schema := t.Schema()
	gf, err := resolve(spec, schema, spec.X)
	if err != nil {
		return nil, err
	}
	vf, err := resolve(spec, schema, spec.Y)
	if err != nil {
		return nil, err
	}

	groups, skipped := groupValues(t, vf, gf)
	out := &domain.ChartData{Chart: spec, Skipped: skipped}
	for _, label := range sortedLabels(groups) {
		vals := groups[label]
		sort.Float64s(vals)
		out.Groups = append(out.Groups, domain.DistributionGroup{
			Label:  label,
			Count:  len(vals),
			Min:    vals[0],
			Q1:     stat.Quantile(0.25, stat.LinInterp, vals, nil),
			Median: stat.Quantile(0.5, stat.LinInterp, vals, nil),
			Q3:     stat.Quantile(0.75, stat.LinInterp, vals, nil),
			Max:    vals[len(vals)-1],
		})
	}
	return out, nil
}

// sortedLabels orders category labels numerically when every label is a number and
// lexically otherwise.
func sortedLabels[V any](groups map[string]V) []string {
	labels := make([]string, 0, len(groups))
	numeric := true
	for l := range groups {
		labels = append(labels, l)
		if _, err := strconv.ParseFloat(l, 64); err != nil {
			numeric = false
		}
	}
	if numeric {
		sort.Slice(labels, func(i, j int) bool {
			a, _ := strconv.ParseFloat(labels[i], 64)
			b, _ := strconv.ParseFloat(labels[j], 64)
			return a < b
		})
		return labels
	}
	sort.Strings(labels)
	return labels
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
