package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "nucdash/internal/dataprocessing"

// HalfLifePolicy decides what happens to rows whose half-life cannot be log-transformed.
type HalfLifePolicy string

const (
	// HalfLifeFail aborts the pipeline with an InvalidValueError.
	HalfLifeFail HalfLifePolicy = "fail"
	// HalfLifeDrop removes the offending rows before the scaler is fitted.
	HalfLifeDrop HalfLifePolicy = "drop"
)

// Band is an inclusive neutron-number range.
type Band struct {
	Min int `json:"n_min"`
	Max int `json:"n_max"`
}

// Contains reports whether n lies in the band.
func (b Band) Contains(n int) bool { return n >= b.Min && n <= b.Max }

// ShellClosureBand is the N=20/N=28 region of the local view.
var ShellClosureBand = Band{Min: 18, Max: 30}

// Options configures a pipeline run.
type Options struct {
	Schema          Schema
	Delimiter       rune
	InvalidHalfLife HalfLifePolicy
	LocalBand       Band
	Logger          *slog.Logger
}

// DefaultOptions returns the options matching the published dashboard.
func DefaultOptions() Options {
	return Options{
		Schema:          DefaultSchema(),
		Delimiter:       ',',
		InvalidHalfLife: HalfLifeFail,
		LocalBand:       ShellClosureBand,
	}
}

// Views holds the two prepared tables and the scaler fitted on the full dataset.
type Views struct {
	global *Table
	local  *Table

	scaler      *StandardScaler
	band        Band
	source      SourceInfo
	droppedRows []int
	preparedAt  time.Time
}

// Global returns the standardized table of the full dataset.
func (v *Views) Global() *Table { return v.global }

// Local returns the rows of the global table inside the shell-closure band.
func (v *Views) Local() *Table { return v.local }

// Scaler returns a copy of the fitted scaler.
func (v *Views) Scaler() *StandardScaler { return v.scaler.Clone() }

// Band returns the neutron-number band of the local view.
func (v *Views) Band() Band { return v.band }

// Source describes the bytes the views were computed from.
func (v *Views) Source() SourceInfo { return v.source }

// DroppedRows lists the 1-based source rows removed by the HalfLifeDrop policy.
func (v *Views) DroppedRows() []int { return append([]int(nil), v.droppedRows...) }

// PreparedAt returns when the pipeline finished. It is not part of the table content.
func (v *Views) PreparedAt() time.Time { return v.preparedAt }

// View returns a table by name.
func (v *Views) View(name string) (*Table, bool) {
	switch name {
	case ViewGlobal:
		return v.global, true
	case ViewLocal:
		return v.local, true
	}
	return nil, false
}

// TransformRecord replays the fitted standardization on a raw row of the five
// features. Half-life is given in seconds and log-transformed first; +Inf marks a
// stable nuclide and is treated as missing.
func (v *Views) TransformRecord(raw [NumFeatures]float64) ([NumFeatures]float64, error) {
	var out [NumFeatures]float64
	switch hl := raw[FieldHalfLife]; {
	case math.IsNaN(hl):
	case math.IsInf(hl, 1):
		raw[FieldHalfLife] = math.NaN()
	case hl <= 0:
		return out, &InvalidValueError{Column: v.global.schema.Column(FieldHalfLife), Value: fmt.Sprint(hl), Reason: "half-life must be positive"}
	default:
		raw[FieldHalfLife] = math.Log(hl)
	}
	row, err := v.scaler.TransformRow(raw[:])
	if err != nil {
		return out, err
	}
	copy(out[:], row)
	return out, nil
}

// Pipeline prepares the global and local views from a source file.
type Pipeline struct {
	opts   Options
	logger *slog.Logger
	tracer trace.Tracer
}

// NewPipeline creates a pipeline. Zero-valued options fall back to DefaultOptions.
func NewPipeline(opts Options) *Pipeline {
	def := DefaultOptions()
	if opts.Schema.IndexColumn == "" && opts.Schema.Columns[0] == "" {
		opts.Schema = def.Schema
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = def.Delimiter
	}
	if opts.InvalidHalfLife == "" {
		opts.InvalidHalfLife = def.InvalidHalfLife
	}
	if opts.LocalBand == (Band{}) {
		opts.LocalBand = def.LocalBand
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		opts:   opts,
		logger: logger.With(slog.String("component", "pipeline")),
		tracer: otel.Tracer(instrumentationName),
	}
}

// Prepare runs the pipeline on the file at path with the given options.
func Prepare(ctx context.Context, path string, opts Options) (*Views, error) {
	return NewPipeline(opts).Run(ctx, path)
}

// Run reads the source file once and prepares both views.
func (p *Pipeline) Run(ctx context.Context, path string) (*Views, error) {
	var data []byte
	err := p.step(ctx, "load", func(span trace.Span) error {
		var err error
		data, err = readSource(path)
		span.SetAttributes(attribute.String("source.path", path), attribute.Int("source.bytes", len(data)))
		return err
	})
	if err != nil {
		p.logger.Error("failed to load source", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}
	return p.PrepareBytes(ctx, path, data)
}

// PrepareBytes prepares both views from the contents of a source file. path is only
// used for reporting.
func (p *Pipeline) PrepareBytes(ctx context.Context, path string, data []byte) (*Views, error) {
	ctx, span := p.tracer.Start(ctx, "dataprocessing.prepare",
		trace.WithAttributes(attribute.String("source.path", path)))
	defer span.End()

	start := time.Now()
	views, err := p.prepare(ctx, path, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Error("pipeline failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	p.logger.Info("pipeline completed",
		slog.String("path", path),
		slog.Int("global_rows", views.global.Len()),
		slog.Int("local_rows", views.local.Len()),
		slog.Int("dropped_rows", len(views.droppedRows)),
		slog.Duration("duration", time.Since(start)))
	return views, nil
}

// staged is a row after column selection and before standardization.
type staged struct {
	features [NumFeatures]float64
	record   Record
}

func (p *Pipeline) prepare(ctx context.Context, path string, data []byte) (*Views, error) {
	schema := p.opts.Schema

	var (
		f    *frame
		info SourceInfo
	)
	err := p.step(ctx, "parse", func(span trace.Span) error {
		var err error
		f, info, err = parseFrame(path, data, p.opts.Delimiter)
		if err == nil {
			span.SetAttributes(attribute.Int("rows", len(f.rows)), attribute.Int("columns", len(f.header)))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.step(ctx, "drop_index", func(trace.Span) error {
		pos, ok := f.indexColumnPosition(schema.IndexColumn)
		if !ok {
			return &MissingColumnError{Column: schema.IndexColumn, Step: "index removal"}
		}
		f = f.dropPositions(map[int]bool{pos: true})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.step(ctx, "drop_uncertainty", func(trace.Span) error {
		var err error
		f, err = f.dropColumns("uncertainty removal", schema.UncertaintyColumns...)
		return err
	})
	if err != nil {
		return nil, err
	}

	var rows []staged
	err = p.step(ctx, "select", func(trace.Span) error {
		var err error
		rows, err = selectRows(schema, f)
		return err
	})
	if err != nil {
		return nil, err
	}

	var dropped []int
	err = p.step(ctx, "log_half_life", func(span trace.Span) error {
		var err error
		rows, dropped, err = p.logHalfLife(schema, rows)
		span.SetAttributes(attribute.Int("dropped", len(dropped)))
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	features := make([]string, 0, NumFeatures)
	for _, fld := range FeatureFields() {
		features = append(features, schema.Column(fld))
	}
	scaler := NewStandardScaler(features...)

	var scaled [][]float64
	err = p.step(ctx, "standardize", func(trace.Span) error {
		X := make([][]float64, len(rows))
		for i := range rows {
			X[i] = rows[i].features[:]
		}
		var err error
		scaled, err = scaler.FitTransform(X)
		return err
	})
	if err != nil {
		return nil, err
	}

	var global *Table
	err = p.step(ctx, "reattach", func(trace.Span) error {
		records := make([]Record, len(rows))
		for i, r := range rows {
			rec := r.record
			copy(rec.Features[:], scaled[i])
			records[i] = rec
		}
		global = newTable(ViewGlobal, schema, records)
		return nil
	})
	if err != nil {
		return nil, err
	}

	band := p.opts.LocalBand
	var local *Table
	err = p.step(ctx, "filter_local", func(span trace.Span) error {
		local = global.Filter(ViewLocal, func(r Record) bool { return band.Contains(r.N) })
		span.SetAttributes(attribute.Int("rows", local.Len()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Views{
		global:      global,
		local:       local,
		scaler:      scaler,
		band:        band,
		source:      info,
		droppedRows: dropped,
		preparedAt:  time.Now(),
	}, nil
}

// selectRows validates the header against the schema once, then converts every row
// into typed values.
func selectRows(schema Schema, f *frame) ([]staged, error) {
	idx, err := schema.bind(f.header)
	if err != nil {
		return nil, err
	}

	out := make([]staged, len(f.rows))
	for i, row := range f.rows {
		line := i + 1
		cell := func(fld Field) string { return row[idx[fld]] }

		var s staged
		for _, fld := range FeatureFields() {
			v, err := parseFeature(schema.Column(fld), line, cell(fld), fld == FieldHalfLife)
			if err != nil {
				return nil, err
			}
			s.features[fld] = v
		}

		ints := []struct {
			fld Field
			dst *int
		}{
			{FieldZ, &s.record.Z},
			{FieldN, &s.record.N},
			{FieldA, &s.record.A},
			{FieldNMinusZ, &s.record.NMinusZ},
		}
		for _, c := range ints {
			n, err := parseCount(schema.Column(c.fld), line, cell(c.fld))
			if err != nil {
				return nil, err
			}
			*c.dst = n
		}

		radioactive, err := parseFlag(schema.Column(FieldRadioactive), line, cell(FieldRadioactive))
		if err != nil {
			return nil, err
		}

		s.record.SpinParity = cell(FieldSpinParity)
		s.record.Decay = cell(FieldDecay)
		s.record.Radioactive = radioactive
		s.record.SourceRow = line
		out[i] = s
	}
	return out, nil
}

// logHalfLife replaces the half-life feature with its natural log. Missing values stay
// missing and +Inf (a stable nuclide) becomes missing too. Non-positive values,
// -Inf included, fail or are dropped depending on the policy.
func (p *Pipeline) logHalfLife(schema Schema, rows []staged) ([]staged, []int, error) {
	column := schema.Column(FieldHalfLife)
	out := rows[:0:0]
	var dropped []int

	for _, r := range rows {
		v := r.features[FieldHalfLife]
		if math.IsNaN(v) {
			out = append(out, r)
			continue
		}
		if math.IsInf(v, 1) {
			r.features[FieldHalfLife] = math.NaN()
			out = append(out, r)
			continue
		}
		if v <= 0 {
			if p.opts.InvalidHalfLife == HalfLifeDrop {
				dropped = append(dropped, r.record.SourceRow)
				p.logger.Warn("dropping row with non-positive half-life",
					slog.Int("row", r.record.SourceRow),
					slog.Float64("value", v))
				continue
			}
			return nil, nil, &InvalidValueError{
				Column: column,
				Row:    r.record.SourceRow,
				Value:  strconv.FormatFloat(v, 'g', -1, 64),
				Reason: "half-life must be positive",
			}
		}
		r.features[FieldHalfLife] = math.Log(v)
		out = append(out, r)
	}
	return out, dropped, nil
}

// step runs fn inside a child span named after the pipeline step.
func (p *Pipeline) step(ctx context.Context, name string, fn func(trace.Span) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, span := p.tracer.Start(ctx, "dataprocessing."+name)
	defer span.End()

	start := time.Now()
	err := fn(span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	p.logger.Debug("pipeline step completed",
		slog.String("step", name),
		slog.Duration("duration", time.Since(start)))
	return nil
}
