package charts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"nucdash/internal/dataprocessing"
	"nucdash/pkg/contracts/domain"
)

// Image formats
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Formats lists every supported image format.
var Formats = []string{FormatPNG, FormatSVG}

// ErrUnsupportedFormat is returned for image formats other than png and svg.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ContentType returns the media type of an image format.
func ContentType(format string) string {
	switch format {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

// Renderer draws static chart images.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer creates a renderer producing images of the given size in inches.
// Non-positive sizes fall back to 8x5.
func NewRenderer(widthInch, heightInch float64) *Renderer {
	if widthInch <= 0 {
		widthInch = 8
	}
	if heightInch <= 0 {
		heightInch = 5
	}
	return &Renderer{Width: vg.Length(widthInch) * vg.Inch, Height: vg.Length(heightInch) * vg.Inch}
}

// Render draws a chart of the prepared views as png or svg.
func (r *Renderer) Render(ctx context.Context, spec domain.ChartSpec, views *dataprocessing.Views, format string) ([]byte, error) {
	if format != FormatPNG && format != FormatSVG {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := Data(spec, views)
	if err != nil {
		return nil, err
	}
	p, err := r.Plot(data)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", spec.ID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wt, err := p.WriterTo(r.Width, r.Height, format)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", spec.ID, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart %q: write %s: %w", spec.ID, format, err)
	}
	return buf.Bytes(), nil
}

// Plot builds the plot of computed chart data.
func (r *Renderer) Plot(data *domain.ChartData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = data.Chart.Title
	p.X.Label.Text = data.Chart.XLabel
	p.Y.Label.Text = data.Chart.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	var err error
	switch data.Chart.Kind {
	case domain.ChartScatter:
		err = addScatter(p, data)
	case domain.ChartHistogram:
		err = addHistogram(p, data)
	case domain.ChartDistribution:
		err = addDistribution(p, data)
	default:
		err = fmt.Errorf("unsupported kind %q", data.Chart.Kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func addScatter(p *plot.Plot, data *domain.ChartData) error {
	groups := make(map[string]plotter.XYs)
	for _, pt := range data.Points {
		groups[pt.Color] = append(groups[pt.Color], plotter.XY{X: pt.X, Y: pt.Y})
	}

	for i, label := range sortedLabels(groups) {
		s, err := plotter.NewScatter(groups[label])
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = plotutil.Shape(i / len(plotutil.DefaultColors))
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(s)
		if label != "" {
			p.Legend.Add(label, s)
		}
	}
	return nil
}

func addHistogram(p *plot.Plot, data *domain.ChartData) error {
	for i, series := range data.Series {
		if len(series.Bins) == 0 {
			continue
		}
		h := histogramPlotter(series, i)
		p.Add(h)
		p.Legend.Add(series.Label, h)
	}
	return nil
}

// histogramPlotter converts one precomputed series. Width is the width of a single
// bin; every series shares the same edges.
func histogramPlotter(series domain.HistogramSeries, i int) *plotter.Histogram {
	bins := make([]plotter.HistogramBin, len(series.Bins))
	for j, b := range series.Bins {
		bins[j] = plotter.HistogramBin{Min: b.Low, Max: b.High, Weight: float64(b.Count)}
	}
	return &plotter.Histogram{
		Bins:      bins,
		Width:     series.Bins[0].High - series.Bins[0].Low,
		FillColor: translucent(plotutil.Color(i), 0x90),
		LineStyle: draw.LineStyle{Color: plotutil.Color(i), Width: vg.Points(0.5)},
	}
}

func addDistribution(p *plot.Plot, data *domain.ChartData) error {
	const width = 18
	labels := make([]string, 0, len(data.Groups))
	for i, g := range data.Groups {
		if g.Count == 0 {
			continue
		}
		// The five-number summary is replayed as a value set with the same quartiles.
		values := plotter.Values{g.Min, g.Q1, g.Median, g.Q3, g.Max}
		b, err := plotter.NewBoxPlot(vg.Points(width), float64(len(labels)), values)
		if err != nil {
			return err
		}
		b.FillColor = translucent(plotutil.Color(i), 0x80)
		p.Add(b)
		labels = append(labels, g.Label)
	}
	if len(labels) > 0 {
		p.NominalX(labels...)
	}
	return nil
}

func translucent(c color.Color, alpha uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
