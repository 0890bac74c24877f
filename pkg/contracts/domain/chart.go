package domain

// ChartKind is the visual encoding of a chart.
type ChartKind string

const (
	// ChartScatter plots one field against the charge radius, one point per nuclide.
	ChartScatter ChartKind = "scatter"
	// ChartHistogram counts charge radii, split by the radioactivity flag.
	ChartHistogram ChartKind = "histogram"
	// ChartDistribution summarizes charge radii per decay mode.
	ChartDistribution ChartKind = "distribution"
)

// ChartSpec declares one chart of the dashboard. Field names are stable field
// identifiers such as "a" or "charge_radius".
type ChartSpec struct {
	ID           string    `json:"id"`
	View         string    `json:"view"`
	Kind         ChartKind `json:"kind"`
	Title        string    `json:"title"`
	X            string    `json:"x"`
	Y            string    `json:"y,omitempty"`
	Color        string    `json:"color,omitempty"`
	ColorNominal bool      `json:"color_nominal,omitempty"`
	Tooltip      []string  `json:"tooltip,omitempty"`
	XLabel       string    `json:"x_label"`
	YLabel       string    `json:"y_label"`
	Caption      string    `json:"caption"`
	Bins         int       `json:"bins,omitempty"`
}

// Section is a titled block of a tab holding one chart. Collapsed sections are shown
// as expanders.
type Section struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text,omitempty"`
	Collapsed bool      `json:"collapsed"`
	Chart     ChartSpec `json:"chart"`
}

// Tab is one thematic view of the dashboard.
type Tab struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	View     string    `json:"view"`
	Intro    []string  `json:"intro"`
	Formula  string    `json:"formula,omitempty"`
	Sections []Section `json:"sections"`
	Outro    string    `json:"outro"`
}

// Catalog is the complete dashboard layout.
type Catalog struct {
	Title string   `json:"title"`
	Intro []string `json:"intro"`
	Tabs  []Tab    `json:"tabs"`
}

// Charts returns every chart in display order.
func (c Catalog) Charts() []ChartSpec {
	var out []ChartSpec
	for _, t := range c.Tabs {
		for _, s := range t.Sections {
			out = append(out, s.Chart)
		}
	}
	return out
}

// Chart looks a chart up by ID.
func (c Catalog) Chart(id string) (ChartSpec, bool) {
	for _, t := range c.Tabs {
		for _, s := range t.Sections {
			if s.Chart.ID == id {
				return s.Chart, true
			}
		}
	}
	return ChartSpec{}, false
}

// ScatterPoint is one nuclide of a scatter chart.
type ScatterPoint struct {
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Color   string         `json:"color,omitempty"`
	Tooltip map[string]any `json:"tooltip,omitempty"`
}

// HistogramBin is one bin of a histogram series.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// HistogramSeries is the histogram of one category.
type HistogramSeries struct {
	Label string         `json:"label"`
	Bins  []HistogramBin `json:"bins"`
}

// DistributionGroup is the five-number summary of one category.
type DistributionGroup struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// ChartData is the data behind an interactive chart. Only the member matching the
// chart kind is set. Skipped counts rows left out because a plotted value was missing.
type ChartData struct {
	Chart   ChartSpec           `json:"chart"`
	Points  []ScatterPoint      `json:"points,omitempty"`
	Series  []HistogramSeries   `json:"series,omitempty"`
	Groups  []DistributionGroup `json:"groups,omitempty"`
	Skipped int                 `json:"skipped"`
}
