package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/irislab/internal/analysis"
	"github.com/KaramelBytes/irislab/internal/dataset"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart file names inside Charts.Dir.
const (
	LineFile    = "line_cumulative_sepal_length.png"
	BarFile     = "bar_avg_petal_length_by_species.png"
	HistFile    = "hist_sepal_length.png"
	ScatterFile = "scatter_sepal_vs_petal.png"
)

// SpeciesColors is the fixed scatter palette. Levels not listed here take the
// chart's default series color.
var SpeciesColors = map[string]drawing.Color{
	"setosa":     drawing.ColorFromHex("1f77b4"),
	"versicolor": drawing.ColorFromHex("ff7f0e"),
	"virginica":  drawing.ColorFromHex("2ca02c"),
}

var (
	primary = drawing.ColorFromHex("1f77b4")
	marker  = drawing.ColorFromHex("d62728")
)

// Charts renders PNG charts into Dir.
type Charts struct {
	Dir    string
	Width  int
	Height int
	DPI    float64
	Bins   int
}

// LineCumulativeMean plots the expanding mean of sepal_length over record order.
func (c *Charts) LineCumulativeMean(t *dataset.Table) (string, error) {
	col := t.Column(dataset.SepalLength)
	if col == nil {
		return "", &dataset.MissingColumnError{Column: dataset.SepalLength}
	}
	ys := analysis.CumulativeMean(col.Values)
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	ch := c.base("Cumulative Mean of Sepal Length (sample order)")
	ch.XAxis = chart.XAxis{Name: "Sample index (ordered)"}
	ch.YAxis = chart.YAxis{Name: "Cumulative mean sepal length (cm)"}
	ch.Series = []chart.Series{
		chart.ContinuousSeries{
			Name:    "Cumulative mean sepal_length",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: primary,
				StrokeWidth: 1,
				DotColor:    primary,
				DotWidth:    1.5,
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return c.save(&ch, LineFile)
}

// BarMeanByGroup plots mean petal_length per species, bars sorted descending
// and annotated with their value.
func (c *Charts) BarMeanByGroup(t *dataset.Table) (string, error) {
	means, err := analysis.GroupColumnMean(t, dataset.PetalLength)
	if err != nil {
		return "", err
	}
	if len(means) == 0 {
		return "", fmt.Errorf("bar chart: no species groups")
	}
	xs := make([]float64, len(means))
	ys := make([]float64, len(means))
	ticks := make([]chart.Tick, len(means))
	notes := make([]chart.Value2, len(means))
	top := 0.0
	for i, m := range means {
		xs[i] = float64(i)
		ys[i] = m.Value
		ticks[i] = chart.Tick{Value: float64(i), Label: m.Level}
		notes[i] = chart.Value2{XValue: float64(i), YValue: m.Value, Label: fmt.Sprintf("%.2f", m.Value)}
		if m.Value > top {
			top = m.Value
		}
	}
	ch := c.base("Average Petal Length by Species")
	ch.XAxis = chart.XAxis{
		Name:  "Species",
		Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(means)) - 0.5},
		Ticks: ticks,
	}
	ch.YAxis = chart.YAxis{
		Name:  "Mean petal length (cm)",
		Range: &chart.ContinuousRange{Min: 0, Max: top * 1.15},
	}
	ch.Series = []chart.Series{
		chart.HistogramSeries{
			Name:        "mean petal_length",
			Style:       chart.Style{FillColor: primary, StrokeColor: primary, StrokeWidth: 1},
			InnerSeries: chart.ContinuousSeries{XValues: xs, YValues: ys},
		},
		chart.AnnotationSeries{Annotations: notes},
	}
	return c.save(&ch, BarFile)
}

// Histogram plots the sepal_length distribution over Bins buckets with a
// dashed marker at the overall mean.
func (c *Charts) Histogram(t *dataset.Table) (string, error) {
	col := t.Column(dataset.SepalLength)
	if col == nil {
		return "", &dataset.MissingColumnError{Column: dataset.SepalLength}
	}
	bins, err := analysis.Histogram(col.Values, c.Bins)
	if err != nil {
		return "", err
	}
	xs := make([]float64, len(bins))
	ys := make([]float64, len(bins))
	peak := 0.0
	for i, b := range bins {
		xs[i] = (b.Lo + b.Hi) / 2
		ys[i] = float64(b.Count)
		if ys[i] > peak {
			peak = ys[i]
		}
	}
	avg := analysis.CumulativeMean(col.Values)
	mean := avg[len(avg)-1]

	ch := c.base("Distribution of Sepal Length")
	ch.XAxis = chart.XAxis{
		Name:  "Sepal length (cm)",
		Range: &chart.ContinuousRange{Min: bins[0].Lo, Max: bins[len(bins)-1].Hi},
	}
	ch.YAxis = chart.YAxis{
		Name:  "Frequency",
		Range: &chart.ContinuousRange{Min: 0, Max: peak * 1.1},
	}
	ch.Series = []chart.Series{
		chart.HistogramSeries{
			Name:        "sepal_length",
			Style:       chart.Style{FillColor: primary.WithAlpha(191), StrokeColor: drawing.ColorBlack, StrokeWidth: 1},
			InnerSeries: chart.ContinuousSeries{XValues: xs, YValues: ys},
		},
		chart.ContinuousSeries{
			Name:    fmt.Sprintf("Mean = %.2f", mean),
			XValues: []float64{mean, mean},
			YValues: []float64{0, peak * 1.05},
			Style: chart.Style{
				StrokeColor:     marker,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5, 5},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return c.save(&ch, HistFile)
}

// Scatter plots sepal_length against petal_length, one series per species.
func (c *Charts) Scatter(t *dataset.Table) (string, error) {
	xcol, ycol := t.Column(dataset.SepalLength), t.Column(dataset.PetalLength)
	if xcol == nil {
		return "", &dataset.MissingColumnError{Column: dataset.SepalLength}
	}
	if ycol == nil {
		return "", &dataset.MissingColumnError{Column: dataset.PetalLength}
	}
	if t.Species == nil {
		return "", fmt.Errorf("scatter: table has no categorical labels")
	}
	ch := c.base("Sepal Length vs Petal Length (colored by species)")
	ch.XAxis = chart.XAxis{Name: "Sepal length (cm)"}
	ch.YAxis = chart.YAxis{Name: "Petal length (cm)"}
	for li, idx := range t.Groups() {
		if len(idx) == 0 {
			continue
		}
		level := t.Species.Levels[li]
		xs := make([]float64, len(idx))
		ys := make([]float64, len(idx))
		for k, i := range idx {
			xs[k] = xcol.Values[i]
			ys[k] = ycol.Values[i]
		}
		style := chart.Style{StrokeWidth: chart.Disabled, DotWidth: 4}
		if col, ok := SpeciesColors[level]; ok {
			style.DotColor = col.WithAlpha(191)
		}
		ch.Series = append(ch.Series, chart.ContinuousSeries{Name: level, XValues: xs, YValues: ys, Style: style})
	}
	if len(ch.Series) == 0 {
		return "", fmt.Errorf("scatter: no labelled records")
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return c.save(&ch, ScatterFile)
}

func (c *Charts) base(title string) chart.Chart {
	return chart.Chart{
		Title:      title,
		Width:      c.Width,
		Height:     c.Height,
		DPI:        c.DPI,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
	}
}

func (c *Charts) save(ch *chart.Chart, name string) (string, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir plots dir: %w", err)
	}
	path := filepath.Join(c.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if err := ch.Render(chart.PNG, f); err != nil {
		f.Close()
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path, nil
}
