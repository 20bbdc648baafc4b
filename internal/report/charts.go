package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

var (
	barColor   = color.RGBA{R: 76, G: 114, B: 176, A: 255}
	tomato     = color.RGBA{R: 255, G: 99, B: 71, A: 255}
	steelBlue  = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	limeGreen  = color.RGBA{R: 50, G: 205, B: 50, A: 255}
	gold       = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	flagColors = map[string][2]color.Color{
		"referred":       {tomato, steelBlue},
		"exam_requested": {limeGreen, gold},
		"hospitalized":   {tomato, steelBlue},
	}
)

// chartSpec describes the labels and size of a chart.
type chartSpec struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

func newPlot(spec chartSpec) *plot.Plot {
	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	return p
}

// histogramChart writes a histogram of values with the given number of bins.
func histogramChart(path string, spec chartSpec, values []float64, bins int) error {
	p := newPlot(spec)
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	h.FillColor = barColor
	p.Add(h)
	return save(p, spec, path)
}

// countChart writes a bar chart of counts. Horizontal charts list the first
// count at the top.
func countChart(path string, spec chartSpec, counts []Count, horizontal bool) error {
	if horizontal {
		rev := make([]Count, len(counts))
		for i, c := range counts {
			rev[len(counts)-1-i] = c
		}
		counts = rev
	}

	values := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.N)
		names[i] = c.Label
	}

	p := newPlot(spec)
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	bars.Horizontal = horizontal
	p.Add(bars)
	if horizontal {
		p.NominalY(names...)
	} else {
		p.NominalX(names...)
	}
	return save(p, spec, path)
}

// proportionChart writes a two-bar chart of a proportion and its complement
// with percentage labels above each bar.
func proportionChart(path string, spec chartSpec, prop Proportion) error {
	p := newPlot(spec)
	p.Title.TextStyle.Font.Size = vg.Points(22)
	p.X.Label.TextStyle.Font.Size = vg.Points(18)
	p.Y.Label.TextStyle.Font.Size = vg.Points(18)
	p.Y.Min = 0
	p.Y.Max = 1.1

	colors, ok := flagColors[prop.Flag.Name]
	if !ok {
		colors = [2]color.Color{tomato, steelBlue}
	}
	values := []float64{prop.Value, prop.Complement()}
	for i, v := range values {
		bars, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(120))
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		bars.XMin = float64(i)
		bars.Color = colors[i]
		bars.LineStyle.Width = 0
		p.Add(bars)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			{X: 0, Y: values[0] + 0.03},
			{X: 1, Y: values[1] + 0.03},
		},
		Labels: []string{formatPercent(values[0]), formatPercent(values[1])},
	})
	if err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].Font.Size = vg.Points(18)
	}
	p.Add(labels)
	p.NominalX(prop.Flag.TrueLabel, prop.Flag.FalseLabel)
	return save(p, spec, path)
}

func save(p *plot.Plot, spec chartSpec, path string) error {
	if err := p.Save(spec.Width, spec.Height, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}
