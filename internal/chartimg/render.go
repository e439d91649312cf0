// Package chartimg renders chart configurations to PNG images with gonum/plot.
package chartimg

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"lebstories.aub.edu.lb/internal/models"
)

func init() {
	// Set default font to avoid errors if system fonts are not found
	plot.DefaultFont = font.Font{Typeface: "Liberation", Variant: "Sans"}
	plotter.DefaultFont = font.Font{Typeface: "Liberation", Variant: "Sans"}
}

// RenderPNG renders a ChartConfig as a PNG image. A placeholder config (or
// one without points) produces an empty chart with a "no data" annotation
// rather than an error.
func RenderPNG(config models.ChartConfig) ([]byte, error) {
	p := plot.New()
	p.Title.Text = config.Title
	p.X.Label.Text = config.XAxis
	p.Y.Label.Text = config.YAxis

	if config.Placeholder || len(config.Series) == 0 || len(config.Series[0].Data) == 0 {
		return renderPlaceholder(p)
	}

	series := config.Series[0]

	switch config.ChartType {
	case "line":
		if err := addLineSeries(p, series); err != nil {
			return nil, err
		}
	case "bar":
		if err := addBarSeries(p, series); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown chart type %q", config.ChartType)
	}

	return writePNG(p)
}

func addLineSeries(p *plot.Plot, series models.ChartSeries) error {
	xys := make(plotter.XYs, len(series.Data))
	labels := make([]string, len(series.Data))
	for i, point := range series.Data {
		xys[i] = plotter.XY{X: float64(i), Y: point.Value}
		labels[i] = point.Label
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("failed to create line series %q: %w", series.Name, err)
	}

	p.Add(line, points)
	p.Legend.Add(series.Name, line)
	p.X.Tick.Marker = indexTicks{labels: labels}
	return nil
}

func addBarSeries(p *plot.Plot, series models.ChartSeries) error {
	values := make(plotter.Values, len(series.Data))
	labels := make([]string, len(series.Data))
	for i, point := range series.Data {
		values[i] = point.Value
		labels[i] = point.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("failed to create bar series %q: %w", series.Name, err)
	}

	p.Add(bars)
	p.Legend.Add(series.Name, bars)
	p.NominalX(labels...)
	return nil
}

func renderPlaceholder(p *plot.Plot) ([]byte, error) {
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.X.Tick.Marker = plot.ConstantTicks(nil)
	p.Y.Tick.Marker = plot.ConstantTicks(nil)

	note, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.45, Y: 0.5}},
		Labels: []string{"no data"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create placeholder label: %w", err)
	}
	p.Add(note)

	return writePNG(p)
}

func writePNG(p *plot.Plot) ([]byte, error) {
	writer, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

// indexTicks labels a line chart's x axis with the point labels, thinned to
// at most nine ticks so long year spans stay readable.
type indexTicks struct {
	labels []string
}

func (t indexTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	n := len(t.labels)
	if n == 0 {
		return ticks
	}

	step := n / 8
	if step < 1 {
		step = 1
	}

	for i := 0; i < n; i += step {
		if float64(i) < min || float64(i) > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: t.labels[i]})
	}
	return ticks
}
