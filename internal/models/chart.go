package models

// ChartPoint is a single plotted value with its axis label.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is a named, ordered series of points.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartConfig is a renderable chart description, consumable by the dashboard
// page's Chart.js glue as-is.
type ChartConfig struct {
	ChartType   string        `json:"chartType"`
	Title       string        `json:"title"`
	XAxis       string        `json:"xAxis"`
	YAxis       string        `json:"yAxis"`
	Series      []ChartSeries `json:"series"`
	Colors      []string      `json:"colors"`
	ShowLegend  bool          `json:"showLegend"`
	ShowGrid    bool          `json:"showGrid"`
	Placeholder bool          `json:"placeholder"`
}

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// NewChartConfig builds a chart from ordered points. An empty point slice
// produces a placeholder chart rather than an error, so a dataset with no
// data still renders as an empty panel.
func NewChartConfig(chartType, title, xAxis, yAxis, seriesName string, points []ChartPoint) ChartConfig {
	if chartType == "" {
		chartType = "bar"
	}
	if seriesName == "" {
		seriesName = "Value"
	}

	config := ChartConfig{
		ChartType:  chartType,
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		ShowLegend: true,
		ShowGrid:   true,
	}

	if len(points) == 0 {
		config.Placeholder = true
		config.Series = []ChartSeries{}
		config.Colors = []string{}
		return config
	}

	config.Series = []ChartSeries{{
		Name: seriesName,
		Data: points,
	}}
	config.Colors = assignColors(len(config.Series))

	return config
}

func assignColors(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
