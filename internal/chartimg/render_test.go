package chartimg

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lebstories.aub.edu.lb/internal/models"
)

func decodePNG(t *testing.T, b []byte) {
	t.Helper()
	_, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err, "output should be a decodable PNG")
}

func TestRenderPNGLineChart(t *testing.T) {
	points := []models.ChartPoint{
		{Label: "1970", Value: 120.5},
		{Label: "1971", Value: 98.2},
		{Label: "2022", Value: 310.0},
	}
	config := models.NewChartConfig("line", "Debt Service", "Year", "USD", "Debt Service", points)

	b, err := RenderPNG(config)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	decodePNG(t, b)
}

func TestRenderPNGBarChart(t *testing.T) {
	points := []models.ChartPoint{
		{Label: "2015", Value: 40},
		{Label: "2016", Value: 55},
		{Label: "2017", Value: 30},
		{Label: "2018", Value: 62},
	}
	config := models.NewChartConfig("bar", "Hepatitis Cases", "Year", "Reported Cases", "Cases", points)

	b, err := RenderPNG(config)
	require.NoError(t, err)
	decodePNG(t, b)
}

func TestRenderPNGPlaceholder(t *testing.T) {
	config := models.NewChartConfig("line", "Debt Service", "Year", "USD", "Debt Service", nil)
	require.True(t, config.Placeholder)

	b, err := RenderPNG(config)
	require.NoError(t, err, "an empty series should render a placeholder, not fail")
	decodePNG(t, b)
}

func TestRenderPNGUnknownChartType(t *testing.T) {
	config := models.NewChartConfig("pie", "Nope", "", "", "", []models.ChartPoint{{Label: "a", Value: 1}})

	_, err := RenderPNG(config)
	assert.Error(t, err)
}

func TestIndexTicksThinning(t *testing.T) {
	labels := make([]string, 53)
	for i := range labels {
		labels[i] = "y"
	}

	ticks := indexTicks{labels: labels}.Ticks(0, 52)
	assert.LessOrEqual(t, len(ticks), 9)
	assert.NotEmpty(t, ticks)
}
