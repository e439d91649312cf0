package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartConfigHandlerRequiresValidApiKey(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/charts/debt-service.json?key=invalid")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", model.Text)
}

func TestChartConfigHandlerUnknownDataset(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/charts/nope.json?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", model.Text)
}

func TestChartConfigHandlerDebtService(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/charts/debt-service.json?key=TEST&from=1970&to=1974")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", model.Text)

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, "line", entry["chartType"])
	assert.Equal(t, "Total Debt Service in Lebanon (1970-2022)", entry["title"])
	assert.Equal(t, "Year", entry["xAxis"])
	assert.Equal(t, "Debt Service in USD", entry["yAxis"])
	assert.Equal(t, false, entry["placeholder"])

	series, ok := entry["series"].([]interface{})
	require.True(t, ok)
	require.Len(t, series, 1)

	debtSeries := series[0].(map[string]interface{})
	assert.Equal(t, "Debt Service", debtSeries["name"])

	points := debtSeries["data"].([]interface{})
	require.Len(t, points, 5)

	first := points[0].(map[string]interface{})
	assert.Equal(t, "1970", first["label"])
	assert.InDelta(t, 130.0, first["value"], 1e-9)
}

func TestChartConfigHandlerHepatitisYearly(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/charts/hepatitis-cases.json?key=TEST&view=yearly")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := model.Data.(map[string]interface{})
	entry := data["entry"].(map[string]interface{})

	assert.Equal(t, "bar", entry["chartType"])
	assert.Equal(t, "Year", entry["xAxis"])

	series := entry["series"].([]interface{})
	points := series[0].(map[string]interface{})["data"].([]interface{})
	require.Len(t, points, 4)

	first := points[0].(map[string]interface{})
	assert.Equal(t, "2015", first["label"])
	assert.InDelta(t, 84, first["value"], 1e-9)
}

func TestChartConfigHandlerHepatitisMonthlyLabels(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/charts/hepatitis-cases.json?key=TEST&years=2016")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := model.Data.(map[string]interface{})
	entry := data["entry"].(map[string]interface{})
	assert.Equal(t, "Month-Year", entry["xAxis"])

	series := entry["series"].([]interface{})
	points := series[0].(map[string]interface{})["data"].([]interface{})
	require.Len(t, points, 6)

	first := points[0].(map[string]interface{})
	assert.Equal(t, "01-2016", first["label"])
	assert.InDelta(t, 8, first["value"], 1e-9)
}

func TestChartConfigHandlerRejectsInvalidParams(t *testing.T) {
	api := createTestApi(t)
	resp := serveApiRaw(t, api, "/api/charts/debt-service.json?key=TEST&from=2020&to=1990")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	fieldErrors := retrieveFieldErrors(t, resp)
	assert.Contains(t, fieldErrors, "from")
}

func TestChartConfigHandlerPlaceholderForUnavailableDataset(t *testing.T) {
	api := createTestApiWithSources(t,
		fixturePath(t, "no_such_file.csv"),
		fixturePath(t, "hepatitis_cases.csv"))

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/charts/debt-service.json?key=TEST")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := model.Data.(map[string]interface{})
	entry := data["entry"].(map[string]interface{})

	assert.Equal(t, true, entry["placeholder"])
	series := entry["series"].([]interface{})
	assert.Empty(t, series)
}
