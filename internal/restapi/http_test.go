package restapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"lebstories.aub.edu.lb/internal/app"
	"lebstories.aub.edu.lb/internal/appconf"
	"lebstories.aub.edu.lb/internal/dataset"
	"lebstories.aub.edu.lb/internal/logging"
	"lebstories.aub.edu.lb/internal/models"
)

func fixturePath(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return path
}

func testCatalog(t *testing.T, debtSource, hepatitisSource string) string {
	t.Helper()

	contents := fmt.Sprintf(`
datasets:
  - id: debt-service
    title: Total Debt Service in Lebanon (1970-2022)
    source: %s
    kind: annual
    chart: line
    time_column: refPeriod
    value_column: Value
    indicator_column: Indicator Code
    indicator_code: DT.TDS.DPPG.CD
    min_year: 1970
    max_year: 2022
    series_name: Debt Service
    y_axis: Debt Service in USD
  - id: hepatitis-cases
    title: Hepatitis Cases in Lebanon (2015-2018)
    source: %s
    kind: monthly
    chart: bar
    time_column: refPeriod
    value_column: Number of cases
    min_year: 2015
    max_year: 2018
    series_name: Reported Cases
    y_axis: Reported Cases
`, debtSource, hepatitisSource)

	path := filepath.Join(t.TempDir(), "datasets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// createTestApi creates a new RestAPI instance with a dataset manager loaded
// from local fixtures for use in tests.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	return createTestApiWithSources(t,
		fixturePath(t, "debt_service.csv"),
		fixturePath(t, "hepatitis_cases.csv"))
}

func createTestApiWithSources(t *testing.T, debtSource, hepatitisSource string) *RestAPI {
	t.Helper()

	dataConfig := dataset.Config{
		CatalogPath: testCatalog(t, debtSource, hepatitisSource),
		DataPath:    ":memory:",
		Env:         appconf.Test,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dataManager, err := dataset.InitManager(dataConfig, logger)
	require.NoError(t, err)
	t.Cleanup(dataManager.Shutdown)

	app := &app.Application{
		Config: appconf.Config{
			Env:     appconf.EnvFlagToEnvironment("test"),
			ApiKeys: []string{"TEST"},
		},
		DataConfig:  dataConfig,
		Logger:      logger,
		DataManager: dataManager,
	}

	return &RestAPI{Application: app}
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the
// specified endpoint, and returns the response and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	resp := serveApiRaw(t, api, endpoint)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err := json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// retrieveFieldErrors decodes the body of a 400 validation response.
func retrieveFieldErrors(t *testing.T, resp *http.Response) map[string][]string {
	t.Helper()

	var body struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NoError(t, resp.Body.Close())
	return body.FieldErrors
}

// serveApiRaw performs the request without decoding the body, for endpoints
// that return something other than the JSON envelope.
func serveApiRaw(t *testing.T, api *RestAPI, endpoint string) *http.Response {
	t.Helper()

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	return resp
}
