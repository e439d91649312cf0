package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHepatitisCasesHandlerRequiresValidApiKey(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/hepatitis-cases.json?key=invalid")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, model.Code)
	assert.Equal(t, "permission denied", model.Text)
}

func TestHepatitisCasesHandlerMonthlyView(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/hepatitis-cases.json?key=TEST")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", model.Text)

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)

	list, ok := data["list"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 24)

	first := list[0].(map[string]interface{})
	assert.EqualValues(t, 2015, first["year"])
	assert.EqualValues(t, 1, first["month"])
	assert.EqualValues(t, 5, first["caseCount"])

	last := list[len(list)-1].(map[string]interface{})
	assert.EqualValues(t, 2018, last["year"])
	assert.EqualValues(t, 12, last["month"])
	assert.EqualValues(t, 36, last["caseCount"])
}

func TestHepatitisCasesHandlerYearlyView(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/hepatitis-cases.json?key=TEST&view=yearly")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := model.Data.(map[string]interface{})
	list := data["list"].([]interface{})
	require.Len(t, list, 4)

	expected := map[int]int{2015: 84, 2016: 102, 2017: 120, 2018: 138}
	for _, raw := range list {
		record := raw.(map[string]interface{})
		year := int(record["year"].(float64))
		assert.EqualValues(t, expected[year], record["caseCount"])
	}
}

func TestHepatitisCasesHandlerFiltersByYears(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/hepatitis-cases.json?key=TEST&years=2015,2017")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := model.Data.(map[string]interface{})
	list := data["list"].([]interface{})
	require.Len(t, list, 12)

	for _, raw := range list {
		record := raw.(map[string]interface{})
		year := int(record["year"].(float64))
		assert.Contains(t, []int{2015, 2017}, year)
	}
}

func TestHepatitisCasesHandlerRejectsBadView(t *testing.T) {
	api := createTestApi(t)
	resp := serveApiRaw(t, api, "/api/hepatitis-cases.json?key=TEST&view=weekly")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	fieldErrors := retrieveFieldErrors(t, resp)
	assert.Contains(t, fieldErrors, "view")
}

func TestHepatitisCasesHandlerRejectsBadYearList(t *testing.T) {
	api := createTestApi(t)
	resp := serveApiRaw(t, api, "/api/hepatitis-cases.json?key=TEST&years=2015,abc")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	fieldErrors := retrieveFieldErrors(t, resp)
	assert.Contains(t, fieldErrors, "years")
}

func TestHepatitisCasesHandlerUnavailableDataset(t *testing.T) {
	api := createTestApiWithSources(t,
		fixturePath(t, "debt_service.csv"),
		fixturePath(t, "no_such_file.csv"))

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/hepatitis-cases.json?key=TEST")

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "dataset unavailable", model.Text)

	data := model.Data.(map[string]interface{})
	assert.Equal(t, "hepatitis-cases", data["datasetId"])
}
