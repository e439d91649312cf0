package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lebstories.aub.edu.lb/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddlewareAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimitMiddleware(5, time.Second)
	defer rl.Stop()

	handler := rl.rateLimitHandler(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/api/datasets.json?key=TEST", nil)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)
	}
}

func TestRateLimitMiddlewareBlocksOverLimit(t *testing.T) {
	rl := NewRateLimitMiddleware(2, time.Second)
	defer rl.Stop()

	handler := rl.rateLimitHandler(okHandler())

	var lastCode int
	var lastBody *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/datasets.json?key=TEST", nil)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		lastCode = recorder.Code
		lastBody = recorder
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
	assert.NotEmpty(t, lastBody.Header().Get("Retry-After"))
	assert.Equal(t, "2", lastBody.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", lastBody.Header().Get("X-RateLimit-Remaining"))

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(lastBody.Body).Decode(&model))
	assert.Equal(t, http.StatusTooManyRequests, model.Code)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", model.Text)
}

func TestRateLimitMiddlewareTracksKeysSeparately(t *testing.T) {
	rl := NewRateLimitMiddleware(1, time.Second)
	defer rl.Stop()

	handler := rl.rateLimitHandler(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest("GET", "/api/datasets.json?key=alpha", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	exhausted := httptest.NewRecorder()
	handler.ServeHTTP(exhausted, httptest.NewRequest("GET", "/api/datasets.json?key=alpha", nil))
	assert.Equal(t, http.StatusTooManyRequests, exhausted.Code)

	other := httptest.NewRecorder()
	handler.ServeHTTP(other, httptest.NewRequest("GET", "/api/datasets.json?key=beta", nil))
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimitMiddlewareNegativeRateDisablesLimiting(t *testing.T) {
	rl := NewRateLimitMiddleware(-1, time.Second)
	defer rl.Stop()

	handler := rl.rateLimitHandler(okHandler())

	for i := 0; i < 100; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/datasets.json?key=TEST", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	}
}

func TestRateLimitMiddlewareZeroRateBlocksEverything(t *testing.T) {
	rl := NewRateLimitMiddleware(0, time.Second)
	defer rl.Stop()

	handler := rl.rateLimitHandler(okHandler())

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/datasets.json?key=TEST", nil))
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
}
