package restapi

import (
	"net/http"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	protected := func(h handlerFunc) http.Handler {
		if api.rateLimiter != nil {
			return api.rateLimiter.rateLimitHandler(validateAPIKey(api, h))
		}
		return validateAPIKey(api, h)
	}

	mux.Handle("GET /api/datasets.json", protected(api.datasetsHandler))
	mux.Handle("GET /api/debt-service.json", protected(api.debtServiceHandler))
	mux.Handle("GET /api/hepatitis-cases.json", protected(api.hepatitisCasesHandler))
	mux.Handle("GET /api/charts/{id}", protected(api.chartConfigHandler))
	mux.Handle("GET /api/status.json", protected(api.statusHandler))
	mux.Handle("GET /api/export/{id}", protected(api.exportHandler))

	// Chart images back the dashboard's <img> fallbacks, so they skip the key check.
	mux.HandleFunc("GET /charts/{id}", api.chartImageHandler)
}
