// Package webui serves the dashboard page and a debug data inspector.
package webui

import (
	"net/http"

	"lebstories.aub.edu.lb/internal/app"
)

type WebUI struct {
	*app.Application
}

func NewWebUI(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}

func (webUI *WebUI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", webUI.dashboardHandler)
	mux.HandleFunc("GET /debug/", webUI.debugIndexHandler)
}
