package webui

import (
	"html/template"
	"net/http"

	"lebstories.aub.edu.lb/internal/dataset"
	"lebstories.aub.edu.lb/internal/logging"
	"lebstories.aub.edu.lb/internal/models"
)

type chartPanel struct {
	Summary models.DatasetSummary
	MinYear int
	MaxYear int
	Years   []int
}

type dashboardPage struct {
	APIKey    string
	Debt      chartPanel
	Hepatitis chartPanel
}

func (webUI *WebUI) panelFor(id string) chartPanel {
	panel := chartPanel{
		Summary: models.DatasetSummary{ID: id, Status: dataset.StatusUnavailable},
	}

	cfg, ok := webUI.DataManager.Lookup(id)
	if !ok {
		return panel
	}
	panel.MinYear = cfg.MinYear
	panel.MaxYear = cfg.MaxYear
	for year := cfg.MinYear; year <= cfg.MaxYear; year++ {
		panel.Years = append(panel.Years, year)
	}

	for _, summary := range webUI.DataManager.Summaries() {
		if summary.ID == id {
			panel.Summary = summary
			break
		}
	}
	return panel
}

func (webUI *WebUI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(templateFS, "dashboard.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page := dashboardPage{
		Debt:      webUI.panelFor(dataset.DebtServiceID),
		Hepatitis: webUI.panelFor(dataset.HepatitisCasesID),
	}
	if len(webUI.Config.ApiKeys) > 0 {
		page.APIKey = webUI.Config.ApiKeys[0]
	}

	w.Header().Set("Content-Type", "text/html")
	if err = tmpl.Execute(w, page); err != nil {
		logging.LogError(webUI.Logger, "failed to render dashboard", err)
	}
}
