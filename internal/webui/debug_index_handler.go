package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

//go:embed debug_index.html dashboard.html
var templateFS embed.FS

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	err = tmpl.Execute(w, dataStruct)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "datasets":
		data = webUI.DataManager.Summaries()
		title = "Datasets - Load Status"
	case "debt_service":
		rows, err := webUI.DataManager.VizDB.Queries.ListDebtService(r.Context(), 0, 9999)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = rows
		title = "Debt Service - Stored Rows"
	case "hepatitis_cases":
		rows, err := webUI.DataManager.VizDB.Queries.ListHepatitisMonthly(r.Context(), nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = rows
		title = "Hepatitis Cases - Stored Rows"
	case "loads":
		loads := map[string]interface{}{}
		for _, cfg := range webUI.DataManager.Datasets() {
			load, err := webUI.DataManager.VizDB.Queries.LatestLoad(r.Context(), cfg.ID)
			if err != nil {
				loads[cfg.ID] = err.Error()
				continue
			}
			loads[cfg.ID] = load
		}
		data = loads
		title = "Datasets - Latest Loads"
	default:
		data = map[string]string{
			"error": "Please use one of the following: datasets, debt_service, hepatitis_cases, loads.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
