package restapi

import (
	"net/http"

	"lebstories.aub.edu.lb/internal/models"
)

func (api *RestAPI) statusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	status := models.StatusData{
		UptimeSeconds: int64(api.DataManager.Uptime().Seconds()),
		Datasets:      api.DataManager.Summaries(),
	}

	response := models.NewEntryResponse(status)
	api.sendResponse(w, r, response)
}
