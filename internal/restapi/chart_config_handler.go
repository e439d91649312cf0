package restapi

import (
	"net/http"

	"lebstories.aub.edu.lb/internal/dataset"
	"lebstories.aub.edu.lb/internal/models"
	"lebstories.aub.edu.lb/internal/utils"
)

func (api *RestAPI) chartConfigHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	id := utils.ExtractIDFromParams(r, "id")
	cfg, ok := api.DataManager.Lookup(id)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	// An unavailable dataset still gets a chart: a placeholder, so the
	// dashboard panel renders empty instead of erroring.
	if snapshot, ok := api.DataManager.SnapshotFor(cfg.ID); ok && snapshot.Status != dataset.StatusReady {
		placeholder := models.NewChartConfig(cfg.Chart, cfg.Title, "Year", cfg.YAxis, cfg.SeriesName, nil)
		api.sendResponse(w, r, models.NewEntryResponse(placeholder))
		return
	}

	config, fieldErrors, err := api.buildChartConfig(ctx, cfg, r.URL.Query())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(config))
}
