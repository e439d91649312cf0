package restapi

import (
	"net/http"

	"lebstories.aub.edu.lb/internal/chartimg"
	"lebstories.aub.edu.lb/internal/dataset"
	"lebstories.aub.edu.lb/internal/models"
	"lebstories.aub.edu.lb/internal/utils"
)

func (api *RestAPI) chartImageHandler(w http.ResponseWriter, r *http.Request) {
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

	var config models.ChartConfig
	if snapshot, ok := api.DataManager.SnapshotFor(cfg.ID); ok && snapshot.Status != dataset.StatusReady {
		config = models.NewChartConfig(cfg.Chart, cfg.Title, "Year", cfg.YAxis, cfg.SeriesName, nil)
	} else {
		var fieldErrors map[string][]string
		var err error
		config, fieldErrors, err = api.buildChartConfig(ctx, cfg, r.URL.Query())
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		if len(fieldErrors) > 0 {
			api.validationErrorResponse(w, r, fieldErrors)
			return
		}
	}

	png, err := chartimg.RenderPNG(config)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		api.Logger.Error("failed to write chart image", "error", err, "dataset", cfg.ID)
	}
}
