package restapi

import (
	"net/http"

	"lebstories.aub.edu.lb/internal/dataset"
	"lebstories.aub.edu.lb/internal/models"
	"lebstories.aub.edu.lb/internal/utils"
)

func (api *RestAPI) hepatitisCasesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	cfg, ok := api.DataManager.Lookup(dataset.HepatitisCasesID)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	if snapshot, ok := api.DataManager.SnapshotFor(cfg.ID); ok && snapshot.Status != dataset.StatusReady {
		api.dataUnavailableResponse(w, r, cfg.ID)
		return
	}

	params := r.URL.Query()
	years, fieldErrors := utils.ParseYearListParam(params, "years", nil)
	view, fieldErrors := utils.ParseChoiceParam(params, "view", []string{"monthly", "yearly"}, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if view == "yearly" {
		totals, err := api.DataManager.VizDB.Queries.ListHepatitisYearly(ctx, years)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}

		records := make([]models.HepatitisYearTotal, 0, len(totals))
		for _, y := range totals {
			records = append(records, models.HepatitisYearTotal{Year: y.Year, CaseCount: y.CaseCount})
		}

		api.sendResponse(w, r, models.NewListResponse(records))
		return
	}

	months, err := api.DataManager.VizDB.Queries.ListHepatitisMonthly(ctx, years)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	records := make([]models.HepatitisRecord, 0, len(months))
	for _, m := range months {
		records = append(records, models.HepatitisRecord{Year: m.Year, Month: m.Month, CaseCount: m.CaseCount})
	}

	api.sendResponse(w, r, models.NewListResponse(records))
}
