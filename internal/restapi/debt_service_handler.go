package restapi

import (
	"net/http"

	"lebstories.aub.edu.lb/internal/dataset"
	"lebstories.aub.edu.lb/internal/models"
	"lebstories.aub.edu.lb/internal/utils"
)

func (api *RestAPI) debtServiceHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	cfg, ok := api.DataManager.Lookup(dataset.DebtServiceID)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	if snapshot, ok := api.DataManager.SnapshotFor(cfg.ID); ok && snapshot.Status != dataset.StatusReady {
		api.dataUnavailableResponse(w, r, cfg.ID)
		return
	}

	params := r.URL.Query()
	from, fieldErrors := utils.ParseIntParam(params, "from", cfg.MinYear, nil)
	to, fieldErrors := utils.ParseIntParam(params, "to", cfg.MaxYear, fieldErrors)
	if len(fieldErrors) == 0 && from > to {
		fieldErrors["from"] = append(fieldErrors["from"], `Field "from" must not be after field "to".`)
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	payments, err := api.DataManager.VizDB.Queries.ListDebtService(ctx, from, to)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	records := make([]models.DebtServiceRecord, 0, len(payments))
	for _, p := range payments {
		records = append(records, models.DebtServiceRecord{Year: p.Year, Amount: p.Amount})
	}

	response := models.NewListResponse(records)
	api.sendResponse(w, r, response)
}
