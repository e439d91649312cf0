package restapi

import (
	"net/http"

	"lebstories.aub.edu.lb/internal/models"
)

func (api *RestAPI) datasetsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	summaries := api.DataManager.Summaries()

	response := models.NewListResponse(summaries)
	api.sendResponse(w, r, response)
}
