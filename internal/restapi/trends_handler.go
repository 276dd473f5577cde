package restapi

import (
	"net/http"

	"techtrends.sheridan.dev/internal/models"
)

func (api *RestAPI) trendsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check if context is already cancelled
	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	results, err := api.AnalyzeTrends(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewTrendsResponse(results))
}
