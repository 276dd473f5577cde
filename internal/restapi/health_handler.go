package restapi

import (
	"net/http"

	"techtrends.sheridan.dev/internal/models"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.HealthResponse{
		Status: "ok",
		Source: string(api.Config.Source),
		Env:    api.Config.Env.String(),
	})
}
