package restapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"techtrends.sheridan.dev/internal/logging"
	"techtrends.sheridan.dev/internal/models"
)

func (api *RestAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, text string) {
	setJSONResponseType(&w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(models.NewErrorResponse(status, text)); err != nil {
		logging.LogError(api.Logger, "failed to encode error response", err,
			slog.Int("status", status),
			slog.String("path", r.URL.Path))
	}
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("component", "rest_api"))
	api.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	api.errorResponse(w, r, http.StatusNotFound, "resource not found")
}

func (api *RestAPI) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	api.errorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (api *RestAPI) panicResponse(w http.ResponseWriter, r *http.Request, recovered any) {
	api.serverErrorResponse(w, r, fmt.Errorf("panic: %v", recovered))
}
