package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"techtrends.sheridan.dev/internal/app"
)

type WebUI struct {
	*app.Application
}

// SetWebUIRoutes registers the debug pages. The rows and series dumps run the
// warehouse query, so the page is wrapped in the same limit as the trends
// endpoint.
func SetWebUIRoutes(router *httprouter.Router, webUI *WebUI, limit func(http.Handler) http.Handler) {
	router.Handler(http.MethodGet, "/debug/", limit(http.HandlerFunc(webUI.debugIndexHandler)))
}
