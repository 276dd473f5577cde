package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"techtrends.sheridan.dev/internal/appconf"
	"techtrends.sheridan.dev/internal/webui"
)

// SetRoutes registers every endpoint on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	limit := api.rateLimiter
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	router.Handler(http.MethodGet, "/api/bq", limit(http.HandlerFunc(api.trendsHandler)))
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	if api.Config.Env != appconf.Production {
		webui.SetWebUIRoutes(router, &webui.WebUI{Application: api.Application}, limit)
	}

	router.NotFound = http.HandlerFunc(api.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
	router.PanicHandler = api.panicResponse
}

// Handler returns the full middleware chain wrapped around the router.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}
