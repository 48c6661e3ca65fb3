package api

import (
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/gorilla/mux"
	"github.com/urfave/negroni"
)

// metricsPath path of the metrics collection endpoint
const metricsPath = "/metrics"

// maxMetricsRequests concurrent scrapes the metrics endpoint accepts
const maxMetricsRequests = 4

/*
BuildRouter define the REST API request router along with its middleware chain

	@param handler HerbHandler - herb REST API handler
	@param metrics goutils.MetricsCollector - metrics collector, served at `/metrics`
	@return request handler
*/
func BuildRouter(handler HerbHandler, metrics goutils.MetricsCollector) (http.Handler, error) {
	perRoute, err := newRouteMetrics(metrics)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Use(perRoute.middleware)

	idPath := func(prefix string) string {
		return prefix + "/{" + herbIDPathParam + "}"
	}
	route := func(path string, method string, handle http.HandlerFunc) {
		router.HandleFunc(path, handler.LoggingMiddleware(handle)).Methods(method)
	}

	route("/", http.MethodGet, handler.Root)
	route("/health", http.MethodGet, handler.Health)
	route("/resetDb", http.MethodPost, handler.ResetDatabase)
	route("/addHerb", http.MethodPost, handler.AddHerb)
	route(idPath("/getHerb"), http.MethodGet, handler.GetHerb)
	route(idPath("/p"), http.MethodGet, handler.GetPublicProduct)
	route(idPath("/p")+"/html", http.MethodGet, handler.GetPublicProductPage)
	route(idPath("/qr"), http.MethodGet, handler.GetQRImage)
	route("/listHerbs", http.MethodGet, handler.ListHerbs)
	route(idPath("/updateHerb"), http.MethodPut, handler.UpdateHerb)
	route(idPath("/deleteHerb"), http.MethodDelete, handler.DeleteHerb)
	route("/scan", http.MethodPost, handler.ScanProduct)
	route("/scan-page", http.MethodGet, handler.ScanPage)
	metrics.ExposeCollectionEndpoint(router, metricsPath, maxMetricsRequests)

	chain := negroni.New(newRecovery())
	chain.UseHandler(router)
	return chain, nil
}
