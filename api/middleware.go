package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/negroni"
)

// unmatchedRoute route label of requests no route matched
const unmatchedRoute = "unmatched"

// routeRequestsMetric per route request counter
const routeRequestsMetric = "herbtrace_api_route_requests_total"

/*
newRecovery define the panic recovery middleware. Panics are logged and answered with a 500.

	@return recovery middleware
*/
func newRecovery() *negroni.Recovery {
	recovery := negroni.NewRecovery()
	recovery.PrintStack = false
	recovery.PanicHandlerFunc = func(info *negroni.PanicInformation) {
		log.
			WithField("panic", fmt.Sprintf("%v", info.RecoveredPanic)).
			WithField("request", info.RequestDescription()).
			Error("Recovered from panic")
	}
	return recovery
}

// routeMetrics request counts by route template. The metrics collector only labels its
// HTTP metrics by method and status.
type routeMetrics struct {
	requests *prometheus.CounterVec
}

/*
newRouteMetrics define and register the per route request counter

	@param metrics goutils.MetricsCollector - metrics collector
	@return route metrics
*/
func newRouteMetrics(metrics goutils.MetricsCollector) (*routeMetrics, error) {
	requests, err := metrics.InstallCustomCounterVecMetrics(
		context.Background(),
		routeRequestsMetric,
		"REST API requests by method, route, and response status",
		[]string{"method", "route", "status"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register REST API route metrics [%w]", err)
	}
	return &routeMetrics{requests: requests}, nil
}

/*
middleware mux middleware counting each request against its route template

	@param next http.Handler - next handler in the chain
	@return wrapped handler
*/
func (m *routeMetrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := unmatchedRoute
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		captured := httpsnoop.CaptureMetrics(next, w, r)
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(captured.Code)).Inc()
	})
}
