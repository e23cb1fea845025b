// Package routes is the route table: every endpoint the server answers is mounted here.
package routes

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/hello-api/internal/http/health"
	"github.com/janisto/hello-api/internal/http/v1/hello"
	"github.com/janisto/hello-api/internal/platform/metrics"
)

// MetricsPath is where the Prometheus exposition is served.
const MetricsPath = "/metrics"

// Register mounts the documented operations on api and the operational endpoints
// (health, metrics) directly on router. A nil m leaves /metrics unmounted.
func Register(router chi.Router, api huma.API, m *metrics.Metrics) {
	router.Get(health.Path, health.Handler())
	router.Head(health.Path, health.Handler())
	if m != nil {
		router.Method(http.MethodGet, MetricsPath, m.Handler())
	}

	hello.Register(api)
}
