// Package httpapi assembles the public router. It mounts feature handlers and
// keeps transport-wide concerns (request IDs, panic recovery, health,
// metrics) in one place.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"supportdir/pkg/platform/httputil"
)

// Registrar is anything that can mount routes; all feature handlers satisfy it.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one backing dependency.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// NewRouter builds the server router from feature handlers and dependency
// probes.
func NewRouter(handlers []Registrar, checks []HealthCheck) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", healthHandler(checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(checks)+1)
		result["status"] = "ok"
		for _, check := range checks {
			if err := check.Probe(ctx); err != nil {
				status = http.StatusServiceUnavailable
				result["status"] = "degraded"
				result[check.Name] = err.Error()
				continue
			}
			result[check.Name] = "ok"
		}
		httputil.WriteJSON(w, status, result)
	}
}
