package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sertec/internal/platform/metrics"
	"sertec/internal/platform/middleware"
	"sertec/pkg/platform/httputil"
	"sertec/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

// NewRouter wires the middleware chain, operational endpoints and the v1 API.
func NewRouter(h *Handler, logger *slog.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.LatencyMiddleware(m))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		h.Register(r)
	})
	return r
}
