// Package httptransport assembles the HTTP surface: middleware chain, module
// routers, health and metrics endpoints. Business logic stays in the module
// services; this layer only mounts them.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	advisoryHandler "voteguard/internal/advisory/handler"
	auditHandler "voteguard/internal/audit/handler"
	conflictHandler "voteguard/internal/conflict/handler"
	"voteguard/internal/platform/metrics"
	platformmw "voteguard/internal/platform/middleware"
	resolutionHandler "voteguard/internal/resolution/handler"
	rollHandler "voteguard/internal/roll/handler"
	"voteguard/pkg/platform/middleware/auth"
	request "voteguard/pkg/platform/middleware/request"
	"voteguard/pkg/platform/middleware/requesttime"
)

// Registrar is any module handler that mounts itself on a chi router.
type Registrar interface {
	Register(r chi.Router)
}

// Dependencies carries the module handlers the router mounts.
type Dependencies struct {
	Roll       *rollHandler.Handler
	Conflict   *conflictHandler.Handler
	Advisory   *advisoryHandler.Handler
	Resolution *resolutionHandler.Handler
	Audit      *auditHandler.Handler

	JWTValidator auth.PrincipalValidator
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// NewRouter wires all endpoints. Everything under the API chain requires a
// bearer token; /healthz and /metrics stay open for probes and scrapers.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	api := chi.NewRouter()
	api.Use(platformmw.Recovery(deps.Logger))
	api.Use(request.Middleware)
	api.Use(requesttime.Middleware)
	api.Use(platformmw.Logger(deps.Logger))
	api.Use(platformmw.Latency(deps.Metrics))
	api.Use(platformmw.Timeout(30 * time.Second))
	api.Use(platformmw.ContentTypeJSON)
	api.Use(auth.RequireAuth(deps.JWTValidator, deps.Logger))

	for _, registrar := range []Registrar{
		deps.Roll,
		deps.Conflict,
		deps.Advisory,
		deps.Resolution,
		deps.Audit,
	} {
		registrar.Register(api)
	}

	r.Mount("/", api)
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
