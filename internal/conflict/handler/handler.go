package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voteguard/internal/conflict"
	"voteguard/internal/roll"
	"voteguard/pkg/platform/httputil"
	"voteguard/pkg/requestcontext"
)

// Store defines the read surface the conflict endpoints need. Clustering is
// pure, so a roster snapshot is the only input.
type Store interface {
	List(ctx context.Context) ([]roll.Voter, error)
}

// Handler wires conflict and dashboard endpoints to the clustering engine.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// New constructs a conflict handler with its dependencies.
func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts conflict endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/clusters", h.HandleClusters)
	r.Get("/roll/voters/{id}/conflicts", h.HandleConflicts)
	r.Get("/dashboard/summary", h.HandleSummary)
}

// HandleClusters handles GET /clusters requests.
func (h *Handler) HandleClusters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	voters, err := h.list(ctx, w)
	if err != nil {
		return
	}

	clusters := conflict.Clusters(voters)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"clusters": clusters,
		"count":    len(clusters),
	})
}

// HandleConflicts handles GET /roll/voters/{id}/conflicts requests. An empty
// conflict set is a normal answer, not an error.
func (h *Handler) HandleConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	voters, err := h.list(ctx, w)
	if err != nil {
		return
	}

	conflicts := conflict.ConflictsFor(voters, id)
	if conflicts == nil {
		conflicts = []roll.Voter{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"voterId":   id,
		"conflicts": conflicts,
	})
}

// HandleSummary handles GET /dashboard/summary requests.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	voters, err := h.list(ctx, w)
	if err != nil {
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"summary":     conflict.Summarize(voters),
		"riskBuckets": conflict.RiskBuckets(voters),
	})
}

func (h *Handler) list(ctx context.Context, w http.ResponseWriter) ([]roll.Voter, error) {
	voters, err := h.store.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list roster",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
	}
	return voters, err
}
