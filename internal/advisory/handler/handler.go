package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voteguard/internal/advisory"
	"voteguard/internal/roll"
	"voteguard/pkg/platform/httputil"
	"voteguard/pkg/platform/sentinel"
	"voteguard/pkg/requestcontext"
)

// Store defines the read surface the advisory endpoints need.
type Store interface {
	Get(ctx context.Context, id string) (roll.Voter, error)
	List(ctx context.Context) ([]roll.Voter, error)
}

// Service generates guidance for a record or a cluster.
type Service interface {
	ExplainRisk(ctx context.Context, voter roll.Voter) advisory.RiskExplanation
	SuggestResolution(ctx context.Context, anchorHash string, members []roll.Voter) (advisory.ResolutionAdvice, error)
}

// Handler wires advisory endpoints to the guidance service.
type Handler struct {
	store   Store
	service Service
	logger  *slog.Logger
}

// New constructs an advisory handler with its dependencies.
func New(store Store, service Service, logger *slog.Logger) *Handler {
	return &Handler{store: store, service: service, logger: logger}
}

// Register mounts advisory endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/roll/voters/{id}/advisory", h.HandleRiskAdvisory)
	r.Get("/clusters/{hash}/advisory", h.HandleClusterAdvisory)
}

// HandleRiskAdvisory handles GET /roll/voters/{id}/advisory requests.
func (h *Handler) HandleRiskAdvisory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	voter, err := h.store.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	explanation := h.service.ExplainRisk(ctx, voter)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"voterId":     id,
		"explanation": explanation,
	})
}

// HandleClusterAdvisory handles GET /clusters/{hash}/advisory requests. The
// cluster is rebuilt from the live snapshot so advice never covers records
// archived since the cluster was first seen.
func (h *Handler) HandleClusterAdvisory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hash := chi.URLParam(r, "hash")

	voters, err := h.store.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list roster",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	var members []roll.Voter
	for _, v := range voters {
		if v.IsArchived {
			continue
		}
		if anchor, ok := v.IdentityAnchor(); ok && anchor == hash {
			members = append(members, v)
		}
	}
	if len(members) == 0 {
		httputil.WriteError(w, sentinel.ErrNotFound)
		return
	}

	advice, err := h.service.SuggestResolution(ctx, hash, members)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"anchorHash": hash,
		"members":    len(members),
		"advice":     advice,
	})
}
