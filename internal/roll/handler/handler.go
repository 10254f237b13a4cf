package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"voteguard/internal/roll"
	"voteguard/pkg/platform/httputil"
	"voteguard/pkg/requestcontext"
)

// Store defines the read surface the roll endpoints need.
type Store interface {
	Get(ctx context.Context, id string) (roll.Voter, error)
	List(ctx context.Context) ([]roll.Voter, error)
}

// Handler wires roster read endpoints to the record store.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// New constructs a roll handler with its dependencies.
func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts roster endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/roll/voters", h.HandleList)
	r.Get("/roll/voters/{id}", h.HandleGet)
}

// HandleList handles GET /roll/voters requests. Query parameters narrow the
// snapshot: state, district, zone, status, flagged, archived.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	voters, err := h.store.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list roster",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	filtered := applyFilters(voters, r.URL.Query())
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"voters": filtered,
		"count":  len(filtered),
	})
}

// HandleGet handles GET /roll/voters/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	voter, err := h.store.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, voter)
}

func applyFilters(voters []roll.Voter, query url.Values) []roll.Voter {
	state := query.Get("state")
	district := query.Get("district")
	zone := query.Get("zone")
	status := query.Get("status")
	flagged := query.Get("flagged")
	archived := query.Get("archived")

	out := make([]roll.Voter, 0, len(voters))
	for _, v := range voters {
		if state != "" && !strings.EqualFold(v.State, state) {
			continue
		}
		if district != "" && !strings.EqualFold(v.District, district) {
			continue
		}
		if zone != "" && !strings.EqualFold(v.Zone, zone) {
			continue
		}
		if status != "" && string(v.Status) != status {
			continue
		}
		if flagged != "" && v.IsFlagged != (flagged == "true") {
			continue
		}
		// Archived records stay out of listings unless asked for.
		if archived == "" && v.IsArchived {
			continue
		}
		if archived != "" && v.IsArchived != (archived == "true") {
			continue
		}
		out = append(out, v)
	}
	return out
}
