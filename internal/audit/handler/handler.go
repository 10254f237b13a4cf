package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"voteguard/internal/audit"
	dErrors "voteguard/pkg/domain-errors"
	"voteguard/pkg/platform/httputil"
	"voteguard/pkg/requestcontext"
)

const defaultLimit = 100

// Reader exposes the committed audit trail.
type Reader interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Entry, error)
}

// Handler wires the audit trail endpoint to the log.
type Handler struct {
	reader Reader
	logger *slog.Logger
}

// New constructs an audit handler with its dependencies.
func New(reader Reader, logger *slog.Logger) *Handler {
	return &Handler{reader: reader, logger: logger}
}

// Register mounts the audit endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/logs", h.HandleList)
}

// HandleList handles GET /audit/logs requests. Entries come back newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requestcontext.Principal(ctx); !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.reader.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit entries",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}
