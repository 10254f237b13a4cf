package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voteguard/internal/extraction"
	"voteguard/internal/identity"
	"voteguard/internal/resolution"
	"voteguard/internal/roll"
	dErrors "voteguard/pkg/domain-errors"
	"voteguard/pkg/platform/httputil"
	"voteguard/pkg/platform/sentinel"
	"voteguard/pkg/requestcontext"
)

// Service defines the interface for workflow operations.
type Service interface {
	Tasks(ctx context.Context) ([]roll.Voter, error)
	Resolve(ctx context.Context, id string, outcome resolution.Outcome, remarks string, resolver identity.Principal) (roll.Voter, error)
	Decommission(ctx context.Context, id string, reason string, actor identity.Principal) (roll.Voter, error)
	MatchExtracted(ctx context.Context, extracted extraction.Extracted) (roll.Voter, error)
}

// Extractor parses an uploaded certificate document.
type Extractor interface {
	Extract(ctx context.Context, document []byte, mimeType string) (extraction.Extracted, error)
}

// Handler wires workflow endpoints to the resolution service.
type Handler struct {
	service   Service
	extractor Extractor
	logger    *slog.Logger
}

// New constructs a resolution handler with its dependencies.
func New(service Service, extractor Extractor, logger *slog.Logger) *Handler {
	return &Handler{service: service, extractor: extractor, logger: logger}
}

// Register mounts workflow endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tasks", h.HandleTasks)
	r.Post("/tasks/{id}/resolve", h.HandleResolve)
	r.Post("/municipal/certificates", h.HandleCertificate)
	r.Post("/municipal/decommission", h.HandleDecommission)
}

// HandleTasks handles GET /tasks requests.
func (h *Handler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := requestcontext.Principal(ctx); !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	tasks, err := h.service.Tasks(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if tasks == nil {
		tasks = []roll.Voter{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// HandleResolve handles POST /tasks/{id}/resolve requests.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	resolver, ok := requestcontext.Principal(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[ResolveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := resolution.ParseOutcome(req.Outcome)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	updated, err := h.service.Resolve(ctx, id, outcome, req.Remarks, resolver)
	if err != nil {
		h.logger.WarnContext(ctx, "resolution rejected",
			"request_id", requestID,
			"voter_id", id,
			"outcome", req.Outcome,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// HandleCertificate handles POST /municipal/certificates requests. Extraction
// failure and a missing match are both reported as answers, never as request
// failures; only the separate decommission call mutates the roster.
func (h *Handler) HandleCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actor, ok := requestcontext.Principal(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	if !actor.Role.CanDecommission() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "role may not process certificates"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[CertificateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	document, err := base64.StdEncoding.DecodeString(req.Document)
	if err != nil || len(document) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "document must be base64-encoded"))
		return
	}

	extracted, err := h.extractor.Extract(ctx, document, req.MimeType)
	if err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			httputil.WriteJSON(w, http.StatusOK, map[string]any{
				"matched": false,
				"note":    "no data extracted",
			})
			return
		}
		httputil.WriteError(w, err)
		return
	}

	match, err := h.service.MatchExtracted(ctx, extracted)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteJSON(w, http.StatusOK, map[string]any{
				"extracted": extracted,
				"matched":   false,
				"note":      "no match",
			})
			return
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"extracted": extracted,
		"matched":   true,
		"match":     match,
	})
}

// HandleDecommission handles POST /municipal/decommission requests.
func (h *Handler) HandleDecommission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actor, ok := requestcontext.Principal(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[DecommissionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.VoterID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "voterId is required"))
		return
	}

	updated, err := h.service.Decommission(ctx, req.VoterID, req.Reason, actor)
	if err != nil {
		h.logger.WarnContext(ctx, "decommission rejected",
			"request_id", requestID,
			"voter_id", req.VoterID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}
