// Package httputil centralizes JSON encoding and domain error translation for
// HTTP handlers so every endpoint returns the same error envelope.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "voteguard/pkg/domain-errors"
	"voteguard/pkg/platform/sentinel"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates domain and sentinel errors into a JSON error envelope.
// Internal errors omit the description so infrastructure detail never leaks.
func WriteError(w http.ResponseWriter, err error) {
	code := translate(err)
	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		if msg := description(err, code); msg != "" {
			body["error_description"] = msg
		}
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}

func translate(err error) dErrors.Code {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.CodeNotFound
	case errors.Is(err, sentinel.ErrInvalidTransition):
		return dErrors.CodeInvalidTransition
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.CodeUnavailable
	}
	return dErrors.CodeOf(err)
}

func description(err error, code dErrors.Code) string {
	if msg := dErrors.MessageOf(err); msg != "" {
		return msg
	}
	switch code {
	case dErrors.CodeNotFound:
		return "record not found"
	case dErrors.CodeInvalidTransition:
		return "record already archived"
	case dErrors.CodeUnavailable:
		return "collaborator unavailable"
	}
	return ""
}

// DecodeAndPrepare decodes the request body into T, writing a bad_request
// response and logging on failure. The second return value reports whether the
// handler should continue.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "malformed request body",
				"error", err,
				"request_id", requestID,
			)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed JSON body"))
		var zero T
		return zero, false
	}
	return req, true
}
