// Package request assigns each inbound request a correlation ID. The ID rides
// the context, response headers, and every structured log line for the request.
package request

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"voteguard/pkg/requestcontext"
)

const headerRequestID = "X-Request-ID"

// Middleware honors a caller-supplied X-Request-ID, generating one otherwise,
// and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(headerRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the correlation ID from the context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
