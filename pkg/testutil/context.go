package testutil

import (
	"net/http"
	"time"

	"voteguard/internal/identity"
	"voteguard/pkg/requestcontext"
)

// WithPrincipal attaches an authenticated officer to the request context,
// simulating what the auth middleware does for authenticated requests.
func WithPrincipal(req *http.Request, p identity.Principal) *http.Request {
	return req.WithContext(requestcontext.WithPrincipal(req.Context(), p))
}

// WithRequestTime pins the request-scoped clock so tests get deterministic
// timestamps in history and audit entries.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
