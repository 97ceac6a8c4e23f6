package middleware

import (
	"log/slog"
	"net/http"

	"github.com/daap14/teamdir/internal/api/response"
)

// RequireAdmin returns middleware that rejects non-admin identities with 403.
// Requests without an identity are rejected with 401.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			identity := GetIdentity(r.Context())
			if identity == nil {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", requestID)
				return
			}

			if !identity.IsAdmin {
				slog.Warn("admin access denied", "userId", identity.UserID, "source", identity.Source, "path", r.URL.Path, "requestId", requestID)
				response.Err(w, http.StatusForbidden, "FORBIDDEN", "Admin access required", requestID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
