package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/daap14/teamdir/internal/api/response"
	"github.com/daap14/teamdir/internal/auth"
)

const identityKey contextKey = "identity"

// Auth is middleware that resolves the caller to an Identity through the
// given authenticator. Missing or invalid credentials return 401.
func Auth(authenticator auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			identity, err := authenticator.AuthenticateRequest(r)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrMissingCredentials):
					response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", authenticator.Header()+" header is required", requestID)
				case errors.Is(err, auth.ErrInvalidCredentials):
					response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or revoked credentials", requestID)
				default:
					slog.Error("authentication failed", "error", err, "requestId", requestID)
					response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed", requestID)
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
