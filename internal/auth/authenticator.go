package auth

import (
	"errors"
	"net/http"
)

// ErrMissingCredentials is returned when the request carries no credentials.
var ErrMissingCredentials = errors.New("missing credentials")

// ErrInvalidCredentials is returned when the credentials do not resolve to an identity.
var ErrInvalidCredentials = errors.New("invalid or revoked credentials")

// Authenticator resolves the caller of an HTTP request to an Identity.
// Implementations return ErrMissingCredentials or ErrInvalidCredentials
// (possibly wrapped) for caller errors; any other error is a server failure.
type Authenticator interface {
	// Header names the request header the credentials are read from.
	Header() string
	AuthenticateRequest(r *http.Request) (*Identity, error)
}
