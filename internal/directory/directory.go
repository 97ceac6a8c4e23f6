// Package directory describes the external teams directory the service reads
// from. The directory owns teams and memberships; this service never writes to it.
package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the directory reports a missing resource.
var ErrNotFound = errors.New("directory resource not found")

// ErrUnauthorized is returned when the directory rejects the supplied credentials.
var ErrUnauthorized = errors.New("directory rejected credentials")

// ErrRateLimited is returned when the directory throttles the caller.
var ErrRateLimited = errors.New("directory rate limit exceeded")

// ErrUnexpectedResponse is returned when a successful response cannot be decoded.
var ErrUnexpectedResponse = errors.New("unexpected directory response")

// TeamsDirectory lists teams and their memberships.
type TeamsDirectory interface {
	ListTeams(ctx context.Context) ([]Team, error)
	ListMemberships(ctx context.Context, teamID string) ([]Membership, error)
}

// AccountResolver resolves a session JWT to the account that owns it.
type AccountResolver interface {
	GetAccount(ctx context.Context, jwt string) (*Account, error)
}

// HealthChecker provides directory connectivity checking.
type HealthChecker interface {
	CheckConnectivity(ctx context.Context) ConnectivityStatus
}

// APIError is a non-2xx response from the directory.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Type != "" {
		return fmt.Sprintf("%s %s: status %d (%s): %s", e.Method, e.Path, e.StatusCode, e.Type, msg)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is maps well-known status codes onto the package sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}
