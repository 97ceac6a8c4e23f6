package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/daap14/teamdir/internal/directory"
)

// SessionJWTHeader carries a JWT minted by the directory for a signed-in user.
const SessionJWTHeader = "X-Appwrite-JWT"

// SessionAuthenticator authenticates directory users by session JWT. An
// account is an admin when it carries adminLabel.
type SessionAuthenticator struct {
	accounts   directory.AccountResolver
	adminLabel string
}

// NewSessionAuthenticator creates a SessionAuthenticator.
func NewSessionAuthenticator(accounts directory.AccountResolver, adminLabel string) *SessionAuthenticator {
	return &SessionAuthenticator{accounts: accounts, adminLabel: adminLabel}
}

// Header implements Authenticator.
func (a *SessionAuthenticator) Header() string {
	return SessionJWTHeader
}

// AuthenticateRequest implements Authenticator.
func (a *SessionAuthenticator) AuthenticateRequest(r *http.Request) (*Identity, error) {
	jwt := r.Header.Get(SessionJWTHeader)
	if jwt == "" {
		return nil, ErrMissingCredentials
	}

	account, err := a.accounts.GetAccount(r.Context(), jwt)
	if err != nil {
		if errors.Is(err, directory.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("resolving session account: %w", err)
	}

	return &Identity{
		UserID:   account.ID,
		UserName: account.Name,
		IsAdmin:  a.adminLabel != "" && account.HasLabel(a.adminLabel),
		Source:   SourceAppwrite,
	}, nil
}
