package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daap14/teamdir/internal/auth"
	"github.com/daap14/teamdir/internal/directory"
)

type mockAccounts struct {
	getFn func(ctx context.Context, jwt string) (*directory.Account, error)
	calls int
}

func (m *mockAccounts) GetAccount(ctx context.Context, jwt string) (*directory.Account, error) {
	m.calls++
	return m.getFn(ctx, jwt)
}

func sessionRequest(jwt string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/teams/memberships", nil)
	if jwt != "" {
		req.Header.Set(auth.SessionJWTHeader, jwt)
	}
	return req
}

func TestSessionAuthenticator_AdminLabel(t *testing.T) {
	accounts := &mockAccounts{getFn: func(_ context.Context, jwt string) (*directory.Account, error) {
		assert.Equal(t, "jwt-1", jwt)
		return &directory.Account{ID: "u1", Name: "Ada", Labels: []string{"admin"}}, nil
	}}
	a := auth.NewSessionAuthenticator(accounts, "admin")

	identity, err := a.AuthenticateRequest(sessionRequest("jwt-1"))

	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, "Ada", identity.UserName)
	assert.True(t, identity.IsAdmin)
	assert.Equal(t, auth.SourceAppwrite, identity.Source)
	assert.Equal(t, auth.SessionJWTHeader, a.Header())
}

func TestSessionAuthenticator_WithoutLabel(t *testing.T) {
	accounts := &mockAccounts{getFn: func(_ context.Context, _ string) (*directory.Account, error) {
		return &directory.Account{ID: "u2", Labels: []string{"beta"}}, nil
	}}
	a := auth.NewSessionAuthenticator(accounts, "admin")

	identity, err := a.AuthenticateRequest(sessionRequest("jwt-2"))

	require.NoError(t, err)
	assert.False(t, identity.IsAdmin)
}

func TestSessionAuthenticator_MissingJWT(t *testing.T) {
	accounts := &mockAccounts{}
	a := auth.NewSessionAuthenticator(accounts, "admin")

	_, err := a.AuthenticateRequest(sessionRequest(""))

	assert.ErrorIs(t, err, auth.ErrMissingCredentials)
	assert.Equal(t, 0, accounts.calls)
}

func TestSessionAuthenticator_RejectedJWT(t *testing.T) {
	accounts := &mockAccounts{getFn: func(_ context.Context, _ string) (*directory.Account, error) {
		return nil, &directory.APIError{Method: "GET", Path: "/account", StatusCode: http.StatusUnauthorized}
	}}
	a := auth.NewSessionAuthenticator(accounts, "admin")

	_, err := a.AuthenticateRequest(sessionRequest("expired"))

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSessionAuthenticator_DirectoryDown(t *testing.T) {
	accounts := &mockAccounts{getFn: func(_ context.Context, _ string) (*directory.Account, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}
	a := auth.NewSessionAuthenticator(accounts, "admin")

	_, err := a.AuthenticateRequest(sessionRequest("jwt"))

	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, auth.ErrMissingCredentials)
}
