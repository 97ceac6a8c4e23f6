package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daap14/teamdir/internal/auth"
)

const testBcryptCost = 4 // low cost for fast tests

// --- In-memory user repository ---

type memUserRepo struct {
	mu       sync.Mutex
	users    []auth.User
	findErr  error
	countErr error
}

func (m *memUserRepo) Create(_ context.Context, u *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	m.users = append(m.users, *u)
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *memUserRepo) FindByPrefix(_ context.Context, prefix string) ([]auth.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []auth.User{}
	for _, u := range m.users {
		if u.ApiKeyPrefix == prefix && u.RevokedAt == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) List(_ context.Context) ([]auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]auth.User{}, m.users...), nil
}

func (m *memUserRepo) Revoke(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			if m.users[i].RevokedAt != nil {
				return auth.ErrUserRevoked
			}
			now := time.Now().UTC()
			m.users[i].RevokedAt = &now
			return nil
		}
	}
	return auth.ErrUserNotFound
}

func (m *memUserRepo) CountAll(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func newService() (*auth.Service, *memUserRepo) {
	repo := &memUserRepo{}
	return auth.NewService(repo, testBcryptCost), repo
}

// --- GenerateKey Tests ---

func TestGenerateKey_Format(t *testing.T) {
	svc, _ := newService()

	rawKey, prefix, hash, err := svc.GenerateKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rawKey, "tdir_"), "raw key should start with tdir_")
	assert.Len(t, prefix, 8, "prefix should be 8 characters")
	assert.Equal(t, rawKey[:8], prefix, "prefix should be first 8 chars of raw key")
	assert.NotEmpty(t, hash, "hash should not be empty")

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawKey))
	assert.NoError(t, err, "hash should verify against raw key")
}

func TestGenerateKey_Uniqueness(t *testing.T) {
	svc, _ := newService()

	key1, _, _, err := svc.GenerateKey()
	require.NoError(t, err)
	key2, _, _, err := svc.GenerateKey()
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2, "generated keys should be unique")
}

// --- Authenticate Tests ---

func TestAuthenticate_ValidKey(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	u, rawKey, err := svc.CreateUser(ctx, "ops", true)
	require.NoError(t, err)

	identity, err := svc.Authenticate(ctx, rawKey)

	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), identity.UserID)
	assert.Equal(t, "ops", identity.UserName)
	assert.True(t, identity.IsAdmin)
	assert.Equal(t, auth.SourceAPIKey, identity.Source)
}

func TestAuthenticate_NonAdmin(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, rawKey, err := svc.CreateUser(ctx, "viewer", false)
	require.NoError(t, err)

	identity, err := svc.Authenticate(ctx, rawKey)

	require.NoError(t, err)
	assert.False(t, identity.IsAdmin)
}

func TestAuthenticate_InvalidKey(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, rawKey, err := svc.CreateUser(ctx, "ops", true)
	require.NoError(t, err)

	// same prefix, different secret
	_, err = svc.Authenticate(ctx, rawKey[:8]+"tampered")
	assert.ErrorIs(t, err, auth.ErrInvalidKey)

	_, err = svc.Authenticate(ctx, "short")
	assert.ErrorIs(t, err, auth.ErrInvalidKey)
}

func TestAuthenticate_RevokedKey(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	u, rawKey, err := svc.CreateUser(ctx, "ops", true)
	require.NoError(t, err)
	require.NoError(t, repo.Revoke(ctx, u.ID))

	_, err = svc.Authenticate(ctx, rawKey)

	assert.ErrorIs(t, err, auth.ErrInvalidKey)
}

func TestAuthenticate_RepositoryFailure(t *testing.T) {
	svc, repo := newService()
	repo.findErr = errors.New("connection refused")

	_, err := svc.Authenticate(context.Background(), "tdir_abcdefghijkl")

	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidKey)
	assert.ErrorContains(t, err, "connection refused")
}

// --- AuthenticateRequest Tests ---

func TestAuthenticateRequest(t *testing.T) {
	svc, _ := newService()
	_, rawKey, err := svc.CreateUser(context.Background(), "ops", true)
	require.NoError(t, err)

	assert.Equal(t, auth.APIKeyHeader, svc.Header())

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := svc.AuthenticateRequest(req)
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
	})

	t.Run("invalid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(auth.APIKeyHeader, "tdir_invalid000000000000")
		_, err := svc.AuthenticateRequest(req)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("valid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(auth.APIKeyHeader, rawKey)
		identity, err := svc.AuthenticateRequest(req)
		require.NoError(t, err)
		assert.True(t, identity.IsAdmin)
	})
}

// --- BootstrapAdmin Tests ---

func TestBootstrapAdmin_EmptyTable(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	rawKey, err := svc.BootstrapAdmin(ctx)

	require.NoError(t, err)
	require.NotEmpty(t, rawKey)
	require.Len(t, repo.users, 1)
	assert.Equal(t, "admin", repo.users[0].Name)
	assert.True(t, repo.users[0].IsAdmin)

	identity, err := svc.Authenticate(ctx, rawKey)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin)
}

func TestBootstrapAdmin_UsersExist(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	_, _, err := svc.CreateUser(ctx, "existing", false)
	require.NoError(t, err)

	rawKey, err := svc.BootstrapAdmin(ctx)

	require.NoError(t, err)
	assert.Empty(t, rawKey)
	assert.Len(t, repo.users, 1)
}

func TestBootstrapAdmin_CountFails(t *testing.T) {
	svc, repo := newService()
	repo.countErr = errors.New("boom")

	_, err := svc.BootstrapAdmin(context.Background())

	assert.ErrorContains(t, err, "counting users")
}
