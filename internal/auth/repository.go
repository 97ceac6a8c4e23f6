package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user has the requested ID.
var ErrUserNotFound = errors.New("user not found")

// ErrUserRevoked is returned by Revoke when the user's key is already revoked.
var ErrUserRevoked = errors.New("user already revoked")

// UserRepository persists API key users.
type UserRepository interface {
	// Create stores u and fills in its ID and CreatedAt.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByPrefix returns the non-revoked users whose key starts with prefix.
	FindByPrefix(ctx context.Context, prefix string) ([]User, error)
	// List returns every user, revoked ones included, oldest first.
	List(ctx context.Context) ([]User, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	// CountAll counts users regardless of revocation; used by admin bootstrap.
	CountAll(ctx context.Context) (int, error)
}
