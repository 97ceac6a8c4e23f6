package auth

import (
	"time"

	"github.com/google/uuid"
)

// Identity sources.
const (
	SourceAPIKey   = "apikey"
	SourceAppwrite = "appwrite"
)

// User represents a row in the users table.
type User struct {
	ID           uuid.UUID
	Name         string
	IsAdmin      bool
	ApiKeyPrefix string
	ApiKeyHash   string
	CreatedAt    time.Time
	RevokedAt    *time.Time
}

// Identity is stored in the request context after authentication.
type Identity struct {
	UserID   string
	UserName string
	IsAdmin  bool
	Source   string // SourceAPIKey or SourceAppwrite
}
