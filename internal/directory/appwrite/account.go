package appwrite

import (
	"context"
	"net/http"

	"github.com/daap14/teamdir/internal/directory"
)

type accountDocument struct {
	ID     string   `json:"$id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Labels []string `json:"labels"`
}

type healthVersion struct {
	Version string `json:"version"`
}

// GetAccount returns the account that owns the session JWT. The API key is
// not sent, so the directory evaluates the request as that user.
func (c *Client) GetAccount(ctx context.Context, jwt string) (*directory.Account, error) {
	h := http.Header{}
	h.Set(headerJWT, jwt)

	doc, err := get[accountDocument](ctx, c, "/account", h)
	if err != nil {
		return nil, err
	}

	return &directory.Account{
		ID:     doc.ID,
		Name:   doc.Name,
		Email:  doc.Email,
		Labels: doc.Labels,
	}, nil
}

// CheckConnectivity verifies that the directory is reachable and returns its version.
func (c *Client) CheckConnectivity(ctx context.Context) directory.ConnectivityStatus {
	v, err := get[healthVersion](ctx, c, "/health/version", nil)
	if err != nil {
		return directory.ConnectivityStatus{Connected: false}
	}
	return directory.ConnectivityStatus{Connected: true, Version: v.Version}
}
