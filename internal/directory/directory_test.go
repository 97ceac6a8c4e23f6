package directory_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daap14/teamdir/internal/directory"
)

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		status int
		target error
		want   bool
	}{
		{http.StatusNotFound, directory.ErrNotFound, true},
		{http.StatusUnauthorized, directory.ErrUnauthorized, true},
		{http.StatusForbidden, directory.ErrUnauthorized, true},
		{http.StatusTooManyRequests, directory.ErrRateLimited, true},
		{http.StatusInternalServerError, directory.ErrNotFound, false},
		{http.StatusNotFound, directory.ErrRateLimited, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%v", tt.status, tt.target), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &directory.APIError{Method: "GET", Path: "/teams", StatusCode: tt.status})
			assert.Equal(t, tt.want, errors.Is(err, tt.target))
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &directory.APIError{
		Method:     "GET",
		Path:       "/teams/t1/memberships",
		StatusCode: 404,
		Type:       "team_not_found",
		Message:    "Team with the requested ID could not be found.",
	}
	assert.Equal(t, "GET /teams/t1/memberships: status 404 (team_not_found): Team with the requested ID could not be found.", err.Error())

	bare := &directory.APIError{Method: "GET", Path: "/teams", StatusCode: 502}
	assert.Equal(t, "GET /teams: status 502: Bad Gateway", bare.Error())
}

func TestAccount_HasLabel(t *testing.T) {
	acc := &directory.Account{ID: "u1", Labels: []string{"beta", "admin"}}
	assert.True(t, acc.HasLabel("admin"))
	assert.False(t, acc.HasLabel("Admin"))
	assert.False(t, (&directory.Account{}).HasLabel("admin"))
}
