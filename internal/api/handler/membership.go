package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/daap14/teamdir/internal/api/middleware"
	"github.com/daap14/teamdir/internal/api/response"
	"github.com/daap14/teamdir/internal/lookup"
)

// MembershipFinder resolves the teams a user belongs to.
type MembershipFinder interface {
	FindUserTeams(ctx context.Context, userID string) ([]lookup.UserTeamMembership, error)
}

// requestedUserID extracts userId from a decoded lookup body. Any body that is
// not an object with a string userId yields "", which matches no team.
func requestedUserID(body any) string {
	fields, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	userID, _ := fields["userId"].(string)
	return userID
}

// MembershipHandler serves the admin team membership lookup.
type MembershipHandler struct {
	finder MembershipFinder
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(finder MembershipFinder) *MembershipHandler {
	return &MembershipHandler{finder: finder}
}

// Lookup handles POST /admin/teams/memberships.
func (h *MembershipHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	userID := requestedUserID(body)

	memberships, err := h.finder.FindUserTeams(r.Context(), userID)
	if err != nil {
		slog.Error("failed to look up team memberships", "error", err, "userId", userID, "requestId", requestID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to look up team memberships", requestID)
		return
	}

	if identity := middleware.GetIdentity(r.Context()); identity != nil {
		slog.Info("team memberships looked up",
			"userId", userID,
			"matches", len(memberships),
			"requestedBy", identity.UserID,
			"requestId", requestID,
		)
	}

	if memberships == nil {
		memberships = []lookup.UserTeamMembership{}
	}

	response.SuccessList(w, http.StatusOK, memberships, len(memberships), requestID)
}
