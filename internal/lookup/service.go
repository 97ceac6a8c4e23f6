// Package lookup finds the teams a user belongs to by scanning every team's
// memberships in the directory.
package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/daap14/teamdir/internal/directory"
)

// UserTeamMembership is one team the user belongs to and the membership that proves it.
type UserTeamMembership struct {
	TeamID       string `json:"teamId"`
	MembershipID string `json:"membershipId"`
}

// Service resolves a user's team memberships against the directory.
type Service struct {
	dir         directory.TeamsDirectory
	concurrency int
}

// Option configures the Service.
type Option func(*Service)

// WithConcurrency sets how many membership listings may be in flight at once.
// Values below 1 are treated as 1, which lists teams strictly one after another.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n < 1 {
			n = 1
		}
		s.concurrency = n
	}
}

// NewService creates a new lookup Service.
func NewService(dir directory.TeamsDirectory, opts ...Option) *Service {
	s := &Service{dir: dir, concurrency: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindUserTeams returns, in directory team order, every team holding a
// membership for userID together with that membership's ID. Only the first
// matching membership of a team is reported. Any directory failure aborts the
// lookup and no partial result is returned.
func (s *Service) FindUserTeams(ctx context.Context, userID string) ([]UserTeamMembership, error) {
	teams, err := s.dir.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}

	// matches[i] holds the membership found in teams[i], if any.
	matches := make([]*UserTeamMembership, len(teams))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range teams {
		i := i // per-iteration copy for pre-Go 1.22 loop semantics
		teamID, teamName := teams[i].ID, teams[i].Name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			memberships, err := s.dir.ListMemberships(gctx, teamID)
			if err != nil {
				return fmt.Errorf("listing memberships for team %s: %w", teamID, err)
			}

			if m, ok := firstMatch(memberships, userID); ok {
				slog.Debug("team membership matched",
					"userId", userID,
					"teamId", teamID,
					"teamName", teamName,
					"membershipId", m.ID,
					"roles", m.Roles,
					"confirmed", m.Confirm,
				)
				matches[i] = &UserTeamMembership{TeamID: teamID, MembershipID: m.ID}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]UserTeamMembership, 0, len(teams))
	for _, m := range matches {
		if m != nil {
			result = append(result, *m)
		}
	}

	slog.Debug("membership lookup complete", "userId", userID, "teams", len(teams), "matches", len(result))

	return result, nil
}

// firstMatch returns the first membership held by userID. An empty userID
// never matches.
func firstMatch(memberships []directory.Membership, userID string) (directory.Membership, bool) {
	if userID == "" {
		return directory.Membership{}, false
	}
	for _, m := range memberships {
		if m.UserID == userID {
			return m, true
		}
	}
	return directory.Membership{}, false
}
