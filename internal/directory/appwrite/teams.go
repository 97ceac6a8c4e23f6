package appwrite

import (
	"context"
	"net/url"

	"github.com/daap14/teamdir/internal/directory"
)

// Timestamps and prefs are not decoded; only identity and name are used.
type teamDocument struct {
	ID   string `json:"$id"`
	Name string `json:"name"`
}

type teamList struct {
	Total int            `json:"total"`
	Teams []teamDocument `json:"teams"`
}

type membershipDocument struct {
	ID      string   `json:"$id"`
	UserID  string   `json:"userId"`
	TeamID  string   `json:"teamId"`
	Roles   []string `json:"roles"`
	Confirm bool     `json:"confirm"`
}

type membershipList struct {
	Total       int                  `json:"total"`
	Memberships []membershipDocument `json:"memberships"`
}

// ListTeams returns the project's teams in the order the directory lists them.
func (c *Client) ListTeams(ctx context.Context) ([]directory.Team, error) {
	list, err := get[teamList](ctx, c, "/teams", c.serverHeader())
	if err != nil {
		return nil, err
	}

	teams := make([]directory.Team, 0, len(list.Teams))
	for _, t := range list.Teams {
		teams = append(teams, directory.Team{ID: t.ID, Name: t.Name})
	}
	return teams, nil
}

// ListMemberships returns the memberships of a single team.
func (c *Client) ListMemberships(ctx context.Context, teamID string) ([]directory.Membership, error) {
	path := "/teams/" + url.PathEscape(teamID) + "/memberships"
	list, err := get[membershipList](ctx, c, path, c.serverHeader())
	if err != nil {
		return nil, err
	}

	memberships := make([]directory.Membership, 0, len(list.Memberships))
	for _, m := range list.Memberships {
		memberships = append(memberships, directory.Membership{
			ID:      m.ID,
			UserID:  m.UserID,
			TeamID:  m.TeamID,
			Roles:   m.Roles,
			Confirm: m.Confirm,
		})
	}
	return memberships, nil
}
