package directory

// Team is a team as returned by the directory service.
type Team struct {
	ID   string
	Name string
}

// Membership associates a user with a team and carries its own identifier.
// Confirm is false while the invitation is still pending.
type Membership struct {
	ID      string
	UserID  string
	TeamID  string
	Roles   []string
	Confirm bool
}

// Account is the directory user behind a session JWT.
type Account struct {
	ID     string
	Name   string
	Email  string
	Labels []string
}

// HasLabel reports whether the account carries the given label.
func (a *Account) HasLabel(label string) bool {
	for _, l := range a.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// ConnectivityStatus represents the result of a directory connectivity check.
type ConnectivityStatus struct {
	Connected bool
	Version   string
}
