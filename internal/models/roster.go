package models

import (
	"errors"
	"fmt"
	"strings"
)

// Roster is the fixed, ordered set of users allowed to create and answer
// checklists. It is set at deployment time and never changes while the
// process runs.
type Roster struct {
	users []string
}

// NewRoster builds a roster from user identifiers in display order.
// It rejects an empty roster, blank names and duplicates.
func NewRoster(users ...string) (Roster, error) {
	if len(users) == 0 {
		return Roster{}, errors.New("roster must have at least one user")
	}
	seen := make(map[string]bool, len(users))
	out := make([]string, 0, len(users))
	for _, u := range users {
		u = strings.TrimSpace(u)
		if u == "" {
			return Roster{}, errors.New("roster user cannot be blank")
		}
		if seen[u] {
			return Roster{}, fmt.Errorf("duplicate roster user %q", u)
		}
		seen[u] = true
		out = append(out, u)
	}
	return Roster{users: out}, nil
}

// Users returns a copy of the roster in order.
func (r Roster) Users() []string {
	out := make([]string, len(r.users))
	copy(out, r.users)
	return out
}

// Len returns the number of roster members.
func (r Roster) Len() int {
	return len(r.users)
}

// Contains reports whether user is a roster member.
func (r Roster) Contains(user string) bool {
	for _, u := range r.users {
		if u == user {
			return true
		}
	}
	return false
}

// Default returns the first roster member, the acting user when none was chosen.
func (r Roster) Default() string {
	if len(r.users) == 0 {
		return ""
	}
	return r.users[0]
}
