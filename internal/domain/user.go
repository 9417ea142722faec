package domain

import "strings"

type User struct {
	ID       int
	Name     string
	Username string
	Role     Role
}

func (u User) IsWorker() bool {
	return u.Role == RoleWorker
}

func (u User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// MatchesUsername reports whether username identifies u, ignoring case and
// surrounding whitespace.
func (u User) MatchesUsername(username string) bool {
	return strings.EqualFold(u.Username, strings.TrimSpace(username))
}

// MatchesName reports whether term is a case-insensitive substring of the
// user's display name. An empty term matches everyone.
func (u User) MatchesName(term string) bool {
	return strings.Contains(strings.ToLower(u.Name), strings.ToLower(strings.TrimSpace(term)))
}

// Workers returns the users with the worker role, preserving order.
func Workers(users []User) []User {
	var out []User
	for _, u := range users {
		if u.IsWorker() {
			out = append(out, u)
		}
	}
	return out
}
