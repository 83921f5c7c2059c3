package domain

import "time"

// User is a stored credential: login identity, password hash and granted roles.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Enabled      bool
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the user was granted role.
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	return ContainsRole(u.Roles, role)
}
