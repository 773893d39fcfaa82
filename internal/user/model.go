// Package user provides the user model, password hashing, and the
// SQLite-backed credential store.
package user

import "time"

// Role is the closed set of roles a user can hold. Keeping it a distinct
// type (rather than a free-form string) makes authorization checks
// typo-proof at route-registration time.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a full identity record, including the password hash.
// It is never serialized to clients directly; see Public.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public is the subset of a user record safe to return to clients.
type Public struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Public returns the client-safe projection of u.
func (u *User) Public() Public {
	return Public{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
