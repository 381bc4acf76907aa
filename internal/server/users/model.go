package users

import (
	"time"

	"golang.org/x/text/cases"
)

// User is a stored account. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the part of a User returned to clients.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public strips the password hash and timestamps.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// LoginKey folds s the way usernames, emails and login ids are compared.
// Stores index and look up this value, so uniqueness does not depend on the
// database's own lower().
func LoginKey(s string) string {
	return cases.Fold().String(s)
}
