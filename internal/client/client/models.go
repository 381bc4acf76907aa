package client

import "time"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Profile is the verified token payload returned by GET /api/me.
type Profile struct {
	User
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

// Expires returns the token expiry as a time.
func (p Profile) Expires() time.Time {
	return time.Unix(p.ExpiresAt, 0)
}

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
