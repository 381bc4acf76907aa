// Package common defines shared constants, helpers and sentinel errors used
// across the gophboard server and client. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Signup and login errors.
	ErrMissingFields      = errors.New("missing fields")
	ErrWeakPassword       = errors.New("weak password")
	ErrDuplicateAccount   = errors.New("username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid password")

	// Auth gate errors. Expired, malformed and badly signed tokens all map to
	// ErrInvalidToken.
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")

	// Post errors.
	ErrTitleRequired = errors.New("title is required")
)
