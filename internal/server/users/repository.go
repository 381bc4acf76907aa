// Package users implements account storage and the signup/login flow.
package users

import (
	"context"
)

// Repository persists users. Create reports common.ErrorAlreadyExists when
// the username or email is taken (case-insensitive); GetUserByLoginID reports
// common.ErrorNotFound when neither a username nor an email matches.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByLoginID(ctx context.Context, loginID string) (*User, error)
}
