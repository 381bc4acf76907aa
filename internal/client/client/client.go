package client

import (
	"context"
)

type Client interface {
	Signup(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, loginID, password string) (*User, error)
	Logout()
	LoggedIn() bool
	Me(ctx context.Context) (*Profile, error)
	Health(ctx context.Context) error
	ListPosts(ctx context.Context) ([]Post, error)
	CreatePost(ctx context.Context, title string, content *string) (*Post, error)
}
