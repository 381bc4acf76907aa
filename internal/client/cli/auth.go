package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Signup prompts for username, email and password and creates an account.
// On success the client is logged in as the new user.
func (a *App) Signup(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Signup(ctx, username, email, string(password))
	if err != nil {
		return err
	}

	a.setUserName(user.Username)
	fmt.Fprintf(a.out, "Welcome, %s! Your account id is %d\n", user.Username, user.ID)
	return nil
}

// Login prompts for a username or email and a password.
func (a *App) Login(ctx context.Context) error {
	loginID, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Login(ctx, loginID, string(password))
	if err != nil {
		return err
	}

	a.setUserName(user.Username)
	fmt.Fprintf(a.out, "Logged in as %s\n", user.Username)
	return nil
}

// Logout drops the token held in memory.
func (a *App) Logout(_ context.Context) error {
	a.api.Logout()
	a.setUserName("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Me prints the identity the server read from the current token.
func (a *App) Me(ctx context.Context) error {
	p, err := a.api.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:       %d\nusername: %s\nemail:    %s\nexpires:  %s\n",
		p.ID, p.Username, p.Email, p.Expires().Format(time.RFC1123))
	return nil
}
