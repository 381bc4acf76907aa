package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Posts(ctx context.Context) error
	AddPost(ctx context.Context) error
	Health(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF or when the user types "exit" or "quit". Errors returned
// by handlers are printed and the loop keeps going.
//
//	Not logged in:  help, signup, login, posts, health, exit
//	Logged in:      help, me, posts, addpost, health, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("gb %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, posts, addpost, health, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, posts, health, exit")
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "me":
			cmdErr = a.Me(ctx)

		case "p", "posts":
			cmdErr = a.Posts(ctx)

		case "addpost":
			cmdErr = a.AddPost(ctx)

		case "health":
			cmdErr = a.Health(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
