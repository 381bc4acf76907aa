package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/client/client"
	"github.com/dmitrijs2005/gophboard/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	mode     Mode
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return newApp(c, api, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, api: api, reader: bufio.NewReader(in), out: out}
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits, stdin is closed or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintf(a.out, "Welcome to gophboard CLI, server %s (type 'help' for commands)\n", a.config.ServerBaseURL)

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	a.userName = name
	a.mu.Unlock()
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := strings.TrimSpace(a.userName + " " + string(a.mode))
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Health(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Health checks the server on demand and updates the mode.
func (a *App) Health(ctx context.Context) error {
	if err := a.api.Health(ctx); err != nil {
		a.setMode(ModeOffline)
		return err
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Server is up")
	return nil
}
