// Package server initializes and runs the gophboard API server: it opens the
// configured store, builds the auth and post services, and serves HTTP until
// a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/logging"
	"github.com/dmitrijs2005/gophboard/internal/server/auth"
	"github.com/dmitrijs2005/gophboard/internal/server/config"
	"github.com/dmitrijs2005/gophboard/internal/server/httpapi"
	"github.com/dmitrijs2005/gophboard/internal/server/posts"
	"github.com/dmitrijs2005/gophboard/internal/server/shared/db"
	"github.com/dmitrijs2005/gophboard/internal/server/users"
	"github.com/gin-gonic/gin"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       db.RepositoryManager
	tokens      *auth.TokenManager
	userService *users.Service
	postService *posts.Service
}

// newRepositoryManager is a seam for tests.
var newRepositoryManager = db.NewRepositoryManager

// NewApp opens the store and wires the services. Log output goes to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {

	logger := logging.New(w, c.LogLevel, c.LogFormat)

	secret := c.SecretKey
	if secret == "" {
		s, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("secret generation error: %w", err)
		}
		secret = s
		logger.Warn(ctx, "no token secret configured, using a random one; tokens will not survive a restart")
	}

	repos, err := newRepositoryManager(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens := auth.NewTokenManager([]byte(secret), c.TokenValidityDuration)
	hasher := auth.NewBcryptHasher(c.BcryptCost)

	return &App{
		config:      c,
		logger:      logger,
		repos:       repos,
		tokens:      tokens,
		userService: users.NewService(repos.Users(), hasher, tokens, c.UnifyLoginErrors),
		postService: posts.NewService(repos.Posts()),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newHTTPServer() *httpapi.HTTPServer {
	if app.config.GinMode != "" {
		gin.SetMode(app.config.GinMode)
	}

	return httpapi.NewHTTPServer(httpapi.Options{
		Address:         app.config.HTTPAddr,
		AllowedOrigins:  app.config.CORSAllowedOrigins,
		ShutdownTimeout: app.config.ShutdownTimeout,
	}, app.logger, app.userService, app.postService, app.tokens, app.repos)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.newHTTPServer().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(context.WithoutCancel(ctx), "db close error", "error", err.Error())
	}

	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return runErr
}
