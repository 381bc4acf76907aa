// Package httpapi exposes the auth and post services over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/logging"
	"github.com/dmitrijs2005/gophboard/internal/server/auth"
	"github.com/dmitrijs2005/gophboard/internal/server/posts"
	"github.com/dmitrijs2005/gophboard/internal/server/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// TokenVerifier checks bearer tokens for the auth gate.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options holds the transport settings of the server.
type Options struct {
	Address         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	ReadyTimeout    time.Duration
}

type HTTPServer struct {
	opts    Options
	users   *users.Service
	posts   *posts.Service
	tokens  TokenVerifier
	store   Pinger
	logger  logging.Logger
	handler http.Handler
}

func NewHTTPServer(opts Options, l logging.Logger, us *users.Service, ps *posts.Service, tv TokenVerifier, store Pinger) *HTTPServer {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = 2 * time.Second
	}

	s := &HTTPServer{
		opts:   opts,
		users:  us,
		posts:  ps,
		tokens: tv,
		store:  store,
		logger: l.With("module", "http_server"),
	}
	s.handler = s.Router()
	return s
}

// Handler returns the routed gin engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Router builds the gin engine with all middleware and routes.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.requestID(), s.accessLog(), s.recovery())
	r.Use(cors.New(corsConfig(s.opts.AllowedOrigins)))

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.GET("/ready", s.ready)

	api.POST("/auth/signup", s.signup)
	api.POST("/auth/login", s.login)

	api.GET("/me", s.requireAuth(), s.me)

	api.GET("/posts", s.listPosts)
	api.POST("/posts", s.createPost)

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowHeaders = []string{"Origin", "Content-Type", common.AuthorizationHeaderName, common.RequestIDHeaderName}
	c.ExposeHeaders = []string{common.RequestIDHeaderName}
	return c
}

// Run listens on the configured address and serves until ctx is cancelled,
// then drains in-flight requests for at most ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}
