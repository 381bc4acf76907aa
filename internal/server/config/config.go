// Package config handles configuration for the server component: defaults,
// an optional JSON file, environment variables (with .env support) and
// command-line flags, applied in that order.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds runtime settings for the gophboard server.
//
// Fields:
//   - HTTPAddr: bind address of the HTTP API.
//   - DatabaseDriver: "sqlite", "postgres" or "memory".
//   - DatabaseDSN: SQLite file name or PostgreSQL DSN (pgx).
//   - SecretKey: HMAC secret for signing tokens (HS256). Empty means a random
//     per-process secret, so tokens do not survive a restart.
//   - TokenValidityDuration: lifetime of issued tokens.
//   - BcryptCost: bcrypt work factor for new password hashes.
//   - CORSAllowedOrigins: allowed origins, "*" allows any.
//   - UnifyLoginErrors: report unknown users as a wrong password.
type Config struct {
	HTTPAddr              string
	DatabaseDriver        string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	BcryptCost            int
	CORSAllowedOrigins    []string
	GinMode               string
	LogLevel              string
	LogFormat             string
	UnifyLoginErrors      bool
	ShutdownTimeout       time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":4000"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "data.sqlite"
	c.SecretKey = ""
	c.TokenValidityDuration = 7 * 24 * time.Hour
	c.BcryptCost = 10
	c.CORSAllowedOrigins = []string{"*"}
	c.GinMode = "release"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.UnifyLoginErrors = false
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
// args are the program arguments without the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("http address is empty")
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative")
	}
	switch c.DatabaseDriver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unknown database driver %q", c.DatabaseDriver)
	}
	return nil
}

// splitOrigins turns "a, b,c" into ["a" "b" "c"], dropping empty items.
func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
