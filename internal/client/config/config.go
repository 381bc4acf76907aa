package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the gophboard CLI.
type Config struct {
	ServerBaseURL       string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with defaults matching a locally started server.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:4000"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
