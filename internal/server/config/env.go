package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/gophboard/internal/timex"
	"github.com/joho/godotenv"
)

// DotEnvFile is read, if present, before the environment is parsed. Values
// already present in the process environment win.
var DotEnvFile = ".env"

// EnvConfig lists the recognised environment variables. PORT, JWT_SECRET,
// DATABASE_FILE and CORS_ORIGIN are kept for compatibility with existing
// deployments.
type EnvConfig struct {
	Port                  string         `env:"PORT"`
	HTTPAddr              string         `env:"HTTP_ADDR"`
	DatabaseDriver        string         `env:"DATABASE_DRIVER"`
	DatabaseFile          string         `env:"DATABASE_FILE"`
	DatabaseDSN           string         `env:"DATABASE_DSN"`
	SecretKey             string         `env:"JWT_SECRET"`
	TokenValidityDuration timex.Duration `env:"TOKEN_TTL"`
	BcryptCost            int            `env:"BCRYPT_COST"`
	CORSOrigin            string         `env:"CORS_ORIGIN"`
	GinMode               string         `env:"GIN_MODE"`
	LogLevel              string         `env:"LOG_LEVEL"`
	LogFormat             string         `env:"LOG_FORMAT"`
	UnifyLoginErrors      bool           `env:"UNIFY_LOGIN_ERRORS"`
	ShutdownTimeout       timex.Duration `env:"SHUTDOWN_TIMEOUT"`
}

func parseEnv(config *Config) error {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return applyEnv(config, environMap(os.Environ()))
}

// applyEnv overlays the variables present in environ onto config.
func applyEnv(config *Config, environ map[string]string) error {
	c := &EnvConfig{
		BcryptCost:            config.BcryptCost,
		SecretKey:             config.SecretKey,
		GinMode:               config.GinMode,
		LogLevel:              config.LogLevel,
		LogFormat:             config.LogFormat,
		UnifyLoginErrors:      config.UnifyLoginErrors,
		TokenValidityDuration: timex.Duration{Duration: config.TokenValidityDuration},
		ShutdownTimeout:       timex.Duration{Duration: config.ShutdownTimeout},
	}

	if err := env.ParseWithOptions(c, env.Options{Environment: environ}); err != nil {
		return err
	}

	// HTTP_ADDR is more specific than PORT
	if c.Port != "" {
		config.HTTPAddr = ":" + c.Port
	}
	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}

	if c.DatabaseDriver != "" {
		config.DatabaseDriver = c.DatabaseDriver
	}
	if c.DatabaseFile != "" {
		config.DatabaseDriver = "sqlite"
		config.DatabaseDSN = c.DatabaseFile
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}

	if origins := splitOrigins(c.CORSOrigin); len(origins) > 0 {
		config.CORSAllowedOrigins = origins
	}

	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = c.TokenValidityDuration.Duration
	config.BcryptCost = c.BcryptCost
	config.GinMode = c.GinMode
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.UnifyLoginErrors = c.UnifyLoginErrors
	config.ShutdownTimeout = c.ShutdownTimeout.Duration

	return nil
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
