package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophboard/internal/flagx"
	"github.com/dmitrijs2005/gophboard/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration so
// both "90m"/"7d" strings and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr              string         `json:"http_addr"`
	DatabaseDriver        string         `json:"database_driver"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BcryptCost            int            `json:"bcrypt_cost"`
	CORSAllowedOrigins    []string       `json:"cors_allowed_origins"`
	GinMode               string         `json:"gin_mode"`
	LogLevel              string         `json:"log_level"`
	LogFormat             string         `json:"log_format"`
	UnifyLoginErrors      bool           `json:"unify_login_errors"`
	ShutdownTimeout       timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the JSON file named by -c/-config onto config. Keys
// missing from the file keep their current values. Without the flag nothing
// is loaded.
func parseJson(config *Config, args []string) error {

	jsonConfigFile := flagx.ConfigFilePath(args)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return err
	}

	c := &JsonConfig{
		HTTPAddr:              config.HTTPAddr,
		DatabaseDriver:        config.DatabaseDriver,
		DatabaseDSN:           config.DatabaseDSN,
		SecretKey:             config.SecretKey,
		TokenValidityDuration: timex.Duration{Duration: config.TokenValidityDuration},
		BcryptCost:            config.BcryptCost,
		CORSAllowedOrigins:    config.CORSAllowedOrigins,
		GinMode:               config.GinMode,
		LogLevel:              config.LogLevel,
		LogFormat:             config.LogFormat,
		UnifyLoginErrors:      config.UnifyLoginErrors,
		ShutdownTimeout:       timex.Duration{Duration: config.ShutdownTimeout},
	}

	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	config.HTTPAddr = c.HTTPAddr
	config.DatabaseDriver = c.DatabaseDriver
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = c.TokenValidityDuration.Duration
	config.BcryptCost = c.BcryptCost
	config.CORSAllowedOrigins = c.CORSAllowedOrigins
	config.GinMode = c.GinMode
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.UnifyLoginErrors = c.UnifyLoginErrors
	config.ShutdownTimeout = c.ShutdownTimeout.Duration

	return nil
}
