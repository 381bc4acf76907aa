package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		check   func(t *testing.T, c *Config)
	}{
		{
			name:    "empty environment keeps defaults",
			environ: map[string]string{},
			check: func(t *testing.T, c *Config) {
				var want Config
				want.LoadDefaults()
				assert.Equal(t, &want, c)
			},
		},
		{
			name:    "PORT sets the listen port",
			environ: map[string]string{"PORT": "8080"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ":8080", c.HTTPAddr)
			},
		},
		{
			name:    "HTTP_ADDR beats PORT",
			environ: map[string]string{"PORT": "8080", "HTTP_ADDR": "127.0.0.1:9"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "127.0.0.1:9", c.HTTPAddr)
			},
		},
		{
			name:    "DATABASE_FILE selects sqlite",
			environ: map[string]string{"DATABASE_DRIVER": "postgres", "DATABASE_FILE": "/var/lib/board.sqlite"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "sqlite", c.DatabaseDriver)
				assert.Equal(t, "/var/lib/board.sqlite", c.DatabaseDSN)
			},
		},
		{
			name: "everything else",
			environ: map[string]string{
				"JWT_SECRET":         "s3cret",
				"TOKEN_TTL":          "1d",
				"BCRYPT_COST":        "11",
				"CORS_ORIGIN":        "http://a.test, http://b.test",
				"GIN_MODE":           "debug",
				"LOG_LEVEL":          "debug",
				"LOG_FORMAT":         "text",
				"UNIFY_LOGIN_ERRORS": "true",
				"SHUTDOWN_TIMEOUT":   "30s",
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "s3cret", c.SecretKey)
				assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
				assert.Equal(t, 11, c.BcryptCost)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSAllowedOrigins)
				assert.Equal(t, "debug", c.GinMode)
				assert.Equal(t, "debug", c.LogLevel)
				assert.Equal(t, "text", c.LogFormat)
				assert.True(t, c.UnifyLoginErrors)
				assert.Equal(t, 30*time.Second, c.ShutdownTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			require.NoError(t, applyEnv(&c, tt.environ))
			tt.check(t, &c)
		})
	}
}

func TestApplyEnv_BadValues(t *testing.T) {
	for _, environ := range []map[string]string{
		{"BCRYPT_COST": "ten"},
		{"TOKEN_TTL": "soon"},
		{"UNIFY_LOGIN_ERRORS": "maybe"},
	} {
		var c Config
		c.LoadDefaults()
		assert.Error(t, applyEnv(&c, environ), environ)
	}
}

func TestEnvironMap(t *testing.T) {
	m := environMap([]string{"A=1", "B=x=y", "broken"})
	assert.Equal(t, map[string]string{"A": "1", "B": "x=y"}, m)
}
