package config

import (
	"flag"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophboard/internal/flagx"
	"github.com/dmitrijs2005/gophboard/internal/timex"
)

var serverFlags = []string{"-a", "-D", "-d", "-s", "-t", "-b", "-o", "-m", "-l", "-f", "-u", "-w"}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":4000")
//	-D string   database driver: sqlite, postgres or memory
//	-d string   database DSN (SQLite file or PostgreSQL URL)
//	-s string   token signing secret
//	-t duration token validity (e.g., "7d", "12h")
//	-b int      bcrypt cost
//	-o string   comma separated CORS origins
//	-m string   gin mode (debug, release, test)
//	-l string   log level
//	-f string   log format (json, text)
//	-u bool     unify login errors; pass as -u=true
//	-w duration graceful shutdown timeout
//
// Unknown flags are filtered out first with flagx.FilterArgs, so -c/-config
// and flags of other components do not break parsing.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "D", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.Func("t", "token validity duration", func(s string) error {
		d, err := timex.ParseDuration(s)
		if err != nil {
			return err
		}
		config.TokenValidityDuration = d
		return nil
	})
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "CORS allowed origins")
	fs.StringVar(&config.GinMode, "m", config.GinMode, "gin mode")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")
	fs.BoolVar(&config.UnifyLoginErrors, "u", config.UnifyLoginErrors, "unify login errors")
	fs.Func("w", "shutdown timeout", func(s string) error {
		d, err := timex.ParseDuration(s)
		if err != nil {
			return err
		}
		config.ShutdownTimeout = d
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return err
	}

	if o := splitOrigins(*origins); len(o) > 0 {
		config.CORSAllowedOrigins = o
	}

	return nil
}
