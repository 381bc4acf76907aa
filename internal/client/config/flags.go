package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophboard/internal/flagx"
	"github.com/dmitrijs2005/gophboard/internal/timex"
)

// parseFlags populates Config from -a (base URL), -t (request timeout) and
// -i (online check interval).
// Other flags are filtered out with flagx.FilterArgs beforehand.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-i"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.ServerBaseURL, "a", config.ServerBaseURL, "base URL of the server")
	fs.Func("t", "request timeout", func(s string) error {
		d, err := timex.ParseDuration(s)
		if err != nil {
			return err
		}
		config.RequestTimeout = d
		return nil
	})

	fs.Func("i", "online check interval", func(s string) error {
		d, err := timex.ParseDuration(s)
		if err != nil {
			return err
		}
		config.OnlineCheckInterval = d
		return nil
	})

	return fs.Parse(args)
}
