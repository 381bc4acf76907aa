package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophboard/internal/flagx"
	"github.com/dmitrijs2005/gophboard/internal/timex"
)

// JsonConfig is the on-disk form of Config.
type JsonConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays the file named by -c/-config onto config; keys missing
// from the file keep their values.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{
		ServerBaseURL:       config.ServerBaseURL,
		RequestTimeout:      timex.Duration{Duration: config.RequestTimeout},
		OnlineCheckInterval: timex.Duration{Duration: config.OnlineCheckInterval},
	}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	config.ServerBaseURL = c.ServerBaseURL
	config.RequestTimeout = c.RequestTimeout.Duration
	config.OnlineCheckInterval = c.OnlineCheckInterval.Duration
	return nil
}
