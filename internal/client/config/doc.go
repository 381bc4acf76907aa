// Package config loads runtime configuration for the gophboard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the gophboard HTTP API
//	-t duration per-request timeout (e.g. "5s")
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a string
// like "5s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:4000",
//	  "request_timeout": "10s"
//	}
package config
