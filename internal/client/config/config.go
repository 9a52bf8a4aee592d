package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the carrental client.
//
// Fields:
//   - ServerBaseURL: scheme://host[:port] of the marketplace API.
//   - DatabasePath: SQLite file holding the persisted credential and catalog cache.
//   - RequestTimeout: per-request HTTP timeout.
//   - SessionCheckInterval: how often an authenticated session is re-resolved;
//     zero disables the periodic check.
//   - Currency: symbol printed next to daily prices.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerBaseURL        string
	DatabasePath         string
	RequestTimeout       time.Duration
	SessionCheckInterval time.Duration
	Currency             string
	LogLevel             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:3000"
	c.DatabasePath = "carrental.db"
	c.RequestTimeout = 15 * time.Second
	c.SessionCheckInterval = 5 * time.Minute
	c.Currency = "$"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
