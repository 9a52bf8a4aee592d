package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/carrental/internal/flagx"
	"github.com/dmitrijs2005/carrental/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer and zero
// fields are treated as "not set" so a partial file only overrides what it
// names.
type JsonConfig struct {
	ServerBaseURL        string          `json:"server_base_url"`
	DatabasePath         string          `json:"database_path"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	SessionCheckInterval *timex.Duration `json:"session_check_interval"`
	Currency             string          `json:"currency"`
	LogLevel             string          `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config
// in args or by $CARRENTAL_CONFIG. It does nothing when no file is named and
// panics on read or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionCheckInterval != nil {
		cfg.SessionCheckInterval = jc.SessionCheckInterval.Duration
	}
	if jc.Currency != "" {
		cfg.Currency = jc.Currency
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
