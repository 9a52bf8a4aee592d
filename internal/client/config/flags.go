package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/carrental/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   marketplace API base URL
//	-d string   path to the local SQLite database
//	-t int      request timeout (seconds)
//	-i int      session check interval (seconds, 0 disables)
//	-l string   log level
//
// Only the flags listed above are considered (see flagx.FilterArgs); a
// malformed value panics.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "marketplace API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	checkInterval := fs.Int("i", int(cfg.SessionCheckInterval.Seconds()), "session check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.SessionCheckInterval = time.Duration(*checkInterval) * time.Second
}
