// Package config loads runtime configuration for the carrental client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c/-config, or by $CARRENTAL_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations accept either strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "https://cars.example.com",
//	  "database_path": "/home/me/.carrental/state.db",
//	  "request_timeout": "15s",
//	  "session_check_interval": "5m",
//	  "currency": "€",
//	  "log_level": "debug"
//	}
package config
