package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_base_url":        "https://www.example:9000",
		"database_path":          "/var/lib/carrental.db",
		"request_timeout":        "10s",
		"session_check_interval": 0,
		"log_level":              "warn",
	})

	t.Run("loads from flags", func(t *testing.T) {
		t.Setenv("CARRENTAL_CONFIG", "")
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-config", pathFlag})

		assert.Equal(t, "https://www.example:9000", cfg.ServerBaseURL)
		assert.Equal(t, "/var/lib/carrental.db", cfg.DatabasePath)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, time.Duration(0), cfg.SessionCheckInterval, "explicit zero disables the check")
		assert.Equal(t, "$", cfg.Currency, "unset keys keep defaults")
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("loads from environment", func(t *testing.T) {
		t.Setenv("CARRENTAL_CONFIG", pathFlag)
		cfg := &Config{}
		parseJson(cfg, nil)
		assert.Equal(t, "https://www.example:9000", cfg.ServerBaseURL)
	})

	t.Run("no config named → no changes", func(t *testing.T) {
		t.Setenv("CARRENTAL_CONFIG", "")
		cfg := &Config{ServerBaseURL: "http://defaults:1234", RequestTimeout: 42 * time.Second}
		parseJson(cfg, nil)

		assert.Equal(t, "http://defaults:1234", cfg.ServerBaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		t.Setenv("CARRENTAL_CONFIG", "")
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		t.Setenv("CARRENTAL_CONFIG", "")
		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}
