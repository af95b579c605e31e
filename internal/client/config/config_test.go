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

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIBaseURL)
	assert.Equal(t, "docshelf.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
}

func TestParseEnvOverridesDefaults(t *testing.T) {
	t.Setenv("DOCSHELF_API_URL", "https://docs.example.com")
	t.Setenv("DOCSHELF_LOG_LEVEL", "debug")
	t.Setenv("DOCSHELF_SEARCH_DEBOUNCE", "150ms")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://docs.example.com", cfg.APIBaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, "docshelf.db", cfg.DatabasePath, "untouched fields keep defaults")
}

func TestParseEnvIgnoresMalformedDuration(t *testing.T) {
	t.Setenv("DOCSHELF_SEARCH_DEBOUNCE", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
}

func TestParseJsonOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body, err := json.Marshal(map[string]any{
		"api_url":         "https://docs.example.com",
		"search_debounce": "2s",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	prev := os.Args
	os.Args = []string{"docshelf", "-c", path}
	t.Cleanup(func() { os.Args = prev })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "https://docs.example.com", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Second, cfg.SearchDebounce)
	assert.Equal(t, "info", cfg.LogLevel, "fields absent from JSON keep their values")
}

func TestParseFlagsOverrideEverything(t *testing.T) {
	prev := os.Args
	os.Args = []string{"docshelf", "-a", "https://flag.example.com", "-l", "warn"}
	t.Cleanup(func() { os.Args = prev })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "https://flag.example.com", cfg.APIBaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "docshelf.db", cfg.DatabasePath)
}

func TestLoadConfigPrecedence(t *testing.T) {
	t.Setenv("DOCSHELF_API_URL", "https://env.example.com")
	t.Setenv("DOCSHELF_DB_PATH", "/tmp/env.db")

	prev := os.Args
	os.Args = []string{"docshelf", "-a", "https://flag.example.com"}
	t.Cleanup(func() { os.Args = prev })

	cfg := LoadConfig()

	assert.Equal(t, "https://flag.example.com", cfg.APIBaseURL, "flags beat env")
	assert.Equal(t, "/tmp/env.db", cfg.DatabasePath, "env beats defaults")
}
