package config

import (
	"time"

	"github.com/dspavlov/docshelf/internal/common"
)

// Config holds runtime settings for the docshelf CLI.
//
// Fields:
//   - APIBaseURL: base URL of the docshelf backend.
//   - DatabasePath: path of the local SQLite session database.
//   - LogLevel: minimum level emitted (debug, info, warn, error).
//   - SearchDebounce: quiet period before a typed search term commits.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	LogLevel       string
	SearchDebounce time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "docshelf.db"
	c.LogLevel = "info"
	c.SearchDebounce = common.SearchDebounce
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (optionally seeded from .env), JSON (if present) and
// command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
