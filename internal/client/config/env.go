package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, after seeding the
// environment from a .env file in the working directory when one exists.
// Already-set variables win over the file.
//
// Recognized variables:
//
//	DOCSHELF_API_URL          base URL of the backend
//	DOCSHELF_DB_PATH          path of the session database
//	DOCSHELF_LOG_LEVEL        debug, info, warn or error
//	DOCSHELF_SEARCH_DEBOUNCE  duration, e.g. "300ms"
func parseEnv(cfg *Config) {
	// Missing .env is the common case, not an error.
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("DOCSHELF_API_URL"); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv("DOCSHELF_DB_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv("DOCSHELF_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("DOCSHELF_SEARCH_DEBOUNCE"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SearchDebounce = d
		}
	}
}
