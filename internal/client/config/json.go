package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dspavlov/docshelf/internal/flagx"
	"github.com/dspavlov/docshelf/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like
// "300ms" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_url"`
	DatabasePath   string         `json:"database_path"`
	LogLevel       string         `json:"log_level"`
	SearchDebounce timex.Duration `json:"search_debounce"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c or -config flag via flagx.JsonConfigFlags; with no
// flag, no JSON is loaded. Only fields present in the file override.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.SearchDebounce.Duration != 0 {
		cfg.SearchDebounce = time.Duration(jc.SearchDebounce.Duration)
	}
}
