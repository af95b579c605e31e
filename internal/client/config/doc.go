// Package config loads runtime configuration for the docshelf CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override everything earlier.
//
// Supported flags
//
//	-a string   base URL of the docshelf API
//	-d string   path of the local session database
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "300ms" or integer nanoseconds:
//
//	{
//	  "api_url": "https://docshelf.example.com",
//	  "database_path": "docshelf.db",
//	  "log_level": "info",
//	  "search_debounce": "300ms"
//	}
package config
