package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables, loading
// an optional .env file first. Real environment variables win over .env
// entries (godotenv never overrides existing ones).
//
// Recognized variables:
//
//	CHATFLOW_API_BASE_URL      base URL of the backend
//	CHATFLOW_REQUEST_TIMEOUT   per-request timeout, e.g. "10s"
//	CHATFLOW_DATABASE_PATH     local database path
//	CHATFLOW_SEARCH_DEBOUNCE   search debounce window, e.g. "300ms"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("CHATFLOW_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("CHATFLOW_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("CHATFLOW_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("CHATFLOW_SEARCH_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SearchDebounce = d
		}
	}
}
