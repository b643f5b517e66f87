package config

import "time"

// Config holds runtime settings for the ChatFlow CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST endpoint.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: path of the local SQLite database holding the session.
//   - SearchDebounce: how long search input must be idle before a query
//     is promoted and sent to the backend.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	SearchDebounce time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3046"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "chatflow.db"
	c.SearchDebounce = 300 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including an optional .env file), a JSON file (if
// present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
