package config

import "time"

// Config holds runtime settings for the inventory client.
//
// Fields:
//   - APIBaseURL: root of the inventory API, e.g. http://localhost:6789/api.
//   - SessionDSN: path of the local SQLite file holding the signed-in session.
//   - RequestTimeout: per-request HTTP timeout; 0 disables it.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
type Config struct {
	APIBaseURL     string
	SessionDSN     string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:6789/api"
	c.SessionDSN = "inventory_session.db"
	c.RequestTimeout = 0
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
