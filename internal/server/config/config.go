// Package config handles configuration for the development API server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the inventory API server.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default outside development.
//   - AccessTokenValidityDuration: lifetime of issued bearer tokens.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
type Config struct {
	EndpointAddr                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogLevel                    string
	LogFormat                   string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":6789"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
