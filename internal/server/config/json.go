package config

import (
	"encoding/json"
	"os"

	"github.com/hackinpovo/inventory/internal/flagx"
	"github.com/hackinpovo/inventory/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Durations accept both "24h" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddr                string          `json:"endpoint_addr"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    string          `json:"log_level"`
	LogFormat                   string          `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c or -config, if any.
// Keys absent from the file keep their current values. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
}
