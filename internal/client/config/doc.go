// Package config loads runtime configuration for the inventory client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the inventory API
//	-s string   path of the local session database
//	-t int      request timeout in seconds (0 = none)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either
// a string like "5s" or integer nanoseconds. Missing keys keep their defaults:
//
//	{
//	  "api_base_url": "http://localhost:6789/api",
//	  "session_dsn": "inventory_session.db",
//	  "request_timeout": "5s",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
package config
