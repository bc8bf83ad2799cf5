package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:6789/api", c.APIBaseURL)
	assert.Equal(t, "inventory_session.db", c.SessionDSN)
	assert.Equal(t, time.Duration(0), c.RequestTimeout)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"inventory"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:6789/api", cfg.APIBaseURL)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "http://json:1/api",
		"request_timeout": "7s",
		"log_format":      "json",
	})
	os.Args = []string{"inventory", "-c", path, "-a", "http://flag:2/api"}

	cfg := LoadConfig()

	assert.Equal(t, "http://flag:2/api", cfg.APIBaseURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "inventory_session.db", cfg.SessionDSN)
}
