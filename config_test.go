package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		server:     "http://localhost:8080",
		timeout:    time.Second,
		logLevel:   "info",
		logFile:    "-",
		imageWidth: 32,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"https with path", func(c *Config) { c.server = "https://quiz.example.com/base" }, true},
		{"known regions", func(c *Config) { c.regions = []string{"kanto", "paldea"} }, true},
		{"no scheme", func(c *Config) { c.server = "localhost:8080" }, false},
		{"no host", func(c *Config) { c.server = "http://" }, false},
		{"zero timeout", func(c *Config) { c.timeout = 0 }, false},
		{"bad level", func(c *Config) { c.logLevel = "loud" }, false},
		{"narrow image", func(c *Config) { c.imageWidth = 2 }, false},
		{"unknown region", func(c *Config) { c.regions = []string{"orre"} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			if tt.ok {
				assert.NoError(t, c.validate())
			} else {
				assert.Error(t, c.validate())
			}
		})
	}
}

func TestFlagsFromEnvironment(t *testing.T) {
	t.Setenv("SILHOUETTE_SERVER", "http://quiz.local:9000")
	t.Setenv("SILHOUETTE_REGIONS", "kanto,johto")
	t.Setenv("SILHOUETTE_IMAGE_WIDTH", "48")
	t.Setenv("SILHOUETTE_MEGA", "true")

	cfg := &Config{}
	newCmd(cfg)

	assert.Equal(t, "http://quiz.local:9000", cfg.server)
	assert.Equal(t, []string{"kanto", "johto"}, cfg.regions)
	assert.Equal(t, 48, cfg.imageWidth)
	assert.True(t, cfg.mega)
	assert.False(t, cfg.primal)
	assert.Equal(t, "silhouette.log", cfg.logFile)
	require.NoError(t, cfg.validate())
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("SILHOUETTE_LOG_LEVEL", "debug")

	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.Flags().Parse([]string{"--log-level", "warn", "--qr"}))

	assert.Equal(t, "warn", cfg.logLevel)
	assert.True(t, cfg.qr)
}
