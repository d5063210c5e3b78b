package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		RootDir:    "/srv/project",
		ListenAddr: DefaultListenAddr,
		BaseURL:    "/",
		Workers:    DefaultWorkers,
		LogLevel:   "info",
		LogFormat:  "auto",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(c *Config)
		errContains string
	}{
		{name: "valid config", modify: func(c *Config) {}},
		{name: "uppercase level accepted", modify: func(c *Config) { c.LogLevel = "DEBUG" }},
		{name: "empty root", modify: func(c *Config) { c.RootDir = "  " }, errContains: "root directory"},
		{name: "zero workers", modify: func(c *Config) { c.Workers = 0 }, errContains: "workers"},
		{name: "too many workers", modify: func(c *Config) { c.Workers = MaxWorkers + 1 }, errContains: "workers"},
		{name: "bad log level", modify: func(c *Config) { c.LogLevel = "loud" }, errContains: "log level"},
		{name: "bad log format", modify: func(c *Config) { c.LogFormat = "xml" }, errContains: "log format"},
		{name: "missing address", modify: func(c *Config) { c.ListenAddr = "" }, errContains: "listen address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"lab", "/lab/"},
		{"/lab", "/lab/"},
		{"/user/alice/", "/user/alice/"},
		{" /hub ", "/hub/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBaseURL(tt.in))
		})
	}
}
