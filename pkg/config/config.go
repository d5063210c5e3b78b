package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Config represents the complete runtime configuration
type Config struct {
	RootDir           string
	ListenAddr        string
	BaseURL           string
	Token             string
	Workers           int
	LogLevel          string
	LogFormat         string
	AuditLogPath      string
	Verbose           bool
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// FullConfig is the on-disk YAML layout of the configuration file
type FullConfig struct {
	Server struct {
		Root              string `yaml:"root" mapstructure:"root"`
		Addr              string `yaml:"addr" mapstructure:"addr"`
		BaseURL           string `yaml:"base_url" mapstructure:"base_url"`
		Token             string `yaml:"token" mapstructure:"token"`
		ReadHeaderTimeout string `yaml:"read_header_timeout" mapstructure:"read_header_timeout"`
		ShutdownTimeout   string `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	} `yaml:"server" mapstructure:"server"`

	Scanner struct {
		Workers int `yaml:"workers" mapstructure:"workers"`
	} `yaml:"scanner" mapstructure:"scanner"`

	Security struct {
		AuditLogPath string `yaml:"audit_log_path" mapstructure:"audit_log_path"`
	} `yaml:"security" mapstructure:"security"`

	Logging struct {
		Level  string `yaml:"level" mapstructure:"level"`
		Format string `yaml:"format" mapstructure:"format"`
	} `yaml:"logging" mapstructure:"logging"`
}

// ToConfig converts the file layout into a runtime Config
func (f *FullConfig) ToConfig() (*Config, error) {
	readHeaderTimeout, err := time.ParseDuration(f.Server.ReadHeaderTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid server.read_header_timeout %q: %w", f.Server.ReadHeaderTimeout, err)
	}
	shutdownTimeout, err := time.ParseDuration(f.Server.ShutdownTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid server.shutdown_timeout %q: %w", f.Server.ShutdownTimeout, err)
	}

	return &Config{
		RootDir:           f.Server.Root,
		ListenAddr:        f.Server.Addr,
		BaseURL:           f.Server.BaseURL,
		Token:             f.Server.Token,
		Workers:           f.Scanner.Workers,
		LogLevel:          f.Logging.Level,
		LogFormat:         f.Logging.Format,
		AuditLogPath:      f.Security.AuditLogPath,
		ReadHeaderTimeout: readHeaderTimeout,
		ShutdownTimeout:   shutdownTimeout,
	}, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RootDir) == "" {
		return fmt.Errorf("root directory must be set")
	}
	if c.Workers <= 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d, got %d", MaxWorkers, c.Workers)
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level %q (valid: %s)", c.LogLevel, strings.Join(LogLevels, ", "))
	}
	if !slices.Contains(LogFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("invalid log format %q (valid: %s)", c.LogFormat, strings.Join(LogFormats, ", "))
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must be set")
	}
	return nil
}

// NormalizeBaseURL makes sure the base URL starts and ends with a slash
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if !strings.HasPrefix(baseURL, "/") {
		baseURL = "/" + baseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL
}
