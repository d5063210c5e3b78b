package config

import (
	"github.com/spf13/viper"
)

// SetViperDefaults sets all default configuration values in Viper
func SetViperDefaults() {
	// Server defaults
	viper.SetDefault("server.root", ".")
	viper.SetDefault("server.addr", DefaultListenAddr)
	viper.SetDefault("server.base_url", DefaultBaseURL)
	viper.SetDefault("server.token", "")
	viper.SetDefault("server.read_header_timeout", DefaultReadHeaderTimeout.String())
	viper.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout.String())

	// Scanner defaults
	viper.SetDefault("scanner.workers", DefaultWorkers)

	// Security defaults
	viper.SetDefault("security.audit_log_path", "")

	// Logging defaults
	viper.SetDefault("logging.level", DefaultLogLevel)
	viper.SetDefault("logging.format", DefaultLogFormat)
}

// DefaultFullConfig returns the file layout populated with default values
func DefaultFullConfig() *FullConfig {
	cfg := &FullConfig{}

	cfg.Server.Root = "."
	cfg.Server.Addr = DefaultListenAddr
	cfg.Server.BaseURL = DefaultBaseURL
	cfg.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout.String()
	cfg.Server.ShutdownTimeout = DefaultShutdownTimeout.String()

	cfg.Scanner.Workers = DefaultWorkers

	cfg.Logging.Level = DefaultLogLevel
	cfg.Logging.Format = DefaultLogFormat

	return cfg
}
