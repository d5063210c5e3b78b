package config

import "time"

// Default values and limits for the executables server
const (
	// Server defaults
	DefaultListenAddr = "127.0.0.1:8888"
	DefaultBaseURL    = "/"

	// Route suffixes, relative to the base URL
	ExecutablesRoute = "vscode-icons/executables"
	HealthRoute      = "vscode-icons/health"

	// Worker pool
	DefaultWorkers = 2  // filesystem scans running at once
	MaxWorkers     = 64 // upper bound accepted from configuration

	// HTTP server timeouts
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second

	// Logging
	DefaultLogLevel  = "info"
	DefaultLogFormat = "auto"

	// Validation limits
	MaxPathLength = 4096 // Maximum length of the path query parameter

	// Config file lookup
	ConfigFileName = "vscode-icons.config"
	EnvPrefix      = "VSCODE_ICONS"
)

// Valid log levels and formats
var (
	LogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	LogFormats = []string{"auto", "text", "json"}
)
