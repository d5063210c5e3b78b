package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"

	"github.com/computerscienceiscool/vscode-icons-server/pkg/app"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/config"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/logging"
)

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
		// Config file not found; using defaults and flags
	}
}

// buildConfig constructs a config.Config from Viper values
func buildConfig() (*config.Config, error) {
	cfg := &config.Config{
		RootDir:      viper.GetString("server.root"),
		ListenAddr:   viper.GetString("server.addr"),
		BaseURL:      viper.GetString("server.base_url"),
		Token:        viper.GetString("server.token"),
		Workers:      viper.GetInt("scanner.workers"),
		AuditLogPath: viper.GetString("security.audit_log_path"),
		LogLevel:     viper.GetString("logging.level"),
		LogFormat:    viper.GetString("logging.format"),
		Verbose:      viper.GetBool("logging.verbose"),
	}

	// Parse timeout durations
	readHeaderTimeout, err := parseDuration("server.read_header_timeout", config.DefaultReadHeaderTimeout)
	if err != nil {
		return nil, err
	}
	cfg.ReadHeaderTimeout = readHeaderTimeout

	shutdownTimeout, err := parseDuration("server.shutdown_timeout", config.DefaultShutdownTimeout)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout = shutdownTimeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseDuration reads key as a duration string, falling back to def when unset
func parseDuration(key string, def time.Duration) (time.Duration, error) {
	raw := viper.GetString(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func newLogger(cfg *config.Config) hclog.Logger {
	return logging.New(logging.Options{
		Name:    "vscode-icons",
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Verbose: cfg.Verbose,
	})
}

// bootstrapApp wraps the app.Bootstrap function
func bootstrapApp(cfg *config.Config, logger hclog.Logger) (*app.App, error) {
	return app.Bootstrap(cfg, logger)
}
