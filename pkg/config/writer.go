package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveConfig saves configuration to YAML file
func SaveConfig(cfg *FullConfig, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// WriteDefaultConfig writes a default configuration file, refusing to
// overwrite an existing one unless force is set
func WriteDefaultConfig(configPath string, force bool) error {
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s", configPath)
		}
	}
	return SaveConfig(DefaultFullConfig(), configPath)
}

// LoadFullConfig reads a YAML configuration file. Keys missing from the file
// keep their default values.
func LoadFullConfig(configPath string) (*FullConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	cfg := DefaultFullConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file: %w", err)
	}
	return cfg, nil
}

// VerifyConfigFile loads configPath and checks that it yields a valid
// runtime configuration
func VerifyConfigFile(configPath string) (*Config, error) {
	full, err := LoadFullConfig(configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := full.ToConfig()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}
