package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file.
	userConfigFile = ".payrollconfig.yaml"

	// Default configuration values
	DefaultDataFile = "employees.txt"
	DefaultLogLevel = "info"
	DefaultCurrency = "Rs."
)

// Config represents user configuration from .payrollconfig.yaml.
// This file is user-managed and never written by payroll.
type Config struct {
	// DataFile is the employees file, relative to the working directory
	// unless absolute.
	DataFile string `yaml:"data_file"`

	// LogFile receives structured logs when set.
	LogFile string `yaml:"log_file"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Currency is printed before money amounts.
	Currency string `yaml:"currency"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DataFile: DefaultDataFile,
		LogLevel: DefaultLogLevel,
		Currency: DefaultCurrency,
	}
}

// LoadConfig loads .payrollconfig.yaml from dir if it exists, otherwise
// returns defaults. Partial config files are merged with defaults.
func LoadConfig(dir string) (*Config, error) {
	configPath := filepath.Join(dir, userConfigFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	// An explicit empty value in the file still means the default file.
	if cfg.DataFile == "" {
		cfg.DataFile = DefaultDataFile
	}

	return cfg, nil
}

// ConfigPath returns the path to the user config file in dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, userConfigFile)
}
