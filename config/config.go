// Package config holds the on-disk configuration for secstore tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable values.
type Config struct {
	// DataDir is the base directory for all persistent state.
	DataDir string `yaml:"data_dir"`

	// StoreDir is the content store directory. Defaults to {DataDir}/store.
	StoreDir string `yaml:"store_dir"`

	// LedgerPath is the ledger database file. Defaults to {DataDir}/ledger.db.
	LedgerPath string `yaml:"ledger_path"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration defaults for a data directory.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:    dataDir,
		StoreDir:   filepath.Join(dataDir, "store"),
		LedgerPath: filepath.Join(dataDir, "ledger.db"),
		LogLevel:   "info",
	}
}

// ConfigPath returns the config file path inside a data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// LoadConfig reads and validates a YAML config file. Missing optional fields
// are filled from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrConfigNotFound
		}
		return Config{}, fmt.Errorf("config: read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	defaults := DefaultConfig(cfg.DataDir)
	if cfg.StoreDir == "" {
		cfg.StoreDir = defaults.StoreDir
	}
	if cfg.LedgerPath == "" {
		cfg.LedgerPath = defaults.LedgerPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SaveConfig writes the config as YAML, creating the directory if needed.
func SaveConfig(path string, cfg Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write file: %w", err)
	}
	return nil
}
