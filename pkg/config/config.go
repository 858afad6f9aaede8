// Package config loads and validates client configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/DeBrosOfficial/fheclient/pkg/logging"
	"github.com/DeBrosOfficial/fheclient/pkg/retry"
	"github.com/DeBrosOfficial/fheclient/pkg/storage"
)

// Config represents the full client configuration
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Retry   RetryConfig   `yaml:"retry"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig contains key-value storage configuration
type StorageConfig struct {
	DataDir   string `yaml:"data_dir"`   // Directory for the database and file backends
	DBName    string `yaml:"db_name"`    // SQLite database file name
	StoreName string `yaml:"store_name"` // Logical store name, used as the table name
	Prefix    string `yaml:"prefix"`     // Key prefix for the file backend
}

// RetryConfig contains retry policy configuration
type RetryConfig struct {
	MaxRetries        int           `yaml:"max_retries"`        // Retries after the first attempt
	InitialDelay      time.Duration `yaml:"initial_delay"`      // Delay before the first retry
	BackoffMultiplier float64       `yaml:"backoff_multiplier"` // Geometric growth factor
	MaxDelay          time.Duration `yaml:"max_delay"`          // Delay cap, 0 for uncapped
	Jitter            bool          `yaml:"jitter"`             // Randomize delays
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Format     string `yaml:"format"`      // json, console
	OutputFile string `yaml:"output_file"` // Empty for stdout
}

// Policy converts the retry configuration into a retry policy.
func (rc RetryConfig) Policy() retry.Policy {
	return retry.Policy{
		MaxRetries:        rc.MaxRetries,
		InitialDelay:      rc.InitialDelay,
		BackoffMultiplier: rc.BackoffMultiplier,
		MaxDelay:          rc.MaxDelay,
		Jitter:            rc.Jitter,
	}
}

// Logger builds the configured logger.
func (lc LoggingConfig) Logger() (*logging.ColoredLogger, error) {
	return logging.New(lc.Level, lc.Format, lc.OutputFile)
}

// Options converts the storage configuration into backend options.
func (sc StorageConfig) Options() storage.Options {
	return storage.Options{
		DataDir:   sc.DataDir,
		DBName:    sc.DBName,
		StoreName: sc.StoreName,
		Prefix:    sc.Prefix,
	}
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:   "./data",
			DBName:    "fheclient.db",
			StoreName: "keyvalue",
			Prefix:    "fheclient:",
		},
		Retry: RetryConfig{
			MaxRetries:        30,
			InitialDelay:      time.Second,
			BackoffMultiplier: 1.3,
			MaxDelay:          5 * time.Second,
			Jitter:            true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadFromFile reads a YAML config file over the defaults. Unknown fields
// are rejected.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := DecodeStrict(f, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
