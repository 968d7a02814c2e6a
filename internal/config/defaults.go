package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Git defaults
	DefaultGitTimeout = 5 * time.Minute
	DefaultGitDepth   = 1

	// Storage defaults
	DefaultAPIOrigin       = "http://localhost:7000/api/techdocs/static/docs"
	DefaultStorageTimeout  = 30 * time.Second
	DefaultMaxRetries      = 3
	DefaultStorageCacheTTL = time.Hour

	// Concurrency defaults
	DefaultWorkers = 4

	// Cache defaults
	DefaultIndexEnabled = true

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docprep"
	}
	return filepath.Join(home, ".docprep")
}

// CheckoutDir returns the default checkout cache root
func CheckoutDir() string {
	return filepath.Join(ConfigDir(), "checkouts")
}

// IndexDir returns the default checkout index directory
func IndexDir() string {
	return filepath.Join(ConfigDir(), "index")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Directory:      CheckoutDir(),
			Index:          DefaultIndexEnabled,
			IndexDirectory: IndexDir(),
		},
		Git: GitConfig{
			Timeout: DefaultGitTimeout,
			Depth:   DefaultGitDepth,
		},
		Storage: StorageConfig{
			APIOrigin:  DefaultAPIOrigin,
			Timeout:    DefaultStorageTimeout,
			MaxRetries: DefaultMaxRetries,
			CacheTTL:   DefaultStorageCacheTTL,
		},
		Concurrency: ConcurrencyConfig{
			Workers: DefaultWorkers,
		},
		Prepare: PrepareConfig{
			RequireExisting: false,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
