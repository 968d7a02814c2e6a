package config

import (
	"time"
)

// Config represents the application configuration
type Config struct {
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Git         GitConfig         `mapstructure:"git" yaml:"git"`
	Storage     StorageConfig     `mapstructure:"storage" yaml:"storage"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Prepare     PrepareConfig     `mapstructure:"prepare" yaml:"prepare"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// CacheConfig contains checkout cache settings
type CacheConfig struct {
	// Directory is the root under which repositories are checked out
	Directory string `mapstructure:"directory" yaml:"directory"`
	// Index enables the checkout metadata index
	Index          bool   `mapstructure:"index" yaml:"index"`
	IndexDirectory string `mapstructure:"index_directory" yaml:"index_directory"`
}

// GitConfig contains checkout settings
type GitConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Depth   int           `mapstructure:"depth" yaml:"depth"`
}

// StorageConfig contains documentation storage client settings
type StorageConfig struct {
	APIOrigin  string        `mapstructure:"api_origin" yaml:"api_origin"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// PrepareConfig contains directory preparation settings
type PrepareConfig struct {
	RequireExisting bool `mapstructure:"require_existing" yaml:"require_existing"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate replaces out-of-range values with their defaults
func (c *Config) Validate() error {
	if c.Cache.Directory == "" {
		c.Cache.Directory = CheckoutDir()
	}
	if c.Cache.IndexDirectory == "" {
		c.Cache.IndexDirectory = IndexDir()
	}
	if c.Git.Timeout < time.Second {
		c.Git.Timeout = DefaultGitTimeout
	}
	if c.Git.Depth < 0 {
		c.Git.Depth = DefaultGitDepth
	}
	if c.Storage.APIOrigin == "" {
		c.Storage.APIOrigin = DefaultAPIOrigin
	}
	if c.Storage.Timeout < time.Second {
		c.Storage.Timeout = DefaultStorageTimeout
	}
	if c.Storage.MaxRetries < 0 {
		c.Storage.MaxRetries = DefaultMaxRetries
	}
	if c.Storage.CacheTTL < time.Minute {
		c.Storage.CacheTTL = DefaultStorageCacheTTL
	}
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = DefaultWorkers
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
