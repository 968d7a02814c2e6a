package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/docprep/internal/config"
)

// ConfigValues holds form values that map to Config.
// Numeric and duration fields are stored as strings for form editing.
type ConfigValues struct {
	CacheDirectory string
	CacheIndex     bool
	IndexDirectory string

	GitTimeout string
	GitDepth   string

	APIOrigin         string
	StorageTimeout    string
	StorageMaxRetries string
	StorageCacheTTL   string

	Workers string

	RequireExisting bool

	LogLevel  string
	LogFormat string
}

// FromConfig converts a Config to ConfigValues for form editing
func FromConfig(cfg *config.Config) *ConfigValues {
	return &ConfigValues{
		CacheDirectory: cfg.Cache.Directory,
		CacheIndex:     cfg.Cache.Index,
		IndexDirectory: cfg.Cache.IndexDirectory,

		GitTimeout: formatDuration(cfg.Git.Timeout),
		GitDepth:   strconv.Itoa(cfg.Git.Depth),

		APIOrigin:         cfg.Storage.APIOrigin,
		StorageTimeout:    formatDuration(cfg.Storage.Timeout),
		StorageMaxRetries: strconv.Itoa(cfg.Storage.MaxRetries),
		StorageCacheTTL:   formatDuration(cfg.Storage.CacheTTL),

		Workers: strconv.Itoa(cfg.Concurrency.Workers),

		RequireExisting: cfg.Prepare.RequireExisting,

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	}
}

// ToConfig converts ConfigValues back to a Config
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	gitTimeout, err := parseDurationOrDefault(v.GitTimeout, config.DefaultGitTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid git.timeout: %w", err)
	}

	gitDepth, err := parseIntOrDefault(v.GitDepth, config.DefaultGitDepth)
	if err != nil {
		return nil, fmt.Errorf("invalid git.depth: %w", err)
	}

	storageTimeout, err := parseDurationOrDefault(v.StorageTimeout, config.DefaultStorageTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid storage.timeout: %w", err)
	}

	maxRetries, err := parseIntOrDefault(v.StorageMaxRetries, config.DefaultMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("invalid storage.max_retries: %w", err)
	}

	cacheTTL, err := parseDurationOrDefault(v.StorageCacheTTL, config.DefaultStorageCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid storage.cache_ttl: %w", err)
	}

	workers, err := parseIntOrDefault(v.Workers, config.DefaultWorkers)
	if err != nil {
		return nil, fmt.Errorf("invalid concurrency.workers: %w", err)
	}

	cfg := &config.Config{
		Cache: config.CacheConfig{
			Directory:      strings.TrimSpace(v.CacheDirectory),
			Index:          v.CacheIndex,
			IndexDirectory: strings.TrimSpace(v.IndexDirectory),
		},
		Git: config.GitConfig{
			Timeout: gitTimeout,
			Depth:   gitDepth,
		},
		Storage: config.StorageConfig{
			APIOrigin:  strings.TrimSpace(v.APIOrigin),
			Timeout:    storageTimeout,
			MaxRetries: maxRetries,
			CacheTTL:   cacheTTL,
		},
		Concurrency: config.ConcurrencyConfig{
			Workers: workers,
		},
		Prepare: config.PrepareConfig{
			RequireExisting: v.RequireExisting,
		},
		Logging: config.LoggingConfig{
			Level:  v.LogLevel,
			Format: v.LogFormat,
		},
	}

	return cfg, nil
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func parseDurationOrDefault(s string, defaultVal time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(s)
}

func parseIntOrDefault(s string, defaultVal int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
