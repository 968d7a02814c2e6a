package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. DOCPREP_CACHE_DIRECTORY
const EnvPrefix = "DOCPREP"

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance to access CLI flag bindings.
func Load() (*Config, error) {
	return load(viper.GetViper())
}

// LoadWithViper loads configuration into a fresh viper instance and returns it
func LoadWithViper() (*Config, *viper.Viper, error) {
	v := viper.New()
	cfg, err := load(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// An explicit --config file is set by the caller through SetConfigFile
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file falls back to defaults, including an explicit --config path
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Cache defaults
	v.SetDefault("cache.directory", CheckoutDir())
	v.SetDefault("cache.index", DefaultIndexEnabled)
	v.SetDefault("cache.index_directory", IndexDir())

	// Git defaults
	v.SetDefault("git.timeout", DefaultGitTimeout)
	v.SetDefault("git.depth", DefaultGitDepth)

	// Storage defaults
	v.SetDefault("storage.api_origin", DefaultAPIOrigin)
	v.SetDefault("storage.timeout", DefaultStorageTimeout)
	v.SetDefault("storage.max_retries", DefaultMaxRetries)
	v.SetDefault("storage.cache_ttl", DefaultStorageCacheTTL)

	// Concurrency defaults
	v.SetDefault("concurrency.workers", DefaultWorkers)

	// Prepare defaults
	v.SetDefault("prepare.require_existing", false)

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Save writes cfg as YAML to path, creating parent directories
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}
