package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Suggest SuggestConfig `mapstructure:"suggest"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig points at the evaluation service. A zero Timeout means requests
// wait for the server indefinitely.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SuggestConfig tunes player name lookups.
type SuggestConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	MinQuery int           `mapstructure:"min_query"`
	Limit    int           `mapstructure:"limit"`
}

// CacheConfig enables the Redis lookup cache when RedisURL is set.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PresetsPath string `mapstructure:"presets_path"`
	StartView   string `mapstructure:"start_view"`
}

// LogConfig sends logs to Path; empty discards them.
type LogConfig struct {
	Path string `mapstructure:"path"`
}

// Dir is the directory holding config.toml and presets.toml.
func Dir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "tradedesk")
}

// Path is the config file location, honouring TRADEDESK_CONFIG.
func Path() string {
	if p := os.Getenv("TRADEDESK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Exists reports whether a config file is present at Path.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads configuration from file and env. Env var overrides use prefix TRADEDESK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("suggest.debounce", "180ms")
	v.SetDefault("suggest.min_query", 2)
	v.SetDefault("suggest.limit", 8)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("ui.presets_path", filepath.Join(Dir(), "presets.toml"))
	v.SetDefault("ui.start_view", "builder")
	v.SetDefault("log.path", "")

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("TRADEDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to Path, creating the directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("suggest.debounce", cfg.Suggest.Debounce.String())
	v.Set("suggest.min_query", cfg.Suggest.MinQuery)
	v.Set("suggest.limit", cfg.Suggest.Limit)
	v.Set("cache.redis_url", cfg.Cache.RedisURL)
	v.Set("cache.ttl", cfg.Cache.TTL.String())
	v.Set("ui.presets_path", cfg.UI.PresetsPath)
	v.Set("ui.start_view", cfg.UI.StartView)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
