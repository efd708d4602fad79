// ABOUTME: fitleast configuration management with backend selection.
// ABOUTME: Reads a JSON config file plus FITLEAST_* env overrides via viper, and opens the chosen KV.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fitleast/internal/charm"
	"github.com/harperreed/fitleast/internal/storage"
	"github.com/spf13/viper"
)

// Backends lists every accepted value of Config.Backend.
var Backends = []string{"sqlite", "badger", "charm", "redis", "memory"}

// Config stores fitleast configuration.
type Config struct {
	// Backend selects the storage backend: sqlite (default), badger, charm, redis or memory.
	Backend string `mapstructure:"backend" json:"backend,omitempty"`

	// DataDir is the root directory for local data. SQLite puts fitleast.db here,
	// badger uses a badger/ subdirectory, and the log file lives here too.
	// Supports ~ expansion. Defaults to ~/.local/share/fitleast.
	DataDir string `mapstructure:"data_dir" json:"data_dir,omitempty"`

	RedisAddr     string `mapstructure:"redis_addr" json:"redis_addr,omitempty"`
	RedisPassword string `mapstructure:"redis_password" json:"redis_password,omitempty"`
	RedisDB       int    `mapstructure:"redis_db" json:"redis_db,omitempty"`
	RedisPrefix   string `mapstructure:"redis_prefix" json:"redis_prefix,omitempty"`

	LogLevel string `mapstructure:"log_level" json:"log_level,omitempty"`
	// LogFile writes logs to <data-dir>/fitleast.log instead of stderr.
	LogFile bool `mapstructure:"log_file" json:"log_file,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// LogFilePath returns where file logging writes, or "" when logging to stderr.
func (c *Config) LogFilePath() string {
	if !c.LogFile {
		return ""
	}
	return filepath.Join(c.GetDataDir(), "fitleast.log")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a KV implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.KV, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend using the rest of c for its settings.
func (c *Config) OpenBackend(backend string) (storage.KV, error) {
	dataDir := c.GetDataDir()

	switch strings.ToLower(backend) {
	case "sqlite":
		return storage.Open(filepath.Join(dataDir, "fitleast.db"))
	case "badger":
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case "charm":
		return charm.InitClient()
	case "redis":
		addr := c.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		prefix := c.RedisPrefix
		if prefix == "" {
			prefix = storage.DefaultRedisPrefix
		}
		return storage.OpenRedis(addr, c.RedisPassword, c.RedisDB, prefix)
	case "memory":
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q (want one of %s)", backend, strings.Join(Backends, ", "))
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitleast", "config.json")
}

// Load reads config from disk, then applies FITLEAST_* environment overrides.
// A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(GetConfigPath())
	v.SetConfigType("json")

	v.SetEnvPrefix("fitleast")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Every key needs a default so Unmarshal picks up env-only values.
	v.SetDefault("backend", "")
	v.SetDefault("data_dir", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "")
	v.SetDefault("log_level", "")
	v.SetDefault("log_file", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
