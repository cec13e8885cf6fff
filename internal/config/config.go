// Package config provides configuration loading and structs for the Saharah server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvDataSource  = "SAHARAH_DATA_SOURCE"
	EnvChatBaseURL = "SAHARAH_CHAT_BASE_URL"
	EnvPort        = "SAHARAH_PORT"
	EnvDebug       = "SAHARAH_DEBUG"
)

// MemoryDatabase is the database path of a store that lives as long as the process.
const MemoryDatabase = ":memory:"

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Storage StorageConfig `yaml:"storage"`
	Chat    ChatConfig    `yaml:"chat"`
	State   StateConfig   `yaml:"state"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig holds the law reference catalog settings.
type DataConfig struct {
	// Source is an http(s) base URL or a local directory containing data/.
	Source       string        `yaml:"source"`
	Cache        *bool         `yaml:"cache"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	LoadTimeout  time.Duration `yaml:"load_timeout"` // bounds one cache refill; zero means none
	Watch        *bool         `yaml:"watch"`
}

// CacheOrDefault returns whether loaded catalogs are cached; defaults to true when unset.
func (d *DataConfig) CacheOrDefault() bool {
	if d.Cache != nil {
		return *d.Cache
	}
	return true
}

// WatchOrDefault returns whether a local source directory is watched; defaults to true when unset.
func (d *DataConfig) WatchOrDefault() bool {
	if d.Watch != nil {
		return *d.Watch
	}
	return true
}

// IsRemote reports whether the source is fetched over HTTP.
func (d *DataConfig) IsRemote() bool {
	return isURL(d.Source)
}

// StorageConfig holds paths for the session database and the section index.
// The default in-memory values keep nothing once the process exits.
type StorageConfig struct {
	DatabasePath   string `yaml:"database_path"`
	BleveIndexPath string `yaml:"bleve_index_path"`
}

// ChatConfig holds the assistant settings. An empty BaseURL selects the scripted assistant.
type ChatConfig struct {
	BaseURL    string        `yaml:"base_url"`
	ReplyDelay time.Duration `yaml:"reply_delay"`
	Timeout    time.Duration `yaml:"timeout"`
}

// StateConfig holds where the language choice and login stub are saved.
type StateConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns a config with defaults and environment overrides applied, with relative
// paths resolved against the working directory.
func Default() (*Config, error) {
	var cfg Config
	ApplyDefaults(&cfg)
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	expandPaths(&cfg, dir)
	return &cfg, nil
}

// Load reads and parses the config file at path, applies defaults and environment
// overrides, and expands paths. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	expandPaths(&cfg, filepath.Dir(path))
	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LoadEnvFile loads variables from a .env file into the process environment without
// overriding variables already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with the SAHARAH_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDataSource); v != "" {
		cfg.Data.Source = v
	}
	if v := os.Getenv(EnvChatBaseURL); v != "" {
		cfg.Chat.BaseURL = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s %q", EnvPort, v)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDebug, v, err)
		}
		cfg.Debug = debug
	}
	return nil
}

func expandPaths(cfg *Config, configDir string) {
	if !isURL(cfg.Data.Source) {
		cfg.Data.Source = expandPath(cfg.Data.Source, configDir)
	}
	if cfg.Storage.DatabasePath != MemoryDatabase {
		cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	}
	if cfg.Storage.BleveIndexPath != "" {
		cfg.Storage.BleveIndexPath = expandPath(cfg.Storage.BleveIndexPath, configDir)
	}
	if cfg.State.Dir != "" {
		cfg.State.Dir = expandPath(cfg.State.Dir, configDir)
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
