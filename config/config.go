/*
Package config loads the service configuration.

Configuration comes from three layers, later layers winning:
  1. Built-in defaults
  2. The YAML config file (CONFIG_PATH, default configs/config.yaml)
  3. Environment variables, optionally via a .env file
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port                   int `yaml:"port"`
	ReadTimeoutSeconds     int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int `yaml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
}

func (c ServerConfig) ReadTimeout() time.Duration  { return time.Duration(c.ReadTimeoutSeconds) * time.Second }
func (c ServerConfig) WriteTimeout() time.Duration { return time.Duration(c.WriteTimeoutSeconds) * time.Second }
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// StoreConfig holds the SQLite settings.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig holds the Redis schedule cache settings. The cache is
// optional; with Enabled false the service computes every schedule fresh.
type CacheConfig struct {
	Enabled               bool   `yaml:"enabled"`
	Addr                  string `yaml:"addr"`
	Password              string `yaml:"password"`
	DB                    int    `yaml:"db"`
	TTLMinutes            int    `yaml:"ttl_minutes"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds"`
}

func (c CacheConfig) TTL() time.Duration { return time.Duration(c.TTLMinutes) * time.Minute }
func (c CacheConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the main config struct that holds all configs.
type AppConfig struct {
	Server  ServerConfig `yaml:"server"`
	Store   StoreConfig  `yaml:"store"`
	Cache   CacheConfig  `yaml:"cache"`
	Logging LogConfig    `yaml:"logging"`
}

func assignDefaultConfigValues(cfg *AppConfig) *AppConfig {

	// server config defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 15
	}
	if cfg.Server.ShutdownTimeoutSeconds == 0 {
		cfg.Server.ShutdownTimeoutSeconds = 10
	}
	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", cfg.Server.Port)
	cfg.Server.ReadTimeoutSeconds = GetEnvOrDefaultAsInt("SERVER_READ_TIMEOUT_SECONDS", cfg.Server.ReadTimeoutSeconds)
	cfg.Server.WriteTimeoutSeconds = GetEnvOrDefaultAsInt("SERVER_WRITE_TIMEOUT_SECONDS", cfg.Server.WriteTimeoutSeconds)
	cfg.Server.ShutdownTimeoutSeconds = GetEnvOrDefaultAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", cfg.Server.ShutdownTimeoutSeconds)

	// store config defaults
	if cfg.Store.Path == "" {
		cfg.Store.Path = "loans.db"
	}
	cfg.Store.Path = GetEnvOrDefaultAsString("STORE_PATH", cfg.Store.Path)

	// cache config defaults
	if cfg.Cache.Addr == "" {
		cfg.Cache.Addr = "localhost:6379"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 60
	}
	if cfg.Cache.ConnectTimeoutSeconds == 0 {
		cfg.Cache.ConnectTimeoutSeconds = 5
	}
	cfg.Cache.Enabled = GetEnvOrDefaultAsInt("CACHE_ENABLED", boolToInt(cfg.Cache.Enabled)) == 1
	cfg.Cache.Addr = GetEnvOrDefaultAsString("REDIS_ADDR", cfg.Cache.Addr)
	cfg.Cache.Password = GetEnvOrDefaultAsString("REDIS_PASSWORD", cfg.Cache.Password)
	cfg.Cache.DB = GetEnvOrDefaultAsInt("REDIS_DB", cfg.Cache.DB)
	cfg.Cache.TTLMinutes = GetEnvOrDefaultAsInt("CACHE_TTL_MINUTES", cfg.Cache.TTLMinutes)
	cfg.Cache.ConnectTimeoutSeconds = GetEnvOrDefaultAsInt("REDIS_CONNECT_TIMEOUT_SECONDS", cfg.Cache.ConnectTimeoutSeconds)

	// log config defaults
	cfg.Logging.Level = GetEnvOrDefaultAsString("LOGGING_LEVEL", defaultString(cfg.Logging.Level, "info"))

	return cfg
}

// LoadFromConfigFilePath loads and parses the config file into AppConfig.
func LoadFromConfigFilePath(configPath string) (*AppConfig, error) {

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaultCfg := assignDefaultConfigValues(&cfg)

	if err := validateConfig(defaultCfg); err != nil {
		return nil, err
	}

	return defaultCfg, nil
}

// LoadFromConfig loads .env if present, then the config file named by
// CONFIG_PATH. A missing config file is not an error; defaults and
// environment variables alone carry a full configuration.
func LoadFromConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	configPath := GetEnvOrDefaultAsString("CONFIG_PATH", "configs/config.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := assignDefaultConfigValues(&AppConfig{})
		if err := validateConfig(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := LoadFromConfigFilePath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}
	return cfg, nil
}

func validateConfig(cfg *AppConfig) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if cfg.Cache.Enabled {
		if cfg.Cache.Addr == "" {
			return fmt.Errorf("cache.addr must not be empty when the cache is enabled")
		}
		if cfg.Cache.TTLMinutes < 1 {
			return fmt.Errorf("cache.ttl_minutes must be positive, got %d", cfg.Cache.TTLMinutes)
		}
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", cfg.Logging.Level)
	}
	return nil
}

// GetEnvOrDefaultAsInt returns the value of the given env variable
// as an int or the default value if not set or invalid.
func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return int(value)
}

func GetEnvOrDefaultAsString(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		if strings.TrimSpace(val) != "" {
			return val
		}
	}
	return defaultVal
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func defaultString(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
