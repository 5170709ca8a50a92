package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var baseValidConfig = AppConfig{
	Server: ServerConfig{
		Port:                   9090,
		ReadTimeoutSeconds:     20,
		WriteTimeoutSeconds:    20,
		ShutdownTimeoutSeconds: 5,
	},
	Store: StoreConfig{Path: "test-loans.db"},
	Cache: CacheConfig{
		Enabled:               true,
		Addr:                  "localhost:6379",
		Password:              "pass",
		DB:                    1,
		TTLMinutes:            30,
		ConnectTimeoutSeconds: 5,
	},
	Logging: LogConfig{Level: "debug"},
}

func writeTempConfig(t *testing.T, cfg AppConfig) string {
	t.Helper()
	data, _ := yaml.Marshal(cfg)
	tmp := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmp, data, 0644))
	return tmp
}

func TestLoadFromConfigFilePath(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeTempConfig(t, baseValidConfig)
		cfg, err := LoadFromConfigFilePath(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "test-loans.db", cfg.Store.Path)
		assert.True(t, cfg.Cache.Enabled)
		assert.Equal(t, 30*time.Minute, cfg.Cache.TTL())
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromConfigFilePath(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		tmp := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(tmp, []byte("server: [not a map"), 0644))
		_, err := LoadFromConfigFilePath(tmp)
		assert.Error(t, err)
	})

	t.Run("defaults fill omitted fields", func(t *testing.T) {
		tmp := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(tmp, []byte("store:\n  path: other.db\n"), 0644))
		cfg, err := LoadFromConfigFilePath(tmp)
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "other.db", cfg.Store.Path)
		assert.False(t, cfg.Cache.Enabled)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout())
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout())
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := writeTempConfig(t, baseValidConfig)
		t.Setenv("SERVER_PORT", "7171")
		t.Setenv("LOGGING_LEVEL", "warn")
		cfg, err := LoadFromConfigFilePath(path)
		require.NoError(t, err)
		assert.Equal(t, 7171, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})
}

func TestValidateConfigErrors(t *testing.T) {
	t.Run("port out of range", func(t *testing.T) {
		c := baseValidConfig
		c.Server.Port = 70000
		assert.Error(t, validateConfig(&c))
	})

	t.Run("empty store path", func(t *testing.T) {
		c := baseValidConfig
		c.Store.Path = ""
		assert.Error(t, validateConfig(&c))
	})

	t.Run("enabled cache without addr", func(t *testing.T) {
		c := baseValidConfig
		c.Cache.Addr = ""
		assert.Error(t, validateConfig(&c))
	})

	t.Run("enabled cache with zero ttl", func(t *testing.T) {
		c := baseValidConfig
		c.Cache.TTLMinutes = 0
		assert.Error(t, validateConfig(&c))
	})

	t.Run("disabled cache skips cache checks", func(t *testing.T) {
		c := baseValidConfig
		c.Cache.Enabled = false
		c.Cache.Addr = ""
		assert.NoError(t, validateConfig(&c))
	})

	t.Run("unknown log level", func(t *testing.T) {
		c := baseValidConfig
		c.Logging.Level = "verbose"
		assert.Error(t, validateConfig(&c))
	})
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("INT_KEY", "42")
	assert.Equal(t, 42, GetEnvOrDefaultAsInt("INT_KEY", 5))

	t.Setenv("INT_KEY", "invalid")
	assert.Equal(t, 5, GetEnvOrDefaultAsInt("INT_KEY", 5))

	os.Unsetenv("INT_KEY")
	assert.Equal(t, 5, GetEnvOrDefaultAsInt("INT_KEY", 5))
}

func TestLoadFromConfig(t *testing.T) {
	t.Run("valid config from env", func(t *testing.T) {
		path := writeTempConfig(t, baseValidConfig)
		t.Setenv("CONFIG_PATH", path)
		cfg, err := LoadFromConfig()
		require.NoError(t, err)
		assert.Equal(t, "test-loans.db", cfg.Store.Path)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
		cfg, err := LoadFromConfig()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "loans.db", cfg.Store.Path)
	})

	t.Run("env alone configures the service", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
		t.Setenv("SERVER_PORT", "6060")
		t.Setenv("STORE_PATH", "env.db")
		t.Setenv("CACHE_ENABLED", "1")
		cfg, err := LoadFromConfig()
		require.NoError(t, err)
		assert.Equal(t, 6060, cfg.Server.Port)
		assert.Equal(t, "env.db", cfg.Store.Path)
		assert.True(t, cfg.Cache.Enabled)
		assert.Equal(t, 60*time.Minute, cfg.Cache.TTL())
	})
}
