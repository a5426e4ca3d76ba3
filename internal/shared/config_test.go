package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		assert.Equal(t, "./watchlist.db", config.Database.Path)
		assert.Equal(t, 5000, config.Server.Port)
		assert.Equal(t, "127.0.0.1:5000", config.Server.Addr())
		assert.Equal(t, "dev", config.Server.SecretKey)

		ttl, err := config.Server.TTL()
		require.NoError(t, err)
		assert.Equal(t, 168*time.Hour, ttl)
		assert.NoError(t, config.Validate())
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		require.NoError(t, CreateConfigFile(configPath))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Database.Path, config.Database.Path)

		assert.Error(t, CreateConfigFile(configPath), "creating config file again should fail")
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8080
secret_key = "s3cret"
session_ttl = "30m"
`
		require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0644))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)

		assert.Equal(t, "/custom/path.db", config.Database.Path)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "s3cret", config.Server.SecretKey)
		assert.Equal(t, 10, config.Database.MaxOpenConns, "unset keys keep their defaults")

		ttl, err := config.Server.TTL()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, ttl)
	})

	t.Run("LoadConfigOrDefault", func(t *testing.T) {
		config, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("LoadConfig malformed", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(configPath, []byte("[server\nport ="), 0644))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	tt := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty secret", mutate: func(c *Config) { c.Server.SecretKey = "" }},
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "empty database path", mutate: func(c *Config) { c.Database.Path = "" }},
		{name: "bad ttl", mutate: func(c *Config) { c.Server.SessionTTL = "soon" }},
		{name: "negative ttl", mutate: func(c *Config) { c.Server.SessionTTL = "-1h" }},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}
}
