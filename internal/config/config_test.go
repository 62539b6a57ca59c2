package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moshehbenavraham/graphmind/internal/types"
)

// clearEnv unsets every variable the loader reads so tests are hermetic.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FALKORDB_HOST", "FALKORDB_PORT", "FALKORDB_USER", "FALKORDB_PASSWORD",
		"FALKORDB_TLS", "FALKORDB_CONNECT_TIMEOUT",
		"GRAPHMIND_GRAPH_PREFIX", "GRAPHMIND_LOG_LEVEL", "GRAPHMIND_LOG_FORMAT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, "graphmind_connection_test", cfg.GraphPrefix)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FALKORDB_HOST", "demo.falkordb.cloud")
	t.Setenv("FALKORDB_PORT", "6379")
	t.Setenv("FALKORDB_USER", "verifier")
	t.Setenv("FALKORDB_PASSWORD", "secret")
	t.Setenv("FALKORDB_TLS", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "demo.falkordb.cloud", cfg.Host)
	assert.Equal(t, 6379, cfg.Port)
	assert.Equal(t, "verifier", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.True(t, cfg.TLS)
	assert.Equal(t, "demo.falkordb.cloud:6379", cfg.Addr())
}

func TestLoad_PortDefaultsWhenUnset(t *testing.T) {
	clearEnv(t)
	t.Setenv("FALKORDB_HOST", "localhost")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestLoad_YAMLFileThenEnvPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "graphmind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"host: file.example.com\nport: 1234\nlogging:\n  level: debug\n"), 0o644))

	t.Setenv("FALKORDB_PORT", "4321")

	cfg, err := Load(path)
	require.NoError(t, err)

	// File value survives where the environment is silent, env wins otherwise.
	assert.Equal(t, "file.example.com", cfg.Host)
	assert.Equal(t, 4321, cfg.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.NewError(types.CONFIG_LOAD_FAILED, "")))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) { c.Host = "h" }, true},
		{"missing host", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Host = "h"; c.Port = 0 }, false},
		{"bad timeout", func(c *Config) { c.Host = "h"; c.ConnectTimeout = 0 }, false},
		{"empty prefix", func(c *Config) { c.Host = "h"; c.GraphPrefix = "" }, false},
		{"bad log format", func(c *Config) { c.Host = "h"; c.Logging.Format = "xml" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "conn.env")
	require.NoError(t, os.WriteFile(path, []byte("FALKORDB_HOST=dotenv.example.com\n"), 0o644))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "dotenv.example.com", os.Getenv("FALKORDB_HOST"))

	// Explicit missing path is an error; implicit default is not.
	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
}
