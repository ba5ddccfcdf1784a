package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EthanYidong/rehost/pkg/constants"
	"github.com/EthanYidong/rehost/pkg/errors"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	t.Setenv("REHOST_HOST", "")
	t.Setenv("REHOST_PORT", "")
	t.Setenv("REHOST_OVERRIDE", "")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultHost, config.Host)
	assert.Equal(t, constants.DefaultPort, config.Port)
	assert.False(t, config.Override)
	assert.Equal(t, constants.DefaultConcurrency, config.Concurrency)
	assert.Equal(t, constants.ShutdownTimeout, config.ShutdownTimeout)
	assert.NotEmpty(t, config.LogFormat)
}

// TestConfig_EnvironmentVariables verifies REHOST_* environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("REHOST_HOST", "127.0.0.1")
	t.Setenv("REHOST_PORT", "9090")
	t.Setenv("REHOST_OVERRIDE", "true")
	t.Setenv("REHOST_CONCURRENCY", "4")
	t.Setenv("REHOST_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", config.Host)
	assert.Equal(t, 9090, config.Port)
	assert.True(t, config.Override)
	assert.Equal(t, 4, config.Concurrency)
	assert.Equal(t, 5*time.Second, config.ShutdownTimeout)
	assert.Equal(t, "debug", config.EnvLogLevel)
	assert.Empty(t, config.LogLevel, "LOG_LEVEL must not masquerade as --log-level")
}

func TestConfig_InvalidPort(t *testing.T) {
	t.Setenv("REHOST_PORT", "eighty")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
	assert.Contains(t, err.Error(), "REHOST_PORT")
}

func TestConfig_ServerConfig(t *testing.T) {
	c := &Config{Host: "::1", Port: 8123, ShutdownTimeout: time.Second}
	sc := c.ServerConfig()

	assert.Equal(t, "[::1]:8123", sc.Addr())
	assert.Equal(t, time.Second, sc.ShutdownTimeout)
	assert.Equal(t, constants.ReadTimeout, sc.ReadTimeout)
}
