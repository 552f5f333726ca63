package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HOST", "PORT", "LOG_LEVEL", "GIN_MODE", "DATABASE_URL", "REDIS_URL",
		"READINESS_INTERVAL", "READINESS_TIMEOUT", "SHUTDOWN_TIMEOUT",
	} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Empty(t, cfg.Dependencies.DatabaseURL)
	assert.Empty(t, cfg.Dependencies.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.Readiness.Interval)
	assert.Equal(t, 2*time.Second, cfg.Readiness.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.ShutdownTimeout)
	assert.Equal(t, "0.0.0.0:5000", cfg.GetHTTPAddr())
}

func TestLoad_PortFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "0.0.0.0:8081", cfg.GetHTTPAddr())
}

func TestLoad_NonNumericPort(t *testing.T) {
	t.Setenv("PORT", "http")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Host:     "0.0.0.0",
			Port:     5000,
			LogLevel: "info",
			GinMode:  "release",
			Readiness: ReadinessConfig{
				Interval: time.Second,
				Timeout:  time.Second,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "ephemeral port", mutate: func(c *Config) { c.Port = 0 }},
		{name: "negative port", mutate: func(c *Config) { c.Port = -1 }, wantErr: "invalid HTTP port"},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "invalid HTTP port"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "invalid log level"},
		{name: "bad gin mode", mutate: func(c *Config) { c.GinMode = "prod" }, wantErr: "invalid gin mode"},
		{name: "zero interval", mutate: func(c *Config) { c.Readiness.Interval = 0 }, wantErr: "readiness interval"},
		{name: "zero timeout", mutate: func(c *Config) { c.Readiness.Timeout = 0 }, wantErr: "readiness timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()

	prev, ok := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if ok {
			os.Setenv(key, prev)
		}
	})
}
