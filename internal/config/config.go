package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the inventory backend
type Config struct {
	// Server configuration
	Host     string `env:"HOST" envDefault:"0.0.0.0"`
	Port     int    `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`

	// Optional dependencies probed for readiness
	Dependencies DependencyConfig

	// Readiness probing
	Readiness ReadinessConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// DependencyConfig holds connection strings for optional backing services.
// An empty value disables the matching probe.
type DependencyConfig struct {
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
}

// ReadinessConfig holds readiness monitor configuration
type ReadinessConfig struct {
	Interval time.Duration `env:"READINESS_INTERVAL" envDefault:"30s"`
	Timeout  time.Duration `env:"READINESS_TIMEOUT" envDefault:"2s"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	HTTPRead        time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWrite       time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	HTTPIdle        time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Port 0 asks the kernel for a free port
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	validGinModes := map[string]bool{
		"debug":   true,
		"release": true,
		"test":    true,
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid gin mode: %s (must be debug, release, or test)", c.GinMode)
	}

	if c.Readiness.Interval <= 0 {
		return fmt.Errorf("readiness interval must be positive")
	}
	if c.Readiness.Timeout <= 0 {
		return fmt.Errorf("readiness timeout must be positive")
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
