package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProbeName is the name the Redis probe reports under
const ProbeName = "redis"

// Probe checks that a Redis server answers PING
type Probe struct {
	client *redis.Client
}

// Open parses a redis:// or rediss:// URL and returns a probe for it.
// No connection is made until Check is called.
func Open(rawURL string, timeout time.Duration) (*Probe, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	opts.DialTimeout = timeout
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout
	opts.PoolSize = 2
	opts.MinIdleConns = 0
	opts.MaxRetries = 1

	return New(redis.NewClient(opts)), nil
}

// New wraps an existing client
func New(client *redis.Client) *Probe {
	return &Probe{client: client}
}

// Name returns the probe name
func (p *Probe) Name() string {
	return ProbeName
}

// Check pings the server
func (p *Probe) Check(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// Addr returns the configured server address
func (p *Probe) Addr() string {
	return p.client.Options().Addr
}

// Close releases the client's connections
func (p *Probe) Close() error {
	if err := p.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}
