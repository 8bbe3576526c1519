package session

import (
	"context"
	"time"
)

// Config selects and tunes the snapshot store. An empty RedisURL selects
// the in-memory store.
type Config struct {
	RedisURL       string        `env:"REDIS_URL"`                                // e.g. "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`      // connection attempts before giving up
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`     // delay between attempts
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`   // upper bound for all attempts
	TTL            time.Duration `env:"SESSION_TTL" envDefault:"24h"`             // snapshot lifetime
	KeyPrefix      string        `env:"SESSION_KEY_PREFIX" envDefault:"nav:"`     // redis key namespace
	MemoryCapacity int           `env:"SESSION_MEMORY_CAPACITY" envDefault:"1024"` // in-memory store size
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		RetryAttempts:  3,
		RetryInterval:  5 * time.Second,
		ConnectTimeout: 30 * time.Second,
		TTL:            24 * time.Hour,
		KeyPrefix:      "nav:",
		MemoryCapacity: 1024,
	}
}

// NewStore builds the store cfg selects. The returned close function
// releases the redis connection and is a no-op for the memory store.
func NewStore(ctx context.Context, cfg Config, opts ...Option) (Store, func() error, error) {
	opts = append([]Option{WithTTL(cfg.TTL), WithKeyPrefix(cfg.KeyPrefix)}, opts...)

	if cfg.RedisURL == "" {
		capacity := cfg.MemoryCapacity
		if capacity <= 0 {
			capacity = DefaultConfig().MemoryCapacity
		}
		return NewMemoryStore(capacity, opts...), func() error { return nil }, nil
	}

	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewRedisStore(client, opts...), client.Close, nil
}
