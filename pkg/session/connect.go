package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// Connect opens a redis client and pings it until it answers, at most
// cfg.RetryAttempts times with cfg.RetryInterval between attempts, all
// within cfg.ConnectTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = time.Second
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(interval))

	var client *redis.Client
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		c := redis.NewClient(opt)
		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			return retry.RetryableError(err)
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrRedisNotReady, err)
	}
	return client, nil
}

// Healthcheck pings the redis server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
