package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wayfinder/pkg/session"
)

func TestDefaultConfigMatchesEnv(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	var cfg session.Config
	require.NoError(t, env.Parse(&cfg))
	assert.Equal(t, session.DefaultConfig(), cfg)
}

func TestNewStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("memory when no redis url", func(t *testing.T) {
		t.Parallel()
		store, closeStore, err := session.NewStore(ctx, session.DefaultConfig())
		require.NoError(t, err)
		defer func() { assert.NoError(t, closeStore()) }()

		_, ok := store.(*session.MemoryStore)
		assert.True(t, ok)
	})

	t.Run("invalid redis url", func(t *testing.T) {
		t.Parallel()
		cfg := session.DefaultConfig()
		cfg.RedisURL = "not-a-url://"
		_, _, err := session.NewStore(ctx, cfg)
		assert.ErrorIs(t, err, session.ErrFailedToParseRedisConnString)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		t.Parallel()
		cfg := session.DefaultConfig()
		cfg.RedisURL = "redis://127.0.0.1:1/0"
		cfg.RetryAttempts = 1
		cfg.RetryInterval = 10 * time.Millisecond
		cfg.ConnectTimeout = 2 * time.Second

		_, err := session.Connect(ctx, cfg)
		assert.ErrorIs(t, err, session.ErrRedisNotReady)
	})
}
