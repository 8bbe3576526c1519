package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wayfinder/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Info("hello")

		entry := decode(t, &buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter option", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("includes default attributes", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithAttr(slog.String("app", "navd")))
		log.Info("hello")
		assert.Equal(t, "navd", decode(t, &buf)["app"])
	})

	t.Run("extracts navigation id", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		ctx := logger.WithNavigationID(context.Background(), "nav-1")
		log.InfoContext(ctx, "confirmed")
		assert.Equal(t, "nav-1", decode(t, &buf)["navigation_id"])
	})

	t.Run("extracts from context", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextExtractors(logger.WithContextValue("tenant", ctxKey{}), nil),
		)
		ctx := context.WithValue(context.Background(), ctxKey{}, "acme")
		log.InfoContext(ctx, "hello")
		assert.Equal(t, "acme", decode(t, &buf)["tenant"])
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithRawLevel("warn"))
		log.Info("dropped")
		assert.Zero(t, buf.Len())
		log.Warn("kept")
		assert.NotZero(t, buf.Len())
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development uses text and debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithEnvironment("development", "navd"), logger.WithOutput(&buf))
		log.Debug("visible")
		assert.Contains(t, buf.String(), "service=navd")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("production uses json and info", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithEnvironment("prod", "navd"), logger.WithOutput(&buf))
		log.Debug("hidden")
		assert.Zero(t, buf.Len())
		log.Info("shown")
		entry := decode(t, &buf)
		assert.Equal(t, "production", entry["env"])
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for raw, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(raw), raw)
	}
}

func TestNavigationIDFromContext(t *testing.T) {
	assert.Empty(t, logger.NavigationIDFromContext(context.Background()))
	ctx := logger.WithNavigationID(context.Background(), "abc")
	assert.Equal(t, "abc", logger.NavigationIDFromContext(ctx))
}
