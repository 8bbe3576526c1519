package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/wayfinder/pkg/history"
	"github.com/dmitrymomot/wayfinder/pkg/logger"
)

// Store persists in-memory history snapshots between requests.
type Store interface {
	// Save stores snap under key, replacing any previous value.
	Save(ctx context.Context, key string, snap history.Snapshot) error

	// Load returns the snapshot stored under key. Missing keys yield
	// ErrNotFound.
	Load(ctx context.Context, key string) (history.Snapshot, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by stores backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Option configures a store.
type Option func(*options)

type options struct {
	ttl    time.Duration
	prefix string
	now    func() time.Time
	log    *slog.Logger
}

func defaultOptions() *options {
	return &options{
		ttl:    24 * time.Hour,
		prefix: "nav:",
		now:    time.Now,
		log:    logger.Nop(),
	}
}

// WithTTL sets how long snapshots are kept. Zero keeps them until evicted.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithKeyPrefix namespaces keys in shared backends.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
