package httpserver

import (
	"context"
	"log/slog"
	"time"
)

type options struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	log             *slog.Logger
	onShutdown      []func(context.Context) error
}

// Option configures the HTTP server.
type Option func(*options)

// WithAddr sets the address the server listens on. Use ":0" for a
// random port; Addr reports the bound address.
func WithAddr(addr string) Option {
	return func(o *options) {
		if addr != "" {
			o.addr = addr
		}
	}
}

// WithTimeouts sets the read, write and idle timeouts. Zero values keep
// the net/http defaults.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(o *options) {
		o.readTimeout = read
		o.writeTimeout = write
		o.idleTimeout = idle
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithOnShutdown registers a cleanup function run after the server has
// stopped accepting requests. Functions run in registration order.
func WithOnShutdown(fn func(context.Context) error) Option {
	return func(o *options) {
		if fn != nil {
			o.onShutdown = append(o.onShutdown, fn)
		}
	}
}
