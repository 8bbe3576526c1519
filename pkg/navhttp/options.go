package navhttp

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/wayfinder"
	"github.com/dmitrymomot/wayfinder/pkg/logger"
	"github.com/dmitrymomot/wayfinder/pkg/visitor"
)

type options struct {
	log       *slog.Logger
	timeout   time.Duration
	observers []wayfinder.Observer
	visitor   []visitor.Option
}

func defaultOptions() *options {
	return &options{
		log:     logger.Nop(),
		timeout: 5 * time.Second,
	}
}

type Option func(*options)

func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithTimeout bounds a single navigation, guards included.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithObserver receives the outcome of every navigation performed by the
// per-request routers.
func WithObserver(fn wayfinder.Observer) Option {
	return func(o *options) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// WithVisitorOptions configures the visitor id middleware installed by
// Routes.
func WithVisitorOptions(opts ...visitor.Option) Option {
	return func(o *options) { o.visitor = append(o.visitor, opts...) }
}
