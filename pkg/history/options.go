package history

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/wayfinder/pkg/logger"
	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// Scheduler runs fn some time after a commit. The entered-callback
// delivery is handed to it so hosts can defer it until their render pass.
type Scheduler func(fn func())

// ScrollFunc is called after the URL has been written for a commit.
// isPop is true for navigations triggered by the platform (back/forward).
type ScrollFunc func(to, from *route.Route, isPop bool)

// Op names the operation that started a navigation.
type Op string

const (
	OpPush       Op = "push"
	OpReplace    Op = "replace"
	OpGo         Op = "go"
	OpPop        Op = "pop"
	OpTransition Op = "transition"
	OpRestore    Op = "restore"
)

// Outcome describes a finished navigation attempt.
type Outcome struct {
	ID       string
	Op       Op
	From     *route.Route
	To       *route.Route
	Err      error
	Duration time.Duration
}

// Result is "confirmed", the failure type name or "error".
func (o Outcome) Result() string {
	if o.Err == nil {
		return "confirmed"
	}
	if f, ok := AsNavigationFailure(o.Err); ok {
		return f.Type.String()
	}
	return "error"
}

// Observer receives every navigation outcome.
type Observer func(Outcome)

// Option configures a History.
type Option func(*options)

type options struct {
	base      string
	log       *slog.Logger
	hooks     *Hooks
	scheduler Scheduler
	scroll    ScrollFunc
	observers []Observer
}

func defaultOptions() *options {
	return &options{
		log:       logger.Nop(),
		scheduler: func(fn func()) { fn() },
	}
}

// WithBase sets the path prefix the application is served under.
func WithBase(base string) Option {
	return func(o *options) { o.base = base }
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithHooks shares a hook registry, typically the router's.
func WithHooks(h *Hooks) Option {
	return func(o *options) {
		if h != nil {
			o.hooks = h
		}
	}
}

// WithScheduler replaces the default scheduler, which runs the entered
// callbacks synchronously right after the commit.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

func WithScroll(fn ScrollFunc) Option {
	return func(o *options) { o.scroll = fn }
}

// WithObserver adds an outcome observer. Observers run synchronously on
// the navigating goroutine.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// NormalizeBase adds a leading slash and strips a trailing one, so "/"
// becomes "".
func NormalizeBase(base string) string {
	if base == "" {
		base = "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return strings.TrimSuffix(base, "/")
}
