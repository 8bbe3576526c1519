package wayfinder

import (
	"log/slog"

	"github.com/dmitrymomot/wayfinder/pkg/config"
	"github.com/dmitrymomot/wayfinder/pkg/history"
	"github.com/dmitrymomot/wayfinder/pkg/logger"
	"github.com/dmitrymomot/wayfinder/pkg/matcher"
)

// History modes.
const (
	ModeHistory  = config.ModeHistory
	ModeHash     = config.ModeHash
	ModeAbstract = config.ModeAbstract
)

// Option configures a Router.
type Option func(*options)

type options struct {
	mode      string
	base      string
	fallback  bool
	initial   string
	platform  history.Platform
	log       *slog.Logger
	scheduler history.Scheduler
	scroll    history.ScrollFunc
	observers []history.Observer
	buffer    int
	matcher   []matcher.Option
}

func defaultOptions() *options {
	return &options{
		fallback: true,
		log:      logger.Nop(),
		buffer:   16,
	}
}

// WithMode selects "history", "hash" or "abstract". Without a platform
// the router always runs in abstract mode. The default is hash mode when
// a platform is set.
func WithMode(mode string) Option {
	return func(o *options) { o.mode = mode }
}

// WithBase sets the path prefix the application is served under.
func WithBase(base string) Option {
	return func(o *options) { o.base = base }
}

// WithFallback controls whether history mode falls back to hash mode on
// platforms without pushState. Enabled by default.
func WithFallback(enabled bool) Option {
	return func(o *options) { o.fallback = enabled }
}

// WithPlatform sets the browser the router drives.
func WithPlatform(p history.Platform) Option {
	return func(o *options) { o.platform = p }
}

// WithInitialLocation is the location Start navigates to in abstract mode.
func WithInitialLocation(raw string) Option {
	return func(o *options) { o.initial = raw }
}

// WithConfig applies mode, base and fallback from a loaded config.
func WithConfig(cfg config.Router) Option {
	return func(o *options) {
		o.mode = cfg.Mode
		o.base = cfg.Base
		o.fallback = cfg.Fallback
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithScheduler sets where enter-guard callbacks are delivered after a
// commit. The default runs them synchronously.
func WithScheduler(s history.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithScroll sets the scroll collaborator.
func WithScroll(fn history.ScrollFunc) Option {
	return func(o *options) { o.scroll = fn }
}

// WithObserver adds an observer that receives every navigation outcome.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// WithSubscriberBuffer sets the per-subscriber channel size for Subscribe.
func WithSubscriberBuffer(n int) Option {
	return func(o *options) { o.buffer = n }
}

// WithMatcherOptions passes options to the matcher NewFromConfig builds.
func WithMatcherOptions(opts ...matcher.Option) Option {
	return func(o *options) { o.matcher = append(o.matcher, opts...) }
}
