package wayfinder

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/dmitrymomot/wayfinder/pkg/config"
	"github.com/dmitrymomot/wayfinder/pkg/history"
	"github.com/dmitrymomot/wayfinder/pkg/logger"
	"github.com/dmitrymomot/wayfinder/pkg/matcher"
	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// RouteAdder is implemented by matchers that accept routes at runtime.
type RouteAdder interface {
	AddRoute(parent string, cfg matcher.RouteConfig) error
}

// RouteLister is implemented by matchers that can list their records.
type RouteLister interface {
	Routes() []*route.Record
}

// Router is the public navigation surface. It owns one history backend
// chosen by mode and fans committed routes out to subscribers.
type Router struct {
	matcher  history.Matcher
	history  history.History
	hooks    *history.Hooks
	mode     string
	fallback bool
	initial  string

	started atomic.Bool
	stopped atomic.Bool

	mu   sync.Mutex
	last *route.Route
	feed *feed
}

// New creates a router over m.
func New(m history.Matcher, opts ...Option) (*Router, error) {
	if m == nil {
		return nil, ErrNilMatcher
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cfg := config.Router{Mode: o.mode}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode := cfg.Mode
	if o.mode == "" && o.platform != nil {
		mode = ModeHash
	}

	r := &Router{
		matcher: m,
		hooks:   history.NewHooks(),
		initial: o.initial,
		last:    route.Start,
		feed:    newFeed(o.buffer),
	}

	if mode == ModeHistory && o.platform != nil && !o.platform.SupportsPushState() && o.fallback {
		mode = ModeHash
		r.fallback = true
	}
	if o.platform == nil {
		mode = ModeAbstract
	}
	r.mode = mode

	hopts := []history.Option{
		history.WithBase(o.base),
		history.WithLogger(o.log.With(logger.Mode(mode))),
		history.WithHooks(r.hooks),
		history.WithScroll(o.scroll),
	}
	if o.scheduler != nil {
		hopts = append(hopts, history.WithScheduler(o.scheduler))
	}
	for _, obs := range o.observers {
		hopts = append(hopts, history.WithObserver(obs))
	}

	switch mode {
	case ModeHistory:
		r.history = history.NewHTML5(m, o.platform, hopts...)
	case ModeHash:
		r.history = history.NewHash(m, o.platform, r.fallback, hopts...)
	default:
		r.history = history.NewMemory(m, hopts...)
	}
	r.history.Listen(r.publish)

	return r, nil
}

// NewFromConfig loads the route table named by cfg.RoutesFile, builds a
// logger from the log settings and returns a router configured by cfg.
func NewFromConfig(cfg config.Router, opts ...Option) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	m, err := matcher.NewFromFile(cfg.RoutesFile, o.matcher...)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, "wayfinder"),
		logger.WithRawLevel(cfg.LogLevel),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
	)
	return New(m, append([]Option{WithConfig(cfg), WithLogger(log)}, opts...)...)
}

func (r *Router) publish(to *route.Route) {
	r.mu.Lock()
	from := r.last
	r.last = to
	r.mu.Unlock()
	r.feed.publish(Change{To: to, From: from})
}

// Mode is the history mode in effect after fallback.
func (r *Router) Mode() string { return r.mode }

// FellBack reports whether history mode was requested but hash mode is
// used because the platform lacks pushState.
func (r *Router) FellBack() bool { return r.fallback }

// History exposes the backend.
func (r *Router) History() history.History { return r.history }

// CurrentRoute is the last committed route, route.Start before the first
// navigation.
func (r *Router) CurrentRoute() *route.Route { return r.history.Current() }

// Start performs the initial navigation and then installs the platform
// listeners. In abstract mode it navigates to the initial location, if
// one was configured.
func (r *Router) Start(ctx context.Context) (*route.Route, error) {
	if r.stopped.Load() {
		return nil, ErrStopped
	}
	if !r.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyStarted
	}

	if r.mode == ModeAbstract {
		if r.initial == "" {
			return r.history.Current(), nil
		}
		return r.history.Push(ctx, route.Parse(r.initial))
	}

	to, err := r.history.TransitionTo(ctx, route.Parse(r.history.CurrentLocation()))
	r.history.SetupListeners()
	return to, err
}

// Stop removes platform listeners, cancels in-flight navigations and
// closes every subscription. A stopped router cannot be restarted.
func (r *Router) Stop() {
	if r.stopped.Swap(true) {
		return
	}
	r.history.Teardown()
	r.mu.Lock()
	r.last = route.Start
	r.mu.Unlock()
	r.feed.close()
}

func (r *Router) Push(ctx context.Context, loc route.Location) (*route.Route, error) {
	return r.history.Push(ctx, loc)
}

func (r *Router) Replace(ctx context.Context, loc route.Location) (*route.Route, error) {
	return r.history.Replace(ctx, loc)
}

// PushAsync starts a push and returns at once.
func (r *Router) PushAsync(ctx context.Context, loc route.Location) *Future[*route.Route] {
	return runAsync(ctx, func(ctx context.Context) (*route.Route, error) {
		return r.history.Push(ctx, loc)
	})
}

// ReplaceAsync starts a replace and returns at once.
func (r *Router) ReplaceAsync(ctx context.Context, loc route.Location) *Future[*route.Route] {
	return runAsync(ctx, func(ctx context.Context) (*route.Route, error) {
		return r.history.Replace(ctx, loc)
	})
}

// Go moves n entries through the history. Out of range moves are ignored.
func (r *Router) Go(ctx context.Context, n int) error {
	return r.history.Go(ctx, n)
}

func (r *Router) Back(ctx context.Context) error    { return r.Go(ctx, -1) }
func (r *Router) Forward(ctx context.Context) error { return r.Go(ctx, 1) }

// BeforeEach registers a global guard run before per-route guards.
func (r *Router) BeforeEach(g route.Guard) func() { return r.hooks.BeforeEach(g) }

// BeforeResolve registers a global guard run after enter guards and
// async components.
func (r *Router) BeforeResolve(g route.Guard) func() { return r.hooks.BeforeResolve(g) }

// AfterEach registers a hook run after every commit.
func (r *Router) AfterEach(fn history.AfterHook) func() { return r.hooks.AfterEach(fn) }

// OnReady calls cb once the initial navigation has committed, errCb if
// it failed.
func (r *Router) OnReady(cb func(*route.Route), errCb func(error)) {
	r.history.OnReady(cb, errCb)
}

// OnError registers a callback for unexpected navigation errors.
func (r *Router) OnError(cb func(error)) func() { return r.history.OnError(cb) }

// Subscribe returns a channel receiving every committed route change.
// The channel is closed when ctx ends, when the router stops, or when
// the subscriber falls behind by more than the subscriber buffer.
func (r *Router) Subscribe(ctx context.Context) <-chan Change {
	return r.feed.subscribe(ctx).ch
}

// Resolved is the outcome of Resolve.
type Resolved struct {
	Location route.Location
	Route    *route.Route
	Href     string
}

// Resolve matches loc against the current route without navigating and
// builds the href an anchor would use.
func (r *Router) Resolve(loc route.Location) (Resolved, error) {
	rt, err := r.matcher.Match(loc, r.history.Current())
	if err != nil {
		return Resolved{}, err
	}
	if rt == nil {
		return Resolved{}, history.ErrNilRoute
	}
	return Resolved{
		Location: rt.Location(),
		Route:    rt,
		Href:     createHref(r.history.BasePath(), rt.FullPath(), r.mode),
	}, nil
}

// MatchedComponents lists the components of every record matched by rt,
// or by the current route when rt is nil.
func (r *Router) MatchedComponents(rt *route.Route) []*route.Component {
	if rt == nil {
		rt = r.history.Current()
	}
	var out []*route.Component
	for _, rec := range rt.Matched() {
		for _, slot := range rec.Slots() {
			if c := rec.Component(slot); c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

// AddRoute adds cfg under the named parent route and, once the router has
// navigated, re-resolves the current location against the new table.
func (r *Router) AddRoute(ctx context.Context, parent string, cfg matcher.RouteConfig) error {
	adder, ok := r.matcher.(RouteAdder)
	if !ok {
		return ErrRoutesImmutable
	}
	if err := adder.AddRoute(parent, cfg); err != nil {
		return err
	}
	if r.history.Current() == route.Start {
		return nil
	}
	_, err := r.history.TransitionTo(ctx, route.Parse(r.history.CurrentLocation()))
	if err != nil && !history.IsNavigationFailure(err) {
		return err
	}
	return nil
}

// Routes lists the matcher's records, or nil if it cannot list them.
func (r *Router) Routes() []*route.Record {
	if lister, ok := r.matcher.(RouteLister); ok {
		return lister.Routes()
	}
	return nil
}

// RegisterInstance records the component instance rendered for slot of
// rec and delivers enter-guard callbacks waiting for it.
func (r *Router) RegisterInstance(rec *route.Record, slot string, instance any) error {
	if rec == nil {
		return ErrNilRecord
	}
	rec.SetInstance(slot, instance)
	route.HandleEntered(r.history.Current())
	return nil
}

// UnregisterInstance removes instance from slot of rec if it is still
// the registered one.
func (r *Router) UnregisterInstance(rec *route.Record, slot string, instance any) bool {
	if rec == nil {
		return false
	}
	return rec.UnsetInstance(slot, instance)
}

// Snapshot returns the in-memory history stack.
func (r *Router) Snapshot() (history.Snapshot, error) {
	mem, ok := r.history.(*history.Memory)
	if !ok {
		return history.Snapshot{}, ErrNotAbstract
	}
	return mem.Snapshot(), nil
}

// Restore replaces the in-memory history stack with snap and navigates
// to its current entry.
func (r *Router) Restore(ctx context.Context, snap history.Snapshot) (*route.Route, error) {
	mem, ok := r.history.(*history.Memory)
	if !ok {
		return nil, ErrNotAbstract
	}
	return mem.Restore(ctx, snap)
}

func createHref(base, fullPath, mode string) string {
	p := fullPath
	if mode == ModeHash {
		p = "#" + fullPath
	}
	if base == "" {
		return p
	}
	return history.CleanPath(base + "/" + p)
}
