package history

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/dmitrymomot/wayfinder/pkg/guard"
	"github.com/dmitrymomot/wayfinder/pkg/logger"
	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// Matcher resolves a navigation target against the route table. current
// is the committed route, used for relative and named targets.
type Matcher interface {
	Match(loc route.Location, current *route.Route) (*route.Route, error)
}

// History is the contract every backend fulfils.
type History interface {
	Push(ctx context.Context, loc route.Location) (*route.Route, error)
	Replace(ctx context.Context, loc route.Location) (*route.Route, error)
	Go(ctx context.Context, n int) error
	CurrentLocation() string
	EnsureURL(push bool)
	SetupListeners()

	TransitionTo(ctx context.Context, loc route.Location) (*route.Route, error)
	Current() *route.Route
	Pending() *route.Route
	Ready() bool
	BasePath() string
	Hooks() *Hooks
	Listen(fn func(*route.Route))
	OnReady(cb func(*route.Route), errCb func(error))
	OnError(cb func(error)) func()
	Teardown()
}

// navigator is the part of a backend the transition protocol calls back
// into for redirects and URL resynchronization.
type navigator interface {
	Push(ctx context.Context, loc route.Location) (*route.Route, error)
	Replace(ctx context.Context, loc route.Location) (*route.Route, error)
	EnsureURL(push bool)
}

const maxRedirects = 16

type redirectDepthKey struct{}

type commit struct {
	op Op
	// apply runs inside the commit critical section.
	apply func(to *route.Route)
	// after runs once the new route is visible, outside the lock.
	after func(to, from *route.Route)
	// redirected runs inside the lock when a guard redirects, before the
	// follow-up navigation starts.
	redirected func()
	// redirectReplace turns every guard redirect into a replace.
	redirectReplace bool
}

// Base implements the transition protocol shared by all backends:
// matching, guard queues, the commit, readiness and error reporting.
// Backends embed it and supply URL mechanics.
type Base struct {
	matcher   Matcher
	self      navigator
	hooks     *Hooks
	log       *slog.Logger
	base      string
	scheduler Scheduler
	scroll    ScrollFunc
	observers []Observer

	// seq identifies the transition that owns pending. A transition whose
	// number is no longer current has been superseded.
	seq atomic.Uint64

	mu          sync.Mutex
	current     *route.Route
	pending     *route.Route
	ready       bool
	readyCbs    []func(*route.Route)
	readyErrCbs []func(error)
	listener    func(*route.Route)
	listening   bool
	cleanups    []func()

	errorCbs callbacks[func(error)]
}

func newBase(m Matcher, self navigator, opts []Option) *Base {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.hooks == nil {
		o.hooks = NewHooks()
	}
	return &Base{
		matcher:   m,
		self:      self,
		hooks:     o.hooks,
		log:       o.log,
		base:      NormalizeBase(o.base),
		scheduler: o.scheduler,
		scroll:    o.scroll,
		observers: o.observers,
		current:   route.Start,
	}
}

func (h *Base) Current() *route.Route {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Pending returns the target of the in-flight navigation, or nil.
func (h *Base) Pending() *route.Route {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending
}

func (h *Base) Ready() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ready
}

// BasePath is the normalized base prefix, "" for the root.
func (h *Base) BasePath() string { return h.base }

func (h *Base) Hooks() *Hooks { return h.hooks }

// Listen sets the single route listener, called after every commit.
func (h *Base) Listen(fn func(*route.Route)) {
	h.mu.Lock()
	h.listener = fn
	h.mu.Unlock()
}

// OnReady calls cb once the first navigation has committed, immediately
// if it already has. errCb is called instead if the first navigation
// fails; a redirect away from the initial route does not count.
func (h *Base) OnReady(cb func(*route.Route), errCb func(error)) {
	h.mu.Lock()
	if h.ready {
		cur := h.current
		h.mu.Unlock()
		if cb != nil {
			cb(cur)
		}
		return
	}
	if cb != nil {
		h.readyCbs = append(h.readyCbs, cb)
	}
	if errCb != nil {
		h.readyErrCbs = append(h.readyErrCbs, errCb)
	}
	h.mu.Unlock()
}

// OnError registers a callback for unexpected navigation errors: matcher
// errors, guard failures and panics, component load errors.
func (h *Base) OnError(cb func(error)) func() {
	if cb == nil {
		return func() {}
	}
	return h.errorCbs.add(cb)
}

// SetupListeners is a no-op for backends without platform events.
func (h *Base) SetupListeners() {}

// Teardown removes platform listeners and resets the history to the
// initial route. In-flight navigations end as cancelled.
func (h *Base) Teardown() {
	h.mu.Lock()
	cleanups := h.cleanups
	h.cleanups = nil
	h.listening = false
	h.current = route.Start
	h.pending = nil
	h.seq.Inc()
	h.mu.Unlock()

	for _, fn := range cleanups {
		fn()
	}
}

// installListeners runs install once until the next Teardown.
func (h *Base) installListeners(install func() func()) {
	h.mu.Lock()
	if h.listening {
		h.mu.Unlock()
		return
	}
	h.listening = true
	h.mu.Unlock()

	remove := install()

	h.mu.Lock()
	h.cleanups = append(h.cleanups, remove)
	h.mu.Unlock()
}

// TransitionTo navigates to loc without touching the platform URL.
func (h *Base) TransitionTo(ctx context.Context, loc route.Location) (*route.Route, error) {
	return h.transitionTo(ctx, loc, commit{op: OpTransition})
}

func (h *Base) transitionTo(ctx context.Context, loc route.Location, c commit) (*route.Route, error) {
	ctx, id, start := h.begin(ctx)
	prev := h.Current()

	to, err := h.matcher.Match(loc, prev)
	if err == nil && to == nil {
		err = ErrNilRoute
	}
	if err != nil {
		for _, cb := range h.errorCbs.snapshot() {
			cb(err)
		}
		h.observe(ctx, Outcome{ID: id, Op: c.op, From: prev, Err: err, Duration: time.Since(start)})
		return nil, err
	}
	if loc.RedirectedFrom != nil && to.RedirectedFrom() == "" {
		to = to.WithRedirectedFrom(*loc.RedirectedFrom)
	}

	return h.navigate(ctx, id, start, to, c)
}

// navigate confirms an already matched route and runs the post-commit
// steps: URL check, after hooks and readiness.
func (h *Base) navigate(ctx context.Context, id string, start time.Time, to *route.Route, c commit) (*route.Route, error) {
	from, redirect, err := h.confirmTransition(ctx, to, commit{
		op:              c.op,
		apply:           c.apply,
		redirectReplace: c.redirectReplace,
		after: func(to, from *route.Route) {
			if c.after != nil {
				c.after(to, from)
			}
			h.self.EnsureURL(false)
			h.hooks.runAfter(to, from)
			h.markReady(to)
		},
	})

	h.observe(ctx, Outcome{ID: id, Op: c.op, From: from, To: to, Err: err, Duration: time.Since(start)})

	if err != nil {
		h.markFailed(err, from)
		if redirect != nil {
			if c.redirected != nil {
				h.mu.Lock()
				c.redirected()
				h.mu.Unlock()
			}
			redirect()
		}
		return nil, err
	}
	return to, nil
}

// confirmTransition runs the guard queues for to and commits it. On a
// redirect it returns the follow-up navigation for the caller to start
// once it has handled the REDIRECTED failure.
func (h *Base) confirmTransition(ctx context.Context, to *route.Route, c commit) (from *route.Route, redirect func(), err error) {
	h.mu.Lock()
	seq := h.seq.Inc()
	from = h.current
	h.pending = to
	h.mu.Unlock()

	if route.IsSame(to, from, false) &&
		len(to.Matched()) == len(from.Matched()) &&
		to.Leaf() == from.Leaf() {
		h.release(seq)
		h.self.EnsureURL(false)
		return from, nil, newFailure(Duplicated, from, to)
	}

	seg := guard.Diff(from.Matched(), to.Matched())
	alive := func() bool { return h.seq.Load() == seq }

	queue := slices.Concat(
		guard.LeaveGuards(seg.Deactivated),
		h.hooks.before.snapshot(),
		guard.UpdateGuards(seg.Updated),
		guard.BeforeEnter(seg.Activated),
		[]route.Guard{guard.ResolveAsync(seg.Activated)},
	)
	if redirect, err = h.runQueue(ctx, queue, to, from, alive, c.redirectReplace); err != nil {
		h.release(seq)
		return from, redirect, err
	}

	// Enter guards are extracted only now: async components have been
	// swapped into their records by the first queue.
	queue = slices.Concat(guard.EnterGuards(seg.Activated), h.hooks.resolve.snapshot())
	if redirect, err = h.runQueue(ctx, queue, to, from, alive, c.redirectReplace); err != nil {
		h.release(seq)
		return from, redirect, err
	}

	h.mu.Lock()
	if h.seq.Load() != seq {
		h.mu.Unlock()
		return from, nil, newFailure(Cancelled, from, to)
	}
	h.pending = nil
	h.current = to
	if c.apply != nil {
		c.apply(to)
	}
	listener := h.listener
	h.mu.Unlock()

	if listener != nil {
		listener(to)
	}
	if c.after != nil {
		c.after(to, from)
	}
	h.scheduler(func() { route.HandleEntered(to) })

	return from, nil, nil
}

func (h *Base) runQueue(ctx context.Context, queue []route.Guard, to, from *route.Route, alive func() bool, replace bool) (func(), error) {
	d, err := guard.Run(ctx, queue, to, from, alive)
	if err != nil {
		f := newFailure(Cancelled, from, to)
		f.cause = ctx.Err()
		return nil, f
	}

	switch d.Verdict() {
	case route.VerdictAbort:
		h.self.EnsureURL(true)
		return nil, newFailure(Aborted, from, to)
	case route.VerdictFail:
		h.self.EnsureURL(true)
		h.reportError(ctx, d.Err())
		return nil, d.Err()
	case route.VerdictRedirect:
		target := d.Target()
		if replace {
			target.Replace = true
		}
		return h.redirect(ctx, target, from, to)
	default:
		return nil, nil
	}
}

func (h *Base) redirect(ctx context.Context, target route.Location, from, to *route.Route) (func(), error) {
	depth, _ := ctx.Value(redirectDepthKey{}).(int)
	if depth >= maxRedirects {
		err := fmt.Errorf("%w: %d redirects ending at %q", ErrTooManyRedirects, depth, target.FullPath())
		h.self.EnsureURL(true)
		h.reportError(ctx, err)
		return nil, err
	}

	origin := to.Location()
	if rf := to.RedirectedFrom(); rf != "" {
		origin = route.Parse(rf)
	}
	target.RedirectedFrom = &origin
	rctx := context.WithValue(ctx, redirectDepthKey{}, depth+1)

	follow := func() {
		var err error
		if target.Replace {
			_, err = h.self.Replace(rctx, target)
		} else {
			_, err = h.self.Push(rctx, target)
		}
		if err != nil {
			h.log.DebugContext(ctx, "redirect target not committed",
				logger.Location(target.FullPath()),
				logger.Error(err),
			)
		}
	}
	return follow, newFailure(Redirected, from, to)
}

func (h *Base) reportError(ctx context.Context, err error) {
	cbs := h.errorCbs.snapshot()
	if len(cbs) == 0 {
		h.log.ErrorContext(ctx, "uncaught error during route navigation", logger.Error(err))
		return
	}
	for _, cb := range cbs {
		cb(err)
	}
}

func (h *Base) release(seq uint64) {
	h.mu.Lock()
	if h.seq.Load() == seq {
		h.pending = nil
	}
	h.mu.Unlock()
}

func (h *Base) markReady(to *route.Route) {
	h.mu.Lock()
	if h.ready {
		h.mu.Unlock()
		return
	}
	h.ready = true
	cbs := h.readyCbs
	h.readyCbs, h.readyErrCbs = nil, nil
	h.mu.Unlock()

	for _, cb := range cbs {
		cb(to)
	}
}

// markFailed settles readiness after a failed first navigation. A redirect
// away from the initial route leaves it open: the redirect target decides.
func (h *Base) markFailed(err error, from *route.Route) {
	if IsNavigationFailure(err, Redirected) && from == route.Start {
		return
	}

	h.mu.Lock()
	if h.ready {
		h.mu.Unlock()
		return
	}
	h.ready = true
	cbs := h.readyErrCbs
	h.readyCbs, h.readyErrCbs = nil, nil
	h.mu.Unlock()

	for _, cb := range cbs {
		cb(err)
	}
}

func (h *Base) begin(ctx context.Context) (context.Context, string, time.Time) {
	if ctx == nil {
		ctx = context.Background()
	}
	id := uuid.NewString()
	return logger.WithNavigationID(ctx, id), id, time.Now()
}

func (h *Base) observe(ctx context.Context, o Outcome) {
	attrs := []any{
		logger.Operation(string(o.Op)),
		logger.Route("from", o.From),
		logger.Route("to", o.To),
		logger.Duration(o.Duration),
	}
	if o.Err != nil {
		attrs = append(attrs, logger.Failure(o.Result()), logger.Error(o.Err))
		h.log.DebugContext(ctx, "navigation not confirmed", attrs...)
	} else {
		h.log.DebugContext(ctx, "navigation confirmed", attrs...)
	}

	for _, fn := range h.observers {
		fn(o)
	}
}

func (h *Base) scrollTo(to, from *route.Route, isPop bool) {
	if h.scroll != nil {
		h.scroll(to, from, isPop)
	}
}
