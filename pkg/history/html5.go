package history

import (
	"context"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// HTML5 addresses routes with real paths under the base prefix and writes
// them with the platform history API.
type HTML5 struct {
	*Base
	platform      Platform
	startLocation string
	state         stateWriter
}

var _ History = (*HTML5)(nil)

func NewHTML5(m Matcher, p Platform, opts ...Option) *HTML5 {
	h := &HTML5{platform: p, state: stateWriter{platform: p}}
	h.Base = newBase(m, h, opts)
	h.startLocation = h.CurrentLocation()
	return h
}

// SetupListeners subscribes to popstate. Some browsers fire popstate on
// page load; that event is ignored while nothing has been navigated and
// the address is still the start location.
func (h *HTML5) SetupListeners() {
	h.installListeners(func() func() {
		return h.platform.AddEventListener(EventPopState, h.handlePop)
	})
}

func (h *HTML5) handlePop() {
	loc := h.CurrentLocation()
	if h.Current() == route.Start && loc == h.startLocation {
		return
	}
	_, _ = h.transitionTo(context.Background(), route.Parse(loc), commit{
		op: OpPop,
		after: func(to, from *route.Route) {
			h.scrollTo(to, from, true)
		},
	})
}

func (h *HTML5) Push(ctx context.Context, loc route.Location) (*route.Route, error) {
	return h.transitionTo(ctx, loc, commit{
		op: OpPush,
		after: func(to, from *route.Route) {
			h.pushState(CleanPath(h.base + to.FullPath()))
			h.scrollTo(to, from, false)
		},
	})
}

func (h *HTML5) Replace(ctx context.Context, loc route.Location) (*route.Route, error) {
	return h.transitionTo(ctx, loc, commit{
		op: OpReplace,
		after: func(to, from *route.Route) {
			h.replaceState(CleanPath(h.base + to.FullPath()))
			h.scrollTo(to, from, false)
		},
	})
}

// Go delegates to the platform; the resulting popstate drives the
// navigation.
func (h *HTML5) Go(_ context.Context, n int) error {
	h.platform.Go(n)
	return nil
}

// EnsureURL rewrites the address if it no longer shows the current route.
func (h *HTML5) EnsureURL(push bool) {
	cur := h.Current().FullPath()
	if h.CurrentLocation() == cur {
		return
	}
	u := CleanPath(h.base + cur)
	if push {
		h.pushState(u)
	} else {
		h.replaceState(u)
	}
}

func (h *HTML5) CurrentLocation() string {
	return locationUnder(h.platform.Href(), h.base)
}

func (h *HTML5) pushState(u string)    { h.state.push(u) }
func (h *HTML5) replaceState(u string) { h.state.replace(u) }
