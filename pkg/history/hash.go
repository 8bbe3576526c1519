package history

import (
	"context"
	"strings"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// Hash addresses routes in the URL fragment ("/#/users/1").
type Hash struct {
	*Base
	platform   Platform
	state      stateWriter
	redirected bool
}

var _ History = (*Hash)(nil)

// NewHash creates a fragment backend. With fallback set and an address
// that is not in fragment form yet, the platform is sent to the fragment
// form of the same location and FellBack reports true; the page is
// expected to reload.
func NewHash(m Matcher, p Platform, fallback bool, opts ...Option) *Hash {
	h := &Hash{platform: p, state: stateWriter{platform: p}}
	h.Base = newBase(m, h, opts)
	if fallback && h.checkFallback() {
		h.redirected = true
		return h
	}
	h.ensureSlash()
	return h
}

// FellBack reports whether construction rewrote a path address into
// fragment form.
func (h *Hash) FellBack() bool { return h.redirected }

// SetupListeners subscribes to popstate, or to hashchange when the
// platform has no history API.
func (h *Hash) SetupListeners() {
	ev := EventHashChange
	if h.platform.SupportsPushState() {
		ev = EventPopState
	}
	h.installListeners(func() func() {
		return h.platform.AddEventListener(ev, h.handleChange)
	})
}

func (h *Hash) handleChange() {
	if !h.ensureSlash() {
		return
	}
	_, _ = h.transitionTo(context.Background(), route.Parse(h.fragment()), commit{
		op: OpPop,
		after: func(to, from *route.Route) {
			h.scrollTo(to, from, true)
			if !h.platform.SupportsPushState() {
				h.replaceHash(to.FullPath())
			}
		},
	})
}

func (h *Hash) Push(ctx context.Context, loc route.Location) (*route.Route, error) {
	return h.transitionTo(ctx, loc, commit{
		op: OpPush,
		after: func(to, from *route.Route) {
			h.pushHash(to.FullPath())
			h.scrollTo(to, from, false)
		},
	})
}

func (h *Hash) Replace(ctx context.Context, loc route.Location) (*route.Route, error) {
	return h.transitionTo(ctx, loc, commit{
		op: OpReplace,
		after: func(to, from *route.Route) {
			h.replaceHash(to.FullPath())
			h.scrollTo(to, from, false)
		},
	})
}

func (h *Hash) Go(_ context.Context, n int) error {
	h.platform.Go(n)
	return nil
}

func (h *Hash) EnsureURL(push bool) {
	cur := h.Current().FullPath()
	if h.fragment() == cur {
		return
	}
	if push {
		h.pushHash(cur)
	} else {
		h.replaceHash(cur)
	}
}

func (h *Hash) CurrentLocation() string {
	return h.fragment()
}

func (h *Hash) checkFallback() bool {
	loc := locationUnder(h.platform.Href(), h.base)
	if strings.HasPrefix(loc, "/#") {
		return false
	}
	h.platform.ReplaceLocation(CleanPath(h.base + "/#" + loc))
	return true
}

// ensureSlash rewrites a fragment without a leading slash and reports
// whether the fragment was already well formed.
func (h *Hash) ensureSlash() bool {
	frag := h.fragment()
	if strings.HasPrefix(frag, "/") {
		return true
	}
	h.replaceHash("/" + frag)
	return false
}

func (h *Hash) fragment() string {
	return fragmentOf(h.platform.Href())
}

func (h *Hash) pushHash(path string) {
	if h.platform.SupportsPushState() {
		h.state.push(withFragment(h.platform.Href(), path))
		return
	}
	h.platform.AssignHash(path)
}

func (h *Hash) replaceHash(path string) {
	u := withFragment(h.platform.Href(), path)
	if h.platform.SupportsPushState() {
		h.state.replace(u)
		return
	}
	h.platform.ReplaceLocation(u)
}
