package history

import (
	"net/url"
	"sync"
)

// MemoryPlatform is a headless Platform. It keeps its own entry list and
// queues the events a browser would fire; Flush delivers them. Queuing
// keeps listener-triggered navigations off the goroutine that wrote the
// URL, as a browser event loop would.
type MemoryPlatform struct {
	mu        sync.Mutex
	entries   []platformEntry
	index     int
	pushState bool
	reloads   int
	listeners map[Event][]*func()
	queue     []Event
}

type platformEntry struct {
	href  string
	state State
}

// PlatformOption configures a MemoryPlatform.
type PlatformOption func(*MemoryPlatform)

// WithoutPushState simulates a browser without the history API.
func WithoutPushState() PlatformOption {
	return func(p *MemoryPlatform) { p.pushState = false }
}

// NewMemoryPlatform starts at href, e.g. "http://localhost/app/".
func NewMemoryPlatform(href string, opts ...PlatformOption) *MemoryPlatform {
	p := &MemoryPlatform{
		entries:   []platformEntry{{href: href}},
		pushState: true,
		listeners: map[Event][]*func(){},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ Platform = (*MemoryPlatform)(nil)

func (p *MemoryPlatform) Href() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entries[p.index].href
}

// State returns the state of the current entry.
func (p *MemoryPlatform) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entries[p.index].state
}

func (p *MemoryPlatform) PushState(state State, u string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.push(platformEntry{href: p.resolve(u), state: state})
}

func (p *MemoryPlatform) ReplaceState(state State, u string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[p.index] = platformEntry{href: p.resolve(u), state: state}
}

// Go moves through the entries and queues a popstate event, plus a
// hashchange when only the fragment changed.
func (p *MemoryPlatform) Go(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	target := p.index + n
	if n == 0 || target < 0 || target >= len(p.entries) {
		return
	}
	prev := p.entries[p.index].href
	p.index = target
	p.queue = append(p.queue, EventPopState)
	if fragmentOf(prev) != fragmentOf(p.entries[target].href) {
		p.queue = append(p.queue, EventHashChange)
	}
}

func (p *MemoryPlatform) AssignHash(fragment string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur := p.entries[p.index].href
	next := withFragment(cur, fragment)
	if next == cur {
		return
	}
	p.push(platformEntry{href: next})
	p.queue = append(p.queue, EventPopState, EventHashChange)
}

// ReplaceLocation replaces the current entry. Anything but a fragment-only
// change counts as a page reload.
func (p *MemoryPlatform) ReplaceLocation(u string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur := p.entries[p.index].href
	next := p.resolve(u)
	p.entries[p.index] = platformEntry{href: next}

	curPath, curSearch, _ := splitHref(cur)
	nextPath, nextSearch, _ := splitHref(next)
	switch {
	case curPath != nextPath || curSearch != nextSearch:
		p.reloads++
	case fragmentOf(cur) != fragmentOf(next):
		p.queue = append(p.queue, EventHashChange)
	}
}

func (p *MemoryPlatform) SupportsPushState() bool {
	return p.pushState
}

func (p *MemoryPlatform) AddEventListener(ev Event, fn func()) func() {
	entry := &fn
	p.mu.Lock()
	p.listeners[ev] = append(p.listeners[ev], entry)
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		list := p.listeners[ev]
		for i, cur := range list {
			if cur == entry {
				p.listeners[ev] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Dispatch queues ev as if the platform had fired it.
func (p *MemoryPlatform) Dispatch(ev Event) {
	p.mu.Lock()
	p.queue = append(p.queue, ev)
	p.mu.Unlock()
}

// Flush delivers queued events, including events queued by the listeners
// themselves, and returns how many were delivered.
func (p *MemoryPlatform) Flush() int {
	delivered := 0
	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return delivered
		}
		ev := p.queue[0]
		p.queue = p.queue[1:]
		fns := make([]func(), 0, len(p.listeners[ev]))
		for _, fn := range p.listeners[ev] {
			fns = append(fns, *fn)
		}
		p.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
		delivered++
	}
}

// Entries lists the addresses of all entries.
func (p *MemoryPlatform) Entries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.href
	}
	return out
}

// Reloads counts full page navigations made through ReplaceLocation.
func (p *MemoryPlatform) Reloads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reloads
}

func (p *MemoryPlatform) push(e platformEntry) {
	p.entries = append(p.entries[:p.index+1:p.index+1], e)
	p.index++
}

func (p *MemoryPlatform) resolve(ref string) string {
	base, err := url.Parse(p.entries[p.index].href)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
