package history

import (
	"sync"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// AfterHook runs after every committed navigation.
type AfterHook func(to, from *route.Route)

// callbacks is an ordered registry. Registration returns a func that
// removes exactly that registration, even if fn was added twice.
type callbacks[T any] struct {
	mu      sync.Mutex
	entries []*T
}

func (c *callbacks[T]) add(fn T) func() {
	e := &fn
	c.mu.Lock()
	c.entries = append(c.entries, e)
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, cur := range c.entries {
				if cur == e {
					c.entries = append(c.entries[:i:i], c.entries[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *callbacks[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.entries))
	for i, e := range c.entries {
		out[i] = *e
	}
	return out
}

func (c *callbacks[T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Hooks holds the global navigation hooks. A History takes a snapshot of
// the lists when it assembles a guard queue, so hooks added or removed
// during a navigation apply to the next one.
type Hooks struct {
	before  callbacks[route.Guard]
	resolve callbacks[route.Guard]
	after   callbacks[AfterHook]
}

func NewHooks() *Hooks {
	return &Hooks{}
}

// BeforeEach registers a guard that runs after leave guards and before
// update guards of every navigation.
func (h *Hooks) BeforeEach(g route.Guard) func() {
	return h.before.add(g)
}

// BeforeResolve registers a guard that runs last, after enter guards and
// async components have been resolved.
func (h *Hooks) BeforeResolve(g route.Guard) func() {
	return h.resolve.add(g)
}

// AfterEach registers a hook called after every commit.
func (h *Hooks) AfterEach(fn AfterHook) func() {
	return h.after.add(fn)
}

func (h *Hooks) runAfter(to, from *route.Route) {
	for _, fn := range h.after.snapshot() {
		if fn != nil {
			fn(to, from)
		}
	}
}
