package route

import (
	"context"
	"sync"
)

// Component is the definition rendered into a record slot. It carries the
// in-component guards. A component with Load set is lazy: the navigation
// engine loads it before running enter guards and swaps the result into
// the record.
type Component struct {
	Name string

	BeforeRouteEnter  []Guard
	BeforeRouteUpdate []InstanceGuard
	BeforeRouteLeave  []InstanceGuard

	Load func(ctx context.Context) (*Component, error)

	mu       sync.Mutex
	resolved *Component
}

// IsLazy reports whether the component still has to be loaded.
func (c *Component) IsLazy() bool {
	return c != nil && c.Load != nil
}

// Resolved returns the loaded definition of a lazy component, or nil if
// it has not been loaded yet. For eager components it returns c.
func (c *Component) Resolved() *Component {
	if c == nil {
		return nil
	}
	if c.Load == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolved
}

// Resolve loads a lazy component once; later calls reuse the result.
// A failed load is not cached.
func (c *Component) Resolve(ctx context.Context) (*Component, error) {
	if c.Load == nil {
		return c, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resolved != nil {
		return c.resolved, nil
	}

	res, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNilComponent
	}
	c.resolved = res
	return res, nil
}
