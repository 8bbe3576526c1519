package history

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// Memory keeps history as an in-process stack of routes. It has no URL to
// synchronize and is the backend for hosts without a browser, such as
// server-side rendering.
type Memory struct {
	*Base

	// guarded by Base.mu
	stack []*route.Route
	index int
}

var _ History = (*Memory)(nil)

func NewMemory(m Matcher, opts ...Option) *Memory {
	h := &Memory{index: -1}
	h.Base = newBase(m, h, opts)
	return h
}

// Push drops the entries after the current one and appends the new route.
func (h *Memory) Push(ctx context.Context, loc route.Location) (*route.Route, error) {
	return h.transitionTo(ctx, loc, commit{
		op: OpPush,
		apply: func(to *route.Route) {
			h.stack = append(h.stack[:h.index+1:h.index+1], to)
			h.index++
		},
	})
}

// Replace overwrites the current entry and drops the entries after it.
func (h *Memory) Replace(ctx context.Context, loc route.Location) (*route.Route, error) {
	return h.transitionTo(ctx, loc, commit{
		op: OpReplace,
		apply: func(to *route.Route) {
			if h.index < 0 {
				h.stack = []*route.Route{to}
				h.index = 0
				return
			}
			h.stack = append(h.stack[:h.index:h.index], to)
		},
	})
}

// Go moves n entries through the stack. Out of range moves do nothing.
// The stack entry is confirmed again without matching; a duplicated
// outcome still moves the index.
func (h *Memory) Go(ctx context.Context, n int) error {
	h.mu.Lock()
	target := h.index + n
	if target < 0 || target >= len(h.stack) {
		h.mu.Unlock()
		return nil
	}
	to := h.stack[target]
	h.mu.Unlock()

	ctx, id, start := h.begin(ctx)
	from, redirect, err := h.confirmTransition(ctx, to, commit{
		op: OpGo,
		apply: func(*route.Route) {
			if target < len(h.stack) {
				h.index = target
			}
		},
		after: h.hooks.runAfter,
	})
	h.observe(ctx, Outcome{ID: id, Op: OpGo, From: from, To: to, Err: err, Duration: time.Since(start)})

	if IsNavigationFailure(err, Duplicated) {
		h.mu.Lock()
		if target < len(h.stack) {
			h.index = target
		}
		h.mu.Unlock()
		return nil
	}
	if redirect != nil {
		redirect()
	}
	return err
}

// CurrentLocation is the full path of the current stack entry, "/" when
// the stack is empty.
func (h *Memory) CurrentLocation() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index < 0 || h.index >= len(h.stack) {
		return "/"
	}
	return h.stack[h.index].FullPath()
}

func (h *Memory) EnsureURL(bool) {}

// Index returns the position of the current entry, -1 before the first
// navigation.
func (h *Memory) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Snapshot is a serializable copy of the stack.
type Snapshot struct {
	Entries []string `json:"entries" yaml:"entries"`
	Index   int      `json:"index" yaml:"index"`
}

func (s Snapshot) Validate() error {
	if len(s.Entries) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidSnapshot)
	}
	if s.Index < 0 || s.Index >= len(s.Entries) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidSnapshot, s.Index, len(s.Entries))
	}
	return nil
}

func (h *Memory) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	snap := Snapshot{Entries: make([]string, len(h.stack)), Index: h.index}
	for i, r := range h.stack {
		snap.Entries[i] = r.FullPath()
	}
	return snap
}

// Restore matches every snapshot entry, then navigates to the entry at
// snap.Index. The stack is replaced if that navigation commits. When a
// guard redirects it, the restored entries up to snap.Index are installed
// and the redirect target replaces the entry at snap.Index. Any other
// failure keeps the current stack.
func (h *Memory) Restore(ctx context.Context, snap Snapshot) (*route.Route, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	ctx, id, start := h.begin(ctx)
	stack := make([]*route.Route, len(snap.Entries))
	for i, entry := range snap.Entries {
		r, err := h.matcher.Match(route.Parse(entry), route.Start)
		if err == nil && r == nil {
			err = ErrNilRoute
		}
		if err != nil {
			return nil, fmt.Errorf("restore entry %d %q: %w", i, entry, err)
		}
		stack[i] = r
	}

	return h.navigate(ctx, id, start, stack[snap.Index], commit{
		op: OpRestore,
		apply: func(*route.Route) {
			h.stack = stack
			h.index = snap.Index
		},
		redirected: func() {
			h.stack = stack[:snap.Index+1]
			h.index = snap.Index
		},
		redirectReplace: true,
	})
}
