package wayfinder

import (
	"context"
	"sync"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// Change is delivered to subscribers after every committed navigation.
type Change struct {
	To   *route.Route
	From *route.Route
}

type subscription struct {
	ch     chan Change
	closed bool
	mu     sync.RWMutex
}

func (s *subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

func (s *subscription) send(c Change) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- c:
		return true
	default:
		return false
	}
}

// feed fans route changes out to subscribers. A subscriber whose buffer
// is full is dropped and its channel closed; publishing never blocks.
type feed struct {
	subs   map[*subscription]struct{}
	buffer int
	closed bool
	mu     sync.RWMutex
}

func newFeed(buffer int) *feed {
	return &feed{
		subs:   make(map[*subscription]struct{}),
		buffer: max(buffer, 1),
	}
}

func (f *feed) subscribe(ctx context.Context) *subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := &subscription{ch: make(chan Change, f.buffer)}
	if f.closed {
		sub.close()
		return sub
	}
	f.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			f.unsubscribe(sub)
		}()
	}
	return sub
}

func (f *feed) publish(c Change) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}
	for sub := range f.subs {
		if !sub.send(c) {
			go f.unsubscribe(sub)
		}
	}
}

func (f *feed) close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	for sub := range f.subs {
		sub.close()
	}
	clear(f.subs)
	f.mu.Unlock()
}

func (f *feed) unsubscribe(sub *subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs, sub)
	sub.close()
}
