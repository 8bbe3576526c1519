package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/wayfinder/pkg/history"
)

type memoryEntry struct {
	snap      history.Snapshot
	expiresAt time.Time
}

// MemoryStore keeps snapshots in a bounded LRU map. The least recently
// used snapshot is dropped once capacity is reached.
type MemoryStore struct {
	items *lru[string, memoryEntry]
	opts  *options
}

// NewMemoryStore creates a store holding at most capacity snapshots.
func NewMemoryStore(capacity int, opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	s := &MemoryStore{items: newLRU[string, memoryEntry](capacity), opts: o}
	s.items.onEvict = func(key string, _ memoryEntry) {
		o.log.Debug("navigation snapshot evicted", slog.String("key", key))
	}
	return s
}

func (s *MemoryStore) Save(ctx context.Context, key string, snap history.Snapshot) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := snap.Validate(); err != nil {
		return errors.Join(ErrEncode, err)
	}

	entry := memoryEntry{snap: cloneSnapshot(snap)}
	if s.opts.ttl > 0 {
		entry.expiresAt = s.opts.now().Add(s.opts.ttl)
	}
	s.items.put(key, entry)
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, key string) (history.Snapshot, error) {
	entry, ok := s.items.get(key)
	if !ok {
		return history.Snapshot{}, ErrNotFound
	}
	if !entry.expiresAt.IsZero() && !s.opts.now().Before(entry.expiresAt) {
		s.items.remove(key)
		return history.Snapshot{}, ErrExpired
	}
	return cloneSnapshot(entry.snap), nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.items.remove(key)
	return nil
}

// Len reports how many snapshots are held, expired ones included.
func (s *MemoryStore) Len() int {
	return s.items.len()
}

func cloneSnapshot(snap history.Snapshot) history.Snapshot {
	return history.Snapshot{Entries: slices.Clone(snap.Entries), Index: snap.Index}
}
