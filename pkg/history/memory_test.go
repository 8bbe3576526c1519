package history_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wayfinder/pkg/history"
	"github.com/dmitrymomot/wayfinder/pkg/route"
)

func TestMemoryGo(t *testing.T) {
	t.Parallel()

	t.Run("back at the first entry is a no-op", func(t *testing.T) {
		t.Parallel()
		h := history.NewMemory(newMatcher(rec("/a")))
		_, err := h.Push(ctx, at("/a"))
		require.NoError(t, err)
		cur := h.Current()

		require.NoError(t, h.Go(ctx, -1))
		assert.Same(t, cur, h.Current())
		assert.Equal(t, 0, h.Index())
	})

	t.Run("back and forward", func(t *testing.T) {
		t.Parallel()
		h := history.NewMemory(newMatcher(rec("/a"), rec("/b")))
		var after []string
		h.Hooks().AfterEach(func(to, _ *route.Route) { after = append(after, to.Path()) })

		_, err := h.Push(ctx, at("/a"))
		require.NoError(t, err)
		_, err = h.Push(ctx, at("/b"))
		require.NoError(t, err)

		require.NoError(t, h.Go(ctx, -1))
		assert.Equal(t, "/a", h.Current().Path())
		assert.Equal(t, 0, h.Index())
		assert.Equal(t, "/a", h.CurrentLocation())

		require.NoError(t, h.Go(ctx, 1))
		assert.Equal(t, "/b", h.Current().Path())
		assert.Equal(t, []string{"/a", "/b", "/a", "/b"}, after)

		require.NoError(t, h.Go(ctx, 5))
		assert.Equal(t, 1, h.Index())
	})

	t.Run("guards can veto", func(t *testing.T) {
		t.Parallel()
		h := history.NewMemory(newMatcher(rec("/a"), rec("/b")))
		_, _ = h.Push(ctx, at("/a"))
		_, _ = h.Push(ctx, at("/b"))
		h.Hooks().BeforeEach(func(_ context.Context, _, _ *route.Route) route.Decision { return route.Abort() })

		err := h.Go(ctx, -1)
		assert.ErrorIs(t, err, history.ErrAborted)
		assert.Equal(t, 1, h.Index())
		assert.Equal(t, "/b", h.Current().Path())
	})

	t.Run("forward after replace is a no-op", func(t *testing.T) {
		t.Parallel()
		h := history.NewMemory(newMatcher(rec("/a"), rec("/b"), rec("/c")))
		_, _ = h.Push(ctx, at("/a"))
		_, _ = h.Push(ctx, at("/b"))
		require.NoError(t, h.Go(ctx, -1))
		_, err := h.Replace(ctx, at("/c"))
		require.NoError(t, err)

		require.NoError(t, h.Go(ctx, 1))
		assert.Equal(t, "/c", h.Current().Path())
		assert.Equal(t, history.Snapshot{Entries: []string{"/c"}, Index: 0}, h.Snapshot())
	})

	t.Run("duplicated entry still moves the index", func(t *testing.T) {
		t.Parallel()
		h := history.NewMemory(newMatcher(rec("/a"), rec("/b")))
		_, _ = h.Push(ctx, at("/a"))
		_, _ = h.Push(ctx, at("/b"))
		_, err := h.Replace(ctx, at("/a"))
		require.NoError(t, err)

		require.NoError(t, h.Go(ctx, -1))
		assert.Equal(t, 0, h.Index())
	})
}

func TestMemoryPushReplace(t *testing.T) {
	t.Parallel()

	h := history.NewMemory(newMatcher(rec("/a"), rec("/b"), rec("/c"), rec("/d")))
	assert.Equal(t, "/", h.CurrentLocation())
	assert.Equal(t, -1, h.Index())

	_, err := h.Replace(ctx, at("/a"))
	require.NoError(t, err)
	assert.Equal(t, history.Snapshot{Entries: []string{"/a"}, Index: 0}, h.Snapshot())

	_, _ = h.Push(ctx, at("/b"))
	_, _ = h.Push(ctx, at("/c"))
	require.NoError(t, h.Go(ctx, -2))

	_, err = h.Replace(ctx, at("/d"))
	require.NoError(t, err)
	assert.Equal(t, history.Snapshot{Entries: []string{"/d"}, Index: 0}, h.Snapshot(), "replace drops forward entries")

	_, err = h.Push(ctx, at("/a"))
	require.NoError(t, err)
	assert.Equal(t, history.Snapshot{Entries: []string{"/d", "/a"}, Index: 1}, h.Snapshot(), "push drops forward entries")
}

func TestMemorySnapshotRestore(t *testing.T) {
	t.Parallel()

	m := newMatcher(rec("/a"), rec("/b"), rec("/c"))
	h := history.NewMemory(m)
	for _, p := range []string{"/a", "/b?tab=2", "/c#end"} {
		_, err := h.Push(ctx, at(p))
		require.NoError(t, err)
	}
	require.NoError(t, h.Go(ctx, -1))

	snap := h.Snapshot()
	assert.Equal(t, history.Snapshot{Entries: []string{"/a", "/b?tab=2", "/c#end"}, Index: 1}, snap)

	restored := history.NewMemory(m)
	r, err := restored.Restore(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, "/b?tab=2", r.FullPath())
	assert.Equal(t, snap, restored.Snapshot())
	assert.True(t, restored.Ready())

	require.NoError(t, restored.Go(ctx, 1))
	assert.Equal(t, "/c", restored.Current().Path())

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		_, err := history.NewMemory(m).Restore(ctx, history.Snapshot{})
		assert.ErrorIs(t, err, history.ErrInvalidSnapshot)
		_, err = history.NewMemory(m).Restore(ctx, history.Snapshot{Entries: []string{"/a"}, Index: 3})
		assert.ErrorIs(t, err, history.ErrInvalidSnapshot)
	})

	t.Run("redirected entry is replaced in the restored stack", func(t *testing.T) {
		t.Parallel()
		target := history.NewMemory(newMatcher(rec("/a"), rec("/admin"), rec("/login"), rec("/c")))
		target.Hooks().BeforeEach(func(_ context.Context, to, _ *route.Route) route.Decision {
			if to.Path() == "/admin" {
				return route.RedirectTo("/login")
			}
			return route.Next()
		})

		_, err := target.Restore(ctx, history.Snapshot{Entries: []string{"/a", "/admin", "/c"}, Index: 1})
		assert.ErrorIs(t, err, history.ErrRedirected)
		assert.Equal(t, "/login", target.Current().Path())
		assert.Equal(t, history.Snapshot{Entries: []string{"/a", "/login"}, Index: 1}, target.Snapshot())

		require.NoError(t, target.Go(ctx, -1))
		assert.Equal(t, "/a", target.Current().Path())
	})

	t.Run("redirected first entry", func(t *testing.T) {
		t.Parallel()
		target := history.NewMemory(newMatcher(rec("/admin"), rec("/login")))
		target.Hooks().BeforeEach(func(_ context.Context, to, _ *route.Route) route.Decision {
			if to.Path() == "/admin" {
				return route.RedirectTo("/login")
			}
			return route.Next()
		})

		_, err := target.Restore(ctx, history.Snapshot{Entries: []string{"/admin"}, Index: 0})
		assert.ErrorIs(t, err, history.ErrRedirected)
		assert.Equal(t, history.Snapshot{Entries: []string{"/login"}, Index: 0}, target.Snapshot())
	})

	t.Run("vetoed restore keeps the stack", func(t *testing.T) {
		t.Parallel()
		target := history.NewMemory(m)
		_, _ = target.Push(ctx, at("/a"))
		target.Hooks().BeforeEach(func(_ context.Context, _, _ *route.Route) route.Decision { return route.Abort() })

		_, err := target.Restore(ctx, snap)
		assert.ErrorIs(t, err, history.ErrAborted)
		assert.Equal(t, history.Snapshot{Entries: []string{"/a"}, Index: 0}, target.Snapshot())
	})
}
