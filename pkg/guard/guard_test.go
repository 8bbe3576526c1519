package guard_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wayfinder/pkg/guard"
	"github.com/dmitrymomot/wayfinder/pkg/route"
)

func record(path string, parent *route.Record, components map[string]*route.Component) *route.Record {
	return route.NewRecord(route.RecordConfig{Path: path, Components: components}, parent)
}

func TestRun(t *testing.T) {
	t.Parallel()

	to := route.New(nil, route.Parse("/to"), nil)
	from := route.Start
	ctx := context.Background()

	t.Run("runs in order and skips nil", func(t *testing.T) {
		t.Parallel()
		var order []int
		step := func(n int) route.Guard {
			return func(ctx context.Context, to, from *route.Route) route.Decision {
				order = append(order, n)
				return route.Next()
			}
		}

		d, err := guard.Run(ctx, []route.Guard{step(1), nil, step(2), step(3)}, to, from, nil)
		require.NoError(t, err)
		assert.Equal(t, route.VerdictNext, d.Verdict())
		assert.Equal(t, []int{1, 2, 3}, order)
	})

	t.Run("stops at first veto", func(t *testing.T) {
		t.Parallel()
		var ran bool
		queue := []route.Guard{
			func(ctx context.Context, to, from *route.Route) route.Decision { return route.RedirectTo("/login") },
			func(ctx context.Context, to, from *route.Route) route.Decision { ran = true; return route.Next() },
		}

		d, err := guard.Run(ctx, queue, to, from, nil)
		require.NoError(t, err)
		assert.Equal(t, route.VerdictRedirect, d.Verdict())
		assert.Equal(t, "/login", d.Target().Path)
		assert.False(t, ran)
	})

	t.Run("superseded before a guard", func(t *testing.T) {
		t.Parallel()
		var live atomic.Bool
		live.Store(true)
		var second bool
		queue := []route.Guard{
			func(ctx context.Context, to, from *route.Route) route.Decision { live.Store(false); return route.Next() },
			func(ctx context.Context, to, from *route.Route) route.Decision { second = true; return route.Next() },
		}

		_, err := guard.Run(ctx, queue, to, from, live.Load)
		assert.ErrorIs(t, err, guard.ErrSuperseded)
		assert.False(t, second)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := guard.Run(cctx, []route.Guard{func(ctx context.Context, to, from *route.Route) route.Decision {
			return route.Next()
		}}, to, from, nil)
		assert.ErrorIs(t, err, guard.ErrSuperseded)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("panic becomes failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		d, err := guard.Run(ctx, []route.Guard{func(ctx context.Context, to, from *route.Route) route.Decision {
			panic(boom)
		}}, to, from, nil)
		require.NoError(t, err)
		assert.Equal(t, route.VerdictFail, d.Verdict())
		var pe *guard.PanicError
		require.ErrorAs(t, d.Err(), &pe)
		assert.ErrorIs(t, d.Err(), boom)
	})

	t.Run("empty queue approves", func(t *testing.T) {
		t.Parallel()
		d, err := guard.Run(ctx, nil, to, from, nil)
		require.NoError(t, err)
		assert.Equal(t, route.VerdictNext, d.Verdict())
	})
}

func TestDiff(t *testing.T) {
	t.Parallel()

	root := record("/", nil, nil)
	a := record("/a", root, nil)
	b := record("/b", root, nil)
	a1 := record("/a/1", a, nil)

	t.Run("sibling children", func(t *testing.T) {
		t.Parallel()
		s := guard.Diff([]*route.Record{root, a}, []*route.Record{root, b})
		assert.Equal(t, []*route.Record{root}, s.Updated)
		assert.Equal(t, []*route.Record{b}, s.Activated)
		assert.Equal(t, []*route.Record{a}, s.Deactivated)
	})

	t.Run("descend", func(t *testing.T) {
		t.Parallel()
		s := guard.Diff([]*route.Record{root, a}, []*route.Record{root, a, a1})
		assert.Equal(t, []*route.Record{root, a}, s.Updated)
		assert.Equal(t, []*route.Record{a1}, s.Activated)
		assert.Empty(t, s.Deactivated)
	})

	t.Run("ascend", func(t *testing.T) {
		t.Parallel()
		s := guard.Diff([]*route.Record{root, a, a1}, []*route.Record{root})
		assert.Equal(t, []*route.Record{root}, s.Updated)
		assert.Empty(t, s.Activated)
		assert.Equal(t, []*route.Record{a, a1}, s.Deactivated)
	})

	t.Run("identity not equality", func(t *testing.T) {
		t.Parallel()
		clone := record("/", nil, nil)
		s := guard.Diff([]*route.Record{root}, []*route.Record{clone})
		assert.Empty(t, s.Updated)
		assert.Equal(t, []*route.Record{clone}, s.Activated)
	})

	t.Run("from nowhere", func(t *testing.T) {
		t.Parallel()
		s := guard.Diff(nil, []*route.Record{root, a})
		assert.Empty(t, s.Updated)
		assert.Equal(t, []*route.Record{root, a}, s.Activated)
	})
}

func TestLeaveGuards(t *testing.T) {
	t.Parallel()

	var order []string
	leave := func(name string) route.InstanceGuard {
		return func(ctx context.Context, instance any, to, from *route.Route) route.Decision {
			order = append(order, name+":"+instance.(string))
			return route.Next()
		}
	}

	parent := record("/p", nil, map[string]*route.Component{
		route.DefaultSlot: {BeforeRouteLeave: []route.InstanceGuard{leave("parent")}},
	})
	child := record("/p/c", parent, map[string]*route.Component{
		route.DefaultSlot: {BeforeRouteLeave: []route.InstanceGuard{leave("child-1"), leave("child-2")}},
	})
	unrendered := record("/p/c/x", child, map[string]*route.Component{
		route.DefaultSlot: {BeforeRouteLeave: []route.InstanceGuard{leave("never")}},
	})
	parent.SetInstance(route.DefaultSlot, "P")
	child.SetInstance(route.DefaultSlot, "C")

	guards := guard.LeaveGuards([]*route.Record{parent, child, unrendered})
	require.Len(t, guards, 3)

	_, err := guard.Run(context.Background(), guards, route.Start, route.Start, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"child-1:C", "child-2:C", "parent:P"}, order)
}

func TestUpdateGuards(t *testing.T) {
	t.Parallel()

	var seen []any
	update := func(ctx context.Context, instance any, to, from *route.Route) route.Decision {
		seen = append(seen, instance)
		return route.Next()
	}
	parent := record("/p", nil, map[string]*route.Component{
		route.DefaultSlot: {BeforeRouteUpdate: []route.InstanceGuard{update}},
	})
	child := record("/p/c", parent, map[string]*route.Component{
		route.DefaultSlot: {BeforeRouteUpdate: []route.InstanceGuard{update}},
	})
	parent.SetInstance(route.DefaultSlot, 1)
	child.SetInstance(route.DefaultSlot, 2)

	_, err := guard.Run(context.Background(), guard.UpdateGuards([]*route.Record{parent, child}), route.Start, route.Start, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, seen)
}

func TestEnterGuardsQueueCallbacks(t *testing.T) {
	t.Parallel()

	var delivered any
	rec := record("/a", nil, map[string]*route.Component{
		route.DefaultSlot: {BeforeRouteEnter: []route.Guard{
			func(ctx context.Context, to, from *route.Route) route.Decision {
				return route.NextWith(func(instance any) { delivered = instance })
			},
		}},
	})

	_, err := guard.Run(context.Background(), guard.EnterGuards([]*route.Record{rec}), route.Start, route.Start, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.PendingEntered(route.DefaultSlot))

	rec.SetInstance(route.DefaultSlot, "view")
	route.HandleEntered(route.New(rec, route.Parse("/a"), nil))
	assert.Equal(t, "view", delivered)
}

func TestBeforeEnter(t *testing.T) {
	t.Parallel()

	g := func(ctx context.Context, to, from *route.Route) route.Decision { return route.Abort() }
	a := route.NewRecord(route.RecordConfig{Path: "/a", BeforeEnter: g}, nil)
	b := route.NewRecord(route.RecordConfig{Path: "/b"}, a)

	guards := guard.BeforeEnter([]*route.Record{a, b})
	require.Len(t, guards, 2)
	assert.NotNil(t, guards[0])
	assert.Nil(t, guards[1])
}

func TestResolveAsync(t *testing.T) {
	t.Parallel()

	t.Run("loads and swaps", func(t *testing.T) {
		t.Parallel()
		loaded := &route.Component{Name: "Loaded"}
		lazy := &route.Component{Load: func(ctx context.Context) (*route.Component, error) { return loaded, nil }}
		rec := record("/a", nil, map[string]*route.Component{route.DefaultSlot: lazy})

		d := guard.ResolveAsync([]*route.Record{rec})(context.Background(), route.Start, route.Start)
		assert.Equal(t, route.VerdictNext, d.Verdict())
		assert.Same(t, loaded, rec.Component(route.DefaultSlot))
	})

	t.Run("reports first failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("chunk missing")
		var calls atomic.Int32
		failing := func(ctx context.Context) (*route.Component, error) {
			calls.Add(1)
			return nil, boom
		}
		rec := record("/a", nil, map[string]*route.Component{
			route.DefaultSlot: {Load: failing},
			"side":            {Load: failing},
		})

		d := guard.ResolveAsync([]*route.Record{rec})(context.Background(), route.Start, route.Start)
		assert.Equal(t, route.VerdictFail, d.Verdict())
		assert.ErrorIs(t, d.Err(), boom)
		assert.True(t, guard.IsComponentLoadError(d.Err()))
		assert.True(t, rec.Component(route.DefaultSlot).IsLazy(), "failed loads are not swapped in")
	})

	t.Run("nothing to load", func(t *testing.T) {
		t.Parallel()
		rec := record("/a", nil, map[string]*route.Component{route.DefaultSlot: {Name: "Eager"}})
		d := guard.ResolveAsync([]*route.Record{rec})(context.Background(), route.Start, route.Start)
		assert.Equal(t, route.VerdictNext, d.Verdict())
	})
}
