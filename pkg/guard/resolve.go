package guard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// ResolveAsync returns a guard that loads every lazy component of the
// activated records concurrently and swaps the loaded definitions into
// their records. The first failure aborts the navigation with a
// *ComponentLoadError; later failures of the same run are discarded.
func ResolveAsync(activated []*route.Record) route.Guard {
	return func(ctx context.Context, to, from *route.Route) route.Decision {
		g, gctx := errgroup.WithContext(ctx)

		for _, rec := range activated {
			for _, slot := range rec.Slots() {
				c := rec.Component(slot)
				if !c.IsLazy() {
					continue
				}
				g.Go(func() error {
					loaded, err := c.Resolve(gctx)
					if err != nil {
						return &ComponentLoadError{Record: rec.Path, Slot: slot, Err: err}
					}
					rec.SetComponent(slot, loaded)
					return nil
				})
			}
		}

		if err := g.Wait(); err != nil {
			return route.Fail(err)
		}
		return route.Next()
	}
}
