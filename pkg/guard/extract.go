package guard

import (
	"context"
	"slices"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// LeaveGuards collects BeforeRouteLeave guards of the deactivated records,
// child components first. Guards of slots without a live instance are
// dropped: the component was never rendered.
func LeaveGuards(deactivated []*route.Record) []route.Guard {
	return extract(deactivated, true, func(c *route.Component, rec *route.Record, slot string) []route.Guard {
		return bindInstance(c.BeforeRouteLeave, rec.Instance(slot))
	})
}

// UpdateGuards collects BeforeRouteUpdate guards of the reused records in
// root-to-leaf order.
func UpdateGuards(updated []*route.Record) []route.Guard {
	return extract(updated, false, func(c *route.Component, rec *route.Record, slot string) []route.Guard {
		return bindInstance(c.BeforeRouteUpdate, rec.Instance(slot))
	})
}

// EnterGuards collects BeforeRouteEnter guards of the activated records.
// A guard that answers NextWith(cb) has cb queued on its record slot until
// the rendered instance registers.
func EnterGuards(activated []*route.Record) []route.Guard {
	return extract(activated, false, func(c *route.Component, rec *route.Record, slot string) []route.Guard {
		guards := make([]route.Guard, 0, len(c.BeforeRouteEnter))
		for _, g := range c.BeforeRouteEnter {
			if g != nil {
				guards = append(guards, bindEnter(g, rec, slot))
			}
		}
		return guards
	})
}

// BeforeEnter returns the per-record BeforeEnter guards in order.
func BeforeEnter(activated []*route.Record) []route.Guard {
	guards := make([]route.Guard, 0, len(activated))
	for _, rec := range activated {
		guards = append(guards, rec.BeforeEnter)
	}
	return guards
}

type extractFunc func(c *route.Component, rec *route.Record, slot string) []route.Guard

// extract walks every component slot of records. Reversal applies to the
// per-component groups, keeping each component's own guards in order.
func extract(records []*route.Record, reverse bool, fn extractFunc) []route.Guard {
	var groups [][]route.Guard
	for _, rec := range records {
		for _, slot := range rec.Slots() {
			c := rec.Component(slot).Resolved()
			if c == nil {
				continue
			}
			if guards := fn(c, rec, slot); len(guards) > 0 {
				groups = append(groups, guards)
			}
		}
	}
	if reverse {
		slices.Reverse(groups)
	}
	return slices.Concat(groups...)
}

func bindInstance(guards []route.InstanceGuard, instance any) []route.Guard {
	if instance == nil {
		return nil
	}
	bound := make([]route.Guard, 0, len(guards))
	for _, g := range guards {
		if g == nil {
			continue
		}
		bound = append(bound, func(ctx context.Context, to, from *route.Route) route.Decision {
			return g(ctx, instance, to, from)
		})
	}
	return bound
}

func bindEnter(g route.Guard, rec *route.Record, slot string) route.Guard {
	return func(ctx context.Context, to, from *route.Route) route.Decision {
		d := g(ctx, to, from)
		if cb := d.Entered(); cb != nil && d.Verdict() == route.VerdictNext {
			rec.AddEnteredCallback(slot, cb)
		}
		return d
	}
}
