package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/wayfinder/pkg/route"
)

// Run executes queue in order against one transition and stops at the
// first Decision that is not a plain Next. Nil entries are skipped.
//
// Before every entry Run asks alive whether the transition still owns the
// navigation; when it does not, or ctx is done, Run stops with an error
// wrapping ErrSuperseded. A guard panic becomes a Fail decision carrying a
// *PanicError.
//
// When the whole queue approves, Run returns route.Next() and a nil error.
func Run(ctx context.Context, queue []route.Guard, to, from *route.Route, alive func() bool) (route.Decision, error) {
	for _, g := range queue {
		if g == nil {
			continue
		}
		if alive != nil && !alive() {
			return route.Next(), ErrSuperseded
		}
		if err := ctx.Err(); err != nil {
			return route.Next(), errors.Join(ErrSuperseded, err)
		}

		if d := call(ctx, g, to, from); d.Verdict() != route.VerdictNext {
			return d, nil
		}
	}
	return route.Next(), nil
}

func call(ctx context.Context, g route.Guard, to, from *route.Route) (d route.Decision) {
	defer func() {
		if r := recover(); r != nil {
			d = route.Fail(&PanicError{Value: r})
		}
	}()
	return g(ctx, to, from)
}

// PanicError wraps a value recovered from a panicking guard.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("guard: panic during navigation: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
