package wayfinder

import (
	"context"
	"time"
)

// Future is the pending result of an asynchronous navigation.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

func runAsync[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the navigation settles.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext is Await bounded by ctx. The navigation itself keeps
// running when ctx ends first.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout returns ErrTimeout if the navigation has not settled
// within timeout.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero T
		return zero, ErrTimeout
	}
}

// Done is closed once the navigation has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Then calls onComplete with the result or onAbort with the error once
// the navigation settles. Either callback may be nil.
func (f *Future[T]) Then(onComplete func(T), onAbort func(error)) {
	go func() {
		res, err := f.Await()
		switch {
		case err != nil && onAbort != nil:
			onAbort(err)
		case err == nil && onComplete != nil:
			onComplete(res)
		}
	}()
}
