package use

import (
	"context"
	"time"
)

// Future is the pending result of an Async call.
type Future[T any] struct {
	done     chan struct{}
	val      T
	err      error
	panicked bool
	panicVal any
}

// Done returns a channel that is closed once the operation has finished and
// the resource has been released.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until the future resolves or ctx is done. A ctx error only
// abandons the wait: the operation keeps running and the resource is still
// released once it finishes. If the operation panicked, Await re-raises that
// panic unchanged.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-f.done:
		if f.panicked {
			panic(f.panicVal)
		}
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Async runs op against res in its own goroutine and releases res as a
// continuation of the operation: strictly after op returns, before the
// returned future resolves. Ownership of res transfers to the executor for
// the whole suspended duration; the caller must not touch res again.
//
// Error and panic semantics match With: op's result passes through
// unchanged, a release error surfaces only when op succeeded, and a panic
// is re-raised by Await after release has run.
func Async[R Releaser, T any](ctx context.Context, res R, op func(context.Context, R) (T, error), optFns ...Option) *Future[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	obs := opts.Observer

	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		var start time.Time
		if obs != nil {
			start = time.Now()
			obs.UseStarted(ctx)
		}
		defer func() {
			if r := recover(); r != nil {
				f.panicked = true
				f.panicVal = r
			}
			relErr := res.Release()
			if obs != nil {
				obs.ResourceReleased(ctx, relErr)
				obs.UseFinished(ctx, time.Since(start), f.err, f.panicked)
			}
			if !f.panicked && f.err == nil && relErr != nil {
				f.err = relErr
			}
		}()
		f.val, f.err = op(ctx, res)
	}()
	return f
}
