package use

import (
	"context"
	"sync/atomic"
	"time"
)

// Releaser is the resource contract: any value with a defined cleanup step
// that must run after use.
type Releaser interface {
	Release() error
}

// ReleaseFunc adapts a plain function to the Releaser interface.
type ReleaseFunc func() error

func (f ReleaseFunc) Release() error { return f() }

// Once wraps r so that Release fires at most once. Subsequent calls return
// nil without invoking the underlying releaser. Useful when the caller keeps
// its own handle to the resource alongside the executor.
func Once(r Releaser) Releaser { return &onceReleaser{r: r} }

type onceReleaser struct {
	used atomic.Uint32
	r    Releaser
}

func (o *onceReleaser) Release() error {
	if o.used.Add(1) != 1 {
		return nil
	}
	return o.r.Release()
}

type Option func(*Options)

type Options struct {
	Observer Observer
}

func defaultOptions() Options { return Options{} }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Observer receives lifecycle hooks from the executors.
type Observer interface {
	UseStarted(ctx context.Context)
	UseFinished(ctx context.Context, dur time.Duration, err error, panicked bool)
	ResourceReleased(ctx context.Context, err error)
}

// Tee fans hook calls out to every non-nil observer, in order.
func Tee(observers ...Observer) Observer {
	kept := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			kept = append(kept, obs)
		}
	}
	return teeObserver(kept)
}

type teeObserver []Observer

func (t teeObserver) UseStarted(ctx context.Context) {
	for _, obs := range t {
		obs.UseStarted(ctx)
	}
}

func (t teeObserver) UseFinished(ctx context.Context, dur time.Duration, err error, panicked bool) {
	for _, obs := range t {
		obs.UseFinished(ctx, dur, err, panicked)
	}
}

func (t teeObserver) ResourceReleased(ctx context.Context, err error) {
	for _, obs := range t {
		obs.ResourceReleased(ctx, err)
	}
}

// With runs op against res and releases res immediately afterward. It
// returns exactly what op returns; the executor adds no error kinds of its
// own. Release runs on every exit path: normal return, operation error, and
// panic (the panic continues unwinding after release). The operation's error
// takes precedence over a release error; a release error is returned only
// when the operation itself succeeded.
//
// With takes ownership of res. The caller must not touch res after the call
// returns.
func With[R Releaser, T any](res R, op func(R) (T, error), optFns ...Option) (out T, err error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	obs := opts.Observer
	ctx := context.Background()

	var start time.Time
	if obs != nil {
		start = time.Now()
		obs.UseStarted(ctx)
	}
	panicked := true
	defer func() {
		relErr := res.Release()
		if obs != nil {
			obs.ResourceReleased(ctx, relErr)
			obs.UseFinished(ctx, time.Since(start), err, panicked)
		}
		if !panicked && err == nil && relErr != nil {
			err = relErr
		}
	}()
	out, err = op(res)
	panicked = false
	return out, err
}
