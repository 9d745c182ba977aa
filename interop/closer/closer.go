// Package closer adapts io.Closer values to the scoped-use executors. It
// lets stdlib resources (files, connections, response bodies) be used
// without writing a Releaser wrapper.
package closer

import (
	"context"
	"io"

	"github.com/NetPo4ki/go-usewith/use"
)

type adapter[C io.Closer] struct{ c C }

func (a adapter[C]) Release() error { return a.c.Close() }

// Wrap exposes c as a use.Releaser whose Release calls Close.
func Wrap(c io.Closer) use.Releaser { return adapter[io.Closer]{c: c} }

// With runs op against res and closes res immediately afterward. Semantics
// match use.With.
func With[C io.Closer, T any](res C, op func(C) (T, error), optFns ...use.Option) (T, error) {
	return use.With(adapter[C]{c: res}, func(a adapter[C]) (T, error) {
		return op(a.c)
	}, optFns...)
}

// Async runs op against res in its own goroutine and closes res once op
// returns. Semantics match use.Async.
func Async[C io.Closer, T any](ctx context.Context, res C, op func(context.Context, C) (T, error), optFns ...use.Option) *use.Future[T] {
	return use.Async(ctx, adapter[C]{c: res}, func(ctx context.Context, a adapter[C]) (T, error) {
		return op(ctx, a.c)
	}, optFns...)
}
