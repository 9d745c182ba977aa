package use

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Each runs one scoped use per resource, at most limit at a time (limit <= 0
// means unbounded). The first non-nil error cancels the context seen by the
// remaining operations and is returned from Each. Every resource is released
// exactly once regardless of errors or cancellation.
func Each[R Releaser](ctx context.Context, resources []R, limit int, op func(context.Context, R) error, optFns ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, res := range resources {
		res := res
		g.Go(func() error {
			_, err := With(res, func(r R) (struct{}, error) {
				return struct{}{}, op(gctx, r)
			}, optFns...)
			return err
		})
	}
	return g.Wait()
}
