// Package workerpool runs bounded concurrent work over a slice.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map calls fn for every item on at most workers goroutines and returns the results in item order.
// The first error cancels the remaining calls and is returned.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
