package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// forEach runs fn(i) for i in [0, n) on at most workers goroutines. Each task
// must write only its own result slot. Once ctx is done no further task is
// started and ctx.Err() is returned.
func forEach(ctx context.Context, n, workers int, fn func(i int)) error {
	if n == 0 {
		return ctx.Err()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
