package services

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// shared runs fn once per key across concurrent callers. The shared call runs
// on a context detached from any single caller's cancellation; upstream
// clients carry their own timeout. Each caller still stops waiting when its
// own ctx is done.
func shared[T any](ctx context.Context, g *singleflight.Group, key string, fn func(context.Context) (T, error)) (T, error) {
	detached := context.WithoutCancel(ctx)
	ch := g.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
