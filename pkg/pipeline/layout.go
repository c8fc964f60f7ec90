package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tagscloud/pkg/cache"
	"github.com/matzehuels/tagscloud/pkg/cloud"
	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/layout"
	"github.com/matzehuels/tagscloud/pkg/observability"
)

// Layout places opts.Count rectangles and returns the resulting layout.
//
// Cancellation is checked between placements, never inside one. When the
// field runs out of room the run fails with PLACEMENT_EXHAUSTED, unless
// opts.StopOnExhausted is set, in which case the rectangles placed so far
// are returned with Result.Exhausted set.
func (r *Runner) Layout(ctx context.Context, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	opts.Logger = opts.Logger.With("run", runID)

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, opts.Center, opts.Count)
	defer func() {
		placed := 0
		if result != nil {
			placed = result.Stats.Placed
		}
		hooks.OnLayoutComplete(ctx, placed, time.Since(start), err)
	}()

	cacheKey := cache.LayoutKey(opts.layoutKeyOpts())
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := cachedResult(data, opts); err == nil {
			opts.Logger.Debug("layout cache hit", "key", cacheKey)
			cached.RunID = runID
			cached.Stats.LayoutTime = time.Since(start)
			return cached, nil
		}
		// Unreadable entries fall through to recompute.
	}

	l, err := cloud.NewLayouter(opts.Center, cloud.WithSpiral(
		cloud.WithCoefficient(opts.Coefficient),
		cloud.WithAngleStep(opts.AngleStep),
	))
	if err != nil {
		return nil, err
	}

	result = &Result{RunID: runID, Stats: Stats{Requested: opts.Count}}
	for i := 0; i < opts.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		size := opts.SizeAt(i)
		rect, err := l.PutNextRectangle(size)
		if errors.Is(err, errors.ErrCodePlacementExhausted) {
			hooks.OnExhausted(ctx, l.Len(), size)
			if !opts.StopOnExhausted {
				return nil, fmt.Errorf("placed %d of %d rectangles: %w", l.Len(), opts.Count, err)
			}
			opts.Logger.Warn("field exhausted", "placed", l.Len(), "requested", opts.Count, "size", size)
			result.Exhausted = true
			break
		}
		if err != nil {
			return nil, err
		}

		hooks.OnPlace(ctx, i, rect)
		opts.Logger.Debug("placed rectangle", "index", i, "rect", rect)
	}

	result.Rectangles = l.Rectangles()
	result.Layout = layout.FromRectangles(opts.Center, result.Rectangles)
	result.Layout.Exhausted = result.Exhausted
	result.Stats.Placed = l.Len()
	result.Stats.Candidates = l.Candidates()
	result.Stats.LayoutTime = time.Since(start)

	if data, err := layout.Marshal(result.Layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache layout", "err", err)
		}
	}

	opts.Logger.Info("computed layout",
		"placed", result.Stats.Placed,
		"candidates", result.Stats.Candidates,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// cachedResult rebuilds a layout result from a cached layout.
func cachedResult(data []byte, opts Options) (*Result, error) {
	l, err := layout.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	rects := l.Rects()
	return &Result{
		Layout:     l,
		Rectangles: rects,
		Exhausted:  l.Exhausted,
		CacheInfo:  CacheInfo{LayoutHit: true},
		Stats: Stats{
			Requested: opts.Count,
			Placed:    len(rects),
		},
	}, nil
}
