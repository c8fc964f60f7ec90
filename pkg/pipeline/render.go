package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/tagscloud/pkg/cache"
	"github.com/matzehuels/tagscloud/pkg/layout"
	"github.com/matzehuels/tagscloud/pkg/observability"
	"github.com/matzehuels/tagscloud/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// RenderWithCacheInfo generates artifacts and reports whether every one of
// them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (artifacts map[string][]byte, allCached bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	if err := l.Validate(); err != nil {
		return nil, false, err
	}
	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	allCached = true
	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		key := cache.ArtifactKey(layoutHash, opts.artifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			opts.Logger.Debug("artifact cache hit", "format", format)
			artifacts[format] = data
			continue
		}
		allCached = false

		data, err := sink.Render(l, format, opts.sinkOptions())
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache artifact", "format", format, "err", err)
		}
	}
	return artifacts, allCached, nil
}
