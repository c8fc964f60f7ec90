package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagscloud/pkg/cache"
)

// Runner executes pipeline stages with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Every Layout call builds its own cloud.Layouter,
// so multiple goroutines can safely use the same Runner as long as the
// cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, log.Default() is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	result, err := r.Layout(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", len(artifacts),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// applyLogger uses the runner's logger when opts carries none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
