// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about layout and render runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface per event category
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// Hooks are registered by the application (the CLI registers a set per
// command and resets them when it returns). The cloud package never imports
// this one.
//
// # Usage
//
// Register hooks before running the pipeline:
//
//	observability.SetPipelineHooks(&myPipelineHooks{})
//	defer observability.Reset()
//
// The pipeline calls hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, center, count)
//	// ... place rectangles ...
//	observability.Pipeline().OnLayoutComplete(ctx, placed, duration, err)
package observability

import (
	"context"
	"image"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, center image.Point, count int)
	OnPlace(ctx context.Context, index int, rect image.Rectangle)
	OnExhausted(ctx context.Context, placed int, size image.Point)
	OnLayoutComplete(ctx context.Context, placed int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, image.Point, int)                  {}
func (NoopPipelineHooks) OnPlace(context.Context, int, image.Rectangle)                    {}
func (NoopPipelineHooks) OnExhausted(context.Context, int, image.Point)                    {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
