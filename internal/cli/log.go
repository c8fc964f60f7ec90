// Package cli implements the tagscloud command-line interface.
//
// Every command reads the TOML config (--config, else the XDG default),
// overlays the flags that were set on the command line and hands the result
// to a [pipeline.Runner]. Layouts and rendered artifacts are cached between
// runs unless --no-cache is given.
//
// # Commands
//
//   - layout: Place rectangles and write the layout as JSON
//   - visualize: Render a saved layout to PNG, BMP, JPEG, SVG or JSON
//   - render: Layout and render in one step
//   - preview: Step through a layout interactively in the terminal
//   - config: Write or print the TOML config
//   - cache: Clear the layout and artifact cache or print its location
//   - serve: Expose the pipeline as an HTTP API
//
// # Logging
//
// Log lines go to stderr through charmbracelet/log; --verbose (-v) adds the
// per-rectangle placement lines. The pipeline tags every line of a run with
// its run ID, and a finished layout is summarized in one line:
//
//	14:32:01.45 INFO Placed 75 of 75 rectangles run=5f0c… candidates=5124 cache=miss (12ms)
//
// The logger travels in the command's context.Context so hooks and helpers
// can reach it without a CLI reference.
//
// [pipeline.Runner]: github.com/matzehuels/tagscloud/pkg/pipeline
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagscloud/pkg/pipeline"
)

// newLogger returns a logger writing to w at level, with centisecond
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one pipeline run from the command's point of view, cache
// lookups included.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the placement summary of result. Partial layouts, left by an
// exhausted field with stop_on_exhausted set, are logged as warnings.
func (p *progress) done(result *pipeline.Result) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	kv := []any{
		"run", result.RunID,
		"candidates", result.Stats.Candidates,
		"cache", cacheState(result.CacheInfo.LayoutHit),
	}
	msg := "Placed %d of %d rectangles (%s)"
	if result.Exhausted {
		p.logger.With(kv...).Warnf(msg+", field exhausted", result.Stats.Placed, result.Stats.Requested, elapsed)
		return
	}
	p.logger.With(kv...).Infof(msg, result.Stats.Placed, result.Stats.Requested, elapsed)
}

func cacheState(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
