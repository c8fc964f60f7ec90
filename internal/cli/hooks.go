package cli

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/matzehuels/tagscloud/pkg/observability"
)

// spinnerHooks reports layout progress on a spinner and logs the rest.
type spinnerHooks struct {
	loggingHooks
	spinner *Spinner
	count   int
}

func (h *spinnerHooks) OnLayoutStart(_ context.Context, center image.Point, count int) {
	h.count = count
	h.spinner.SetMessage(fmt.Sprintf("Placing %d rectangles around %v...", count, center))
}

func (h *spinnerHooks) OnPlace(_ context.Context, index int, _ image.Rectangle) {
	h.spinner.SetMessage(fmt.Sprintf("Placing rectangles %d/%d...", index+1, h.count))
}

func (h *spinnerHooks) OnRenderStart(_ context.Context, formats []string) {
	h.spinner.SetMessage(fmt.Sprintf("Rendering %v...", formats))
}

// withSpinner runs fn while a spinner shows pipeline progress. The spinner
// is stopped before withSpinner returns; failMsg is printed if fn fails.
func withSpinner(ctx context.Context, message, failMsg string, fn func() error) error {
	spinner := newSpinner(ctx, message)
	observability.SetPipelineHooks(&spinnerHooks{spinner: spinner})
	defer observability.Reset()

	spinner.Start()
	if err := fn(); err != nil {
		spinner.StopWithError(failMsg)
		return err
	}
	spinner.Stop()
	return ctx.Err()
}

// loggingHooks logs pipeline events at debug level.
type loggingHooks struct {
	observability.NoopPipelineHooks
}

func (loggingHooks) OnExhausted(ctx context.Context, placed int, size image.Point) {
	loggerFromContext(ctx).Debug("spiral left the field", "placed", placed, "size", size)
}

func (loggingHooks) OnLayoutComplete(ctx context.Context, placed int, d time.Duration, err error) {
	loggerFromContext(ctx).Debug("layout finished", "placed", placed, "duration", d, "err", err)
}

func (loggingHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	loggerFromContext(ctx).Debug("render finished", "formats", formats, "duration", d, "err", err)
}
