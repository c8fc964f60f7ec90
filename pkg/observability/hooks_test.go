package observability

import (
	"context"
	"image"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLayoutStart(ctx, image.Pt(250, 250), 75)
	p.OnPlace(ctx, 0, image.Rect(225, 230, 275, 270))
	p.OnExhausted(ctx, 75, image.Pt(50, 40))
	p.OnLayoutComplete(ctx, 75, time.Second, nil)
	p.OnRenderStart(ctx, []string{"png"})
	p.OnRenderComplete(ctx, []string{"png"}, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

type testPipelineHooks struct{ NoopPipelineHooks }
