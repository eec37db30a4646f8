package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, 4)
	p.OnBuildComplete(ctx, 4, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "slices")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	i := NoopInteractionHooks{}
	i.OnHover(ctx, "slice", "North")
	i.OnLeave(ctx)
	i.OnSelect(ctx, "center", "")
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Interaction().(NoopInteractionHooks); !ok {
		t.Error("Interaction() should return NoopInteractionHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customInteraction := &testInteractionHooks{}
	SetInteractionHooks(customInteraction)
	if Interaction() != customInteraction {
		t.Error("SetInteractionHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Interaction().(NoopInteractionHooks); !ok {
		t.Error("Reset() should restore NoopInteractionHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel, Formatter: log.LogfmtFormatter})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnBuildComplete(ctx, 3, time.Millisecond, nil)
	h.OnCacheHit(ctx, "artifact")
	h.OnSelect(ctx, "slice", "North")

	out := buf.String()
	for _, want := range []string{"build finished", "slices=3", "cache hit", "type=artifact", "label=North"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	var _ PipelineHooks = h
	var _ CacheHooks = h
	var _ InteractionHooks = h
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testInteractionHooks struct{ NoopInteractionHooks }
