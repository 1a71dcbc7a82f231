package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "input.png")
	p.OnLoadComplete(ctx, "input.png", 100, 80, time.Second, nil)
	p.OnScaleStart(ctx, 1)
	p.OnScaleComplete(ctx, 1, ScaleStats{Edges: 10, Paths: 2}, time.Second, nil)
	p.OnScaleComplete(ctx, 2, ScaleStats{}, time.Second, errors.New("boom"))
	p.OnOutput(ctx, 2, 4096)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	// Reset and verify
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

func TestHooksConcurrentCalls(t *testing.T) {
	Reset()
	defer Reset()

	h := &testPipelineHooks{}
	SetPipelineHooks(h)

	var wg sync.WaitGroup
	for _, sigma := range []float64{1, 2, 3, 4} {
		wg.Add(1)
		go func(sigma float64) {
			defer wg.Done()
			Pipeline().OnScaleStart(context.Background(), sigma)
		}(sigma)
	}
	wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.scales != 4 {
		t.Errorf("OnScaleStart called %d times, want 4", h.scales)
	}
}

// Test implementations
type testPipelineHooks struct {
	NoopPipelineHooks
	mu     sync.Mutex
	scales int
}

func (h *testPipelineHooks) OnScaleStart(context.Context, float64) {
	h.mu.Lock()
	h.scales++
	h.mu.Unlock()
}
