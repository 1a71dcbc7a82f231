// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about pipeline execution: image loading, each per-scale
// detection run, and serialization of the final output.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for pipeline events
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// Hooks are registered by main, not by libraries, so the pipeline packages
// never import a logging or metrics backend for instrumentation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnScaleStart(ctx, sigma)
//	// ... detect and vectorize ...
//	observability.Pipeline().OnScaleComplete(ctx, sigma, stats, duration, err)
//
// Hooks may be called from several goroutines at once, one per scale.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// ScaleStats is the summary passed to [PipelineHooks.OnScaleComplete].
type ScaleStats struct {
	Edges    int // pixels in the edge mask
	Contours int // traced contours
	Paths    int // emitted paths
	Bytes    int // size of the serialized SVG
}

// PipelineHooks receives events from the edge pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, path string)
	OnLoadComplete(ctx context.Context, path string, width, height int, duration time.Duration, err error)

	// Scale events, once per sigma
	OnScaleStart(ctx context.Context, sigma float64)
	OnScaleComplete(ctx context.Context, sigma float64, stats ScaleStats, duration time.Duration, err error)

	// OnOutput fires after all scales succeeded, before documents are written.
	OnOutput(ctx context.Context, documents int, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnScaleStart(context.Context, float64) {}
func (NoopPipelineHooks) OnScaleComplete(context.Context, float64, ScaleStats, time.Duration, error) {
}
func (NoopPipelineHooks) OnOutput(context.Context, int, int) {}

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
