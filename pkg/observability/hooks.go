// Package observability provides hooks for metrics, tracing, and logging.
//
// The package lets binaries attach instrumentation without the chart
// libraries depending on a particular backend. Libraries emit events
// through the registered hooks; the defaults do nothing.
//
// # Usage
//
// Register hooks once at startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks around their work:
//
//	observability.Pipeline().OnBuildStart(ctx, len(entries))
//	slices := chart.Build(in, opts)
//	observability.Pipeline().OnBuildComplete(ctx, len(slices), time.Since(start), nil)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// PipelineHooks receives events from the build and render pipeline.
type PipelineHooks interface {
	// Build events: entries is the number of input entries, slices the
	// number of slices produced.
	OnBuildStart(ctx context.Context, entries int)
	OnBuildComplete(ctx context.Context, slices int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. keyType is "slices" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// InteractionHooks receives pointer events handled by the chart server.
// target is "slice" or "center"; label is empty for the center.
type InteractionHooks interface {
	OnHover(ctx context.Context, target, label string)
	OnLeave(ctx context.Context)
	OnSelect(ctx context.Context, target, label string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopInteractionHooks is a no-op implementation of InteractionHooks.
type NoopInteractionHooks struct{}

func (NoopInteractionHooks) OnHover(context.Context, string, string)  {}
func (NoopInteractionHooks) OnLeave(context.Context)                  {}
func (NoopInteractionHooks) OnSelect(context.Context, string, string) {}

// =============================================================================
// Logging Implementations
// =============================================================================

// LogHooks reports every event at debug level on a logger. It implements
// all three hook interfaces.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks { return &LogHooks{Logger: logger} }

func (h *LogHooks) OnBuildStart(_ context.Context, entries int) {
	h.Logger.Debug("build started", "entries", entries)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, slices int, d time.Duration, err error) {
	h.Logger.Debug("build finished", "slices", slices, "duration", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.Logger.Debug("render finished", "formats", formats, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnHover(_ context.Context, target, label string) {
	h.Logger.Debug("hover", "target", target, "label", label)
}

func (h *LogHooks) OnLeave(context.Context) { h.Logger.Debug("pointer left") }

func (h *LogHooks) OnSelect(_ context.Context, target, label string) {
	h.Logger.Debug("select", "target", target, "label", label)
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks    PipelineHooks    = NoopPipelineHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	interactionHooks InteractionHooks = NoopInteractionHooks{}
	hooksMu          sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetInteractionHooks registers interaction hooks. Nil is ignored.
func SetInteractionHooks(h InteractionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		interactionHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Interaction returns the registered interaction hooks.
func Interaction() InteractionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return interactionHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	interactionHooks = NoopInteractionHooks{}
}
