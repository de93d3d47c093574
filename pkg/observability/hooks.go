// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through package-level hooks that default to no-ops.
// The CLI registers real implementations (see [NewPrometheusHooks]) at
// startup, so the overlay packages never depend on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    h := observability.NewPrometheusHooks(prometheus.NewRegistry())
//	    observability.SetPipelineHooks(h)
//	    observability.SetCacheHooks(h)
//	    observability.SetOverlayHooks(h)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Overlay().OnMarkerResolved(ctx, "claim", "side", "seabed", 12)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	OnSceneLoad(ctx context.Context, scene string, requests int, duration time.Duration, err error)
	// OnRenderStart and OnRenderComplete bracket each request.
	OnRenderStart(ctx context.Context, request, style string)
	OnRenderComplete(ctx context.Context, request, style string, markers int, duration time.Duration, err error)
	OnArtifactWrite(ctx context.Context, format string, size int, err error)
}

// CacheHooks receives events from [cache.Instrumented]. keyType is the
// key kind ("render", "artifact").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// OverlayHooks receives events from marker resolution.
type OverlayHooks interface {
	// OnMarkerResolved records one resolved marker. reason is empty for
	// exact markers; steps counts the voxels scanned while snapping.
	OnMarkerResolved(ctx context.Context, style, role, reason string, steps int)
}

// Noop implements every hook interface and does nothing. Embed it to
// implement only the events you need.
type Noop struct{}

func (Noop) OnSceneLoad(context.Context, string, int, time.Duration, error)              {}
func (Noop) OnRenderStart(context.Context, string, string)                               {}
func (Noop) OnRenderComplete(context.Context, string, string, int, time.Duration, error) {}
func (Noop) OnArtifactWrite(context.Context, string, int, error)                         {}
func (Noop) OnCacheHit(context.Context, string)                                          {}
func (Noop) OnCacheMiss(context.Context, string)                                         {}
func (Noop) OnCacheSet(context.Context, string, int)                                     {}
func (Noop) OnMarkerResolved(context.Context, string, string, string, int)               {}

// registry is replaced wholesale on every update; readers load it
// without locking.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	overlay  OverlayHooks
}

var (
	current  atomic.Pointer[registry]
	updateMu sync.Mutex
)

func init() { Reset() }

func update(f func(*registry)) {
	updateMu.Lock()
	defer updateMu.Unlock()
	next := *current.Load()
	f(&next)
	current.Store(&next)
}

// SetPipelineHooks registers pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetOverlayHooks registers overlay hooks. nil is ignored.
func SetOverlayHooks(h OverlayHooks) {
	if h != nil {
		update(func(r *registry) { r.overlay = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// Overlay returns the registered overlay hooks.
func Overlay() OverlayHooks { return current.Load().overlay }

// Reset restores the no-op hooks.
func Reset() {
	current.Store(&registry{pipeline: Noop{}, cache: Noop{}, overlay: Noop{}})
}
