// Package observability lets kozu report generation, cache and HTTP events
// without depending on a metrics or tracing backend.
//
// Each event category has a hook interface with a no-op default. The binary
// registers implementations once at startup; library code fetches the
// current hooks at the call site:
//
//	observability.Register(observability.NewLogHooks(logger))
//
//	observability.Generate().OnGenerateStart(ctx, template, seed)
//
// [LogHooks] writes every event to a charmbracelet logger at debug level.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// GenerateHooks receives events from the composition pipeline.
type GenerateHooks interface {
	// Generation events. template is empty when it will be picked at random.
	OnGenerateStart(ctx context.Context, template string, seed uint64)
	OnGenerateComplete(ctx context.Context, template string, shapes int, duration time.Duration, err error)

	// Render events, one per output format.
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives artifact cache events. format is the artifact format
// the lookup was for.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, format string)
	OnCacheMiss(ctx context.Context, format string)
	OnCacheSet(ctx context.Context, format string, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopGenerateHooks ignores all generation events.
type NoopGenerateHooks struct{}

func (NoopGenerateHooks) OnGenerateStart(context.Context, string, uint64)                      {}
func (NoopGenerateHooks) OnGenerateComplete(context.Context, string, int, time.Duration, error) {}
func (NoopGenerateHooks) OnRenderComplete(context.Context, string, int, time.Duration, error)   {}

// NoopCacheHooks ignores all cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores all HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// registry is replaced as a whole on every change so readers never see a
// half-updated set.
type registry struct {
	generate GenerateHooks
	cache    CacheHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Register installs h for every hook interface it implements and reports
// whether it implemented any.
func Register(h any) bool {
	registered := false
	if g, ok := h.(GenerateHooks); ok {
		SetGenerateHooks(g)
		registered = true
	}
	if c, ok := h.(CacheHooks); ok {
		SetCacheHooks(c)
		registered = true
	}
	if x, ok := h.(HTTPHooks); ok {
		SetHTTPHooks(x)
		registered = true
	}
	return registered
}

// SetGenerateHooks installs generation hooks. nil is ignored.
func SetGenerateHooks(h GenerateHooks) {
	if h != nil {
		update(func(r *registry) { r.generate = h })
	}
}

// SetCacheHooks installs cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks installs HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Generate returns the registered generation hooks.
func Generate() GenerateHooks { return current.Load().generate }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	current.Store(&registry{
		generate: NoopGenerateHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	})
}
