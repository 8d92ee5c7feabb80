// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages never log on their own. They report events through the
// hook interfaces below, and the binary decides what to do with them: the
// CLI turns them into debug log lines, a service could feed a metrics
// backend instead.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so no import cycles arise.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRoundHooks(&myRoundHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... generate the ladder ...
//	observability.Round().OnGenerate(ctx, id, lanes, rungs, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Round Hooks
// =============================================================================

// RoundHooks receives events from round creation.
type RoundHooks interface {
	// OnGenerate records a generated ladder and the time it took to build
	// and trace.
	OnGenerate(ctx context.Context, id string, lanes, rungs int, duration time.Duration)

	// OnTrace records the outcome of one starting lane.
	OnTrace(ctx context.Context, id string, start, final int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from round store backends.
type StoreHooks interface {
	// OnSave records a write.
	OnSave(ctx context.Context, backend, id string, err error)

	// OnLoad records a read. hit is false when the round does not exist.
	OnLoad(ctx context.Context, backend, id string, hit bool, err error)

	// OnDelete records a removal.
	OnDelete(ctx context.Context, backend, id string, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records a served request.
	OnRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRoundHooks is a no-op implementation of RoundHooks.
type NoopRoundHooks struct{}

func (NoopRoundHooks) OnGenerate(context.Context, string, int, int, time.Duration) {}
func (NoopRoundHooks) OnTrace(context.Context, string, int, int)                   {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, string, error)       {}
func (NoopStoreHooks) OnLoad(context.Context, string, string, bool, error) {}
func (NoopStoreHooks) OnDelete(context.Context, string, string, error)     {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	roundHooks RoundHooks = NoopRoundHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetRoundHooks registers custom round hooks.
// This should be called once at application startup before any round is created.
func SetRoundHooks(h RoundHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		roundHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store is opened.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Round returns the registered round hooks.
func Round() RoundHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return roundHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	roundHooks = NoopRoundHooks{}
	storeHooks = NoopStoreHooks{}
	httpHooks = NoopHTTPHooks{}
}
