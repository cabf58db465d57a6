// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about backend resolution, metadata extraction and
// requirements scanning.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExtractHooks(&myExtractHooks{})
//	    observability.SetScanHooks(&myScanHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Extract().OnExtractStart(ctx, id, dir, backend)
//	// ... invoke the backend ...
//	observability.Extract().OnExtractComplete(ctx, id, dir, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Extract Hooks
// =============================================================================

// ExtractHooks receives events from the metadata extraction pipeline.
type ExtractHooks interface {
	// OnResolve records the build system chosen for a project. fallback is
	// true when the default descriptor was used because no declaration exists.
	OnResolve(ctx context.Context, dir, backend string, fallback bool)

	// OnExtractStart records the start of a hook invocation.
	OnExtractStart(ctx context.Context, id, dir, backend string)

	// OnExtractComplete records the end of an extraction, successful or not.
	OnExtractComplete(ctx context.Context, id, dir string, duration time.Duration, err error)
}

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from requirements scanning.
type ScanHooks interface {
	// OnScanFile records a requirements file about to be read.
	OnScanFile(ctx context.Context, path string)

	// OnScanComplete records the end of a scan.
	OnScanComplete(ctx context.Context, dir string, files, entries int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExtractHooks is a no-op implementation of ExtractHooks.
type NoopExtractHooks struct{}

func (NoopExtractHooks) OnResolve(context.Context, string, string, bool)        {}
func (NoopExtractHooks) OnExtractStart(context.Context, string, string, string) {}
func (NoopExtractHooks) OnExtractComplete(context.Context, string, string, time.Duration, error) {
}

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnScanFile(context.Context, string)                      {}
func (NoopScanHooks) OnScanComplete(context.Context, string, int, int, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	extractHooks ExtractHooks = NoopExtractHooks{}
	scanHooks    ScanHooks    = NoopScanHooks{}
	hooksMu      sync.RWMutex
)

// SetExtractHooks registers custom extraction hooks.
// This should be called once at application startup before any extraction.
func SetExtractHooks(h ExtractHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		extractHooks = h
	}
}

// SetScanHooks registers custom scan hooks.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// Extract returns the registered extraction hooks.
func Extract() ExtractHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return extractHooks
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	extractHooks = NoopExtractHooks{}
	scanHooks = NoopScanHooks{}
}
