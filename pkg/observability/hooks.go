// Package observability provides hooks for metrics, tracing, and logging.
//
// The core packages (mem, mergesort, viz) report what they do through small
// hook interfaces instead of importing a logger. The CLI registers
// implementations at startup; everything else sees no-op defaults.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSortHooks(&mySortHooks{})
//	    observability.SetMemoryHooks(&myMemoryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Driver().OnPhaseStart(ctx, "sort", n)
//	// ... sort ...
//	observability.Driver().OnPhaseComplete(ctx, "sort", frames, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Driver Hooks
// =============================================================================

// DriverHooks receives events from the visualization sequence.
type DriverHooks interface {
	// Phase events (randomize, wait, sort, done)
	OnPhaseStart(ctx context.Context, phase string, length int)
	OnPhaseComplete(ctx context.Context, phase string, frames int, duration time.Duration, err error)
}

// =============================================================================
// Sort Hooks
// =============================================================================

// SortHooks receives events from the merge-sort engine.
type SortHooks interface {
	// OnMerge records a merge of [left..middle] and [middle+1..right].
	// fastPath is true when the runs were already in order.
	OnMerge(ctx context.Context, left, middle, right int, fastPath bool)

	// OnRotate records one element moved from index from down to index to.
	OnRotate(ctx context.Context, from, to int)
}

// =============================================================================
// Memory Hooks
// =============================================================================

// MemoryHooks receives events from the layout engine.
// Allocation paths carry no context.
type MemoryHooks interface {
	// OnAlloc records a block obtained from an allocator.
	OnAlloc(allocator string, size, align uintptr)

	// OnRelease records a block handed back to an allocator.
	OnRelease(allocator string, size uintptr)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDriverHooks is a no-op implementation of DriverHooks.
type NoopDriverHooks struct{}

func (NoopDriverHooks) OnPhaseStart(context.Context, string, int) {}
func (NoopDriverHooks) OnPhaseComplete(context.Context, string, int, time.Duration, error) {
}

// NoopSortHooks is a no-op implementation of SortHooks.
type NoopSortHooks struct{}

func (NoopSortHooks) OnMerge(context.Context, int, int, int, bool) {}
func (NoopSortHooks) OnRotate(context.Context, int, int)           {}

// NoopMemoryHooks is a no-op implementation of MemoryHooks.
type NoopMemoryHooks struct{}

func (NoopMemoryHooks) OnAlloc(string, uintptr, uintptr) {}
func (NoopMemoryHooks) OnRelease(string, uintptr)        {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	driverHooks DriverHooks = NoopDriverHooks{}
	sortHooks   SortHooks   = NoopSortHooks{}
	memoryHooks MemoryHooks = NoopMemoryHooks{}
	hooksMu     sync.RWMutex
)

// SetDriverHooks registers custom driver hooks.
// This should be called once at application startup before the sequence runs.
func SetDriverHooks(h DriverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		driverHooks = h
	}
}

// SetSortHooks registers custom sort hooks.
func SetSortHooks(h SortHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sortHooks = h
	}
}

// SetMemoryHooks registers custom memory hooks.
func SetMemoryHooks(h MemoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		memoryHooks = h
	}
}

// Driver returns the registered driver hooks.
func Driver() DriverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return driverHooks
}

// Sort returns the registered sort hooks.
func Sort() SortHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sortHooks
}

// Memory returns the registered memory hooks.
func Memory() MemoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return memoryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	driverHooks = NoopDriverHooks{}
	sortHooks = NoopSortHooks{}
	memoryHooks = NoopMemoryHooks{}
}
