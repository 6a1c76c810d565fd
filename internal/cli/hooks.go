package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mergeviz/pkg/observability"
	"github.com/matzehuels/mergeviz/pkg/viz"
)

// logHooks reports driver, sort and memory events to the run logger.
// Sort events are only counted; a run can produce millions of them.
type logHooks struct {
	logger    *log.Logger
	merges    int
	fastPaths int
	rotations int
}

var (
	_ observability.DriverHooks = (*logHooks)(nil)
	_ observability.SortHooks   = (*logHooks)(nil)
	_ observability.MemoryHooks = (*logHooks)(nil)
)

// registerHooks installs logging hooks for one run. The returned function
// restores the no-op defaults.
func registerHooks(l *log.Logger) func() {
	h := &logHooks{logger: l}
	observability.SetDriverHooks(h)
	observability.SetSortHooks(h)
	observability.SetMemoryHooks(h)
	return observability.Reset
}

func (h *logHooks) OnPhaseStart(_ context.Context, phase string, length int) {
	h.logger.Debug("phase started", "phase", phase, "values", length)
}

func (h *logHooks) OnPhaseComplete(_ context.Context, phase string, frames int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("phase stopped", "phase", phase, "frames", frames, "err", err)
		return
	}
	kv := []any{"phase", phase, "frames", frames, "took", d.Round(time.Millisecond)}
	if phase == viz.PhaseSort {
		kv = append(kv, "merges", h.merges, "fast", h.fastPaths, "rotations", h.rotations)
	}
	h.logger.Debug("phase done", kv...)
}

func (h *logHooks) OnMerge(_ context.Context, _, _, _ int, fastPath bool) {
	h.merges++
	if fastPath {
		h.fastPaths++
	}
}

func (h *logHooks) OnRotate(context.Context, int, int) {
	h.rotations++
}

func (h *logHooks) OnAlloc(allocator string, size, align uintptr) {
	h.logger.Debug("allocated", "allocator", allocator, "bytes", size, "align", align)
}

func (h *logHooks) OnRelease(allocator string, size uintptr) {
	h.logger.Debug("released", "allocator", allocator, "bytes", size)
}
