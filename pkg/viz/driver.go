package viz

import (
	"context"
	"slices"
	"time"

	mverrors "github.com/matzehuels/mergeviz/pkg/errors"
	"github.com/matzehuels/mergeviz/pkg/mem"
	"github.com/matzehuels/mergeviz/pkg/mergesort"
	"github.com/matzehuels/mergeviz/pkg/observability"
	"github.com/matzehuels/mergeviz/pkg/varray"
)

// Frame captions, one per phase.
const (
	CaptionRandomizing = "Randomizing..."
	CaptionWaiting     = "Waiting..."
	CaptionSorting     = "Sorting..."
	CaptionDone        = "Done"
)

// Phase names reported to observability.DriverHooks.
const (
	PhaseRandomize = "randomize"
	PhaseWait      = "wait"
	PhaseSort      = "sort"
	PhaseDone      = "done"
)

// DefaultWait is the pause after the "Waiting..." frame.
const DefaultWait = time.Second

// Config describes one run.
type Config struct {
	Count int           // number of values, within [2, 32767]
	Delay time.Duration // pause after each randomize and sort frame
	Wait  time.Duration // pause after the waiting frame; zero means DefaultWait
	Seed  uint64        // shuffle seed

	NoWait bool // skip the pause after the waiting frame

	Allocator mem.Allocator // defaults to a fresh heap allocator
	Sink      Sink          // required
	Sleeper   Sleeper       // defaults to TimerSleeper
}

// Summary describes a completed run.
type Summary struct {
	Count   int
	Seed    uint64
	Frames  int
	Sort    mergesort.Stats
	Elapsed time.Duration
	Sorted  bool
}

// Driver runs the randomize, wait, sort and done sequence.
type Driver struct {
	cfg Config
}

// NewDriver validates cfg and fills in defaults.
func NewDriver(cfg Config) (*Driver, error) {
	if err := mverrors.ValidateCount(cfg.Count); err != nil {
		return nil, err
	}
	if cfg.Delay <= 0 {
		return nil, mverrors.New(mverrors.ErrCodeInvalidDelay, "frame delay must be positive (got %s)", cfg.Delay)
	}
	if cfg.Wait < 0 {
		return nil, mverrors.New(mverrors.ErrCodeInvalidConfig, "wait must not be negative (got %s)", cfg.Wait)
	}
	switch {
	case cfg.NoWait:
		cfg.Wait = 0
	case cfg.Wait == 0:
		cfg.Wait = DefaultWait
	}
	if cfg.Sink == nil {
		return nil, mverrors.New(mverrors.ErrCodeInternal, "no frame sink configured")
	}
	if cfg.Allocator == nil {
		cfg.Allocator = mem.NewHeapAllocator()
	}
	if cfg.Sleeper == nil {
		cfg.Sleeper = TimerSleeper{}
	}
	return &Driver{cfg: cfg}, nil
}

// Run executes the full sequence. It returns early only when a frame or a
// pause fails, which includes ctx being cancelled while sleeping.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	n := d.cfg.Count
	summary := Summary{Count: n, Seed: d.cfg.Seed}

	arr := varray.New[Value](d.cfg.Allocator, 0, n)
	defer arr.Free()
	for k := 1; k <= n; k++ {
		arr.Set(k-1, Value(k))
	}

	pacer := NewPacer(d.cfg.Sink, d.cfg.Sleeper)
	sorter := mergesort.New[Value](arr, func(highlight int) error {
		return pacer.Frame(ctx, arr, CaptionSorting, highlight, d.cfg.Delay)
	})

	err := d.phase(ctx, pacer, PhaseRandomize, func() error {
		return Randomize(ctx, pacer, arr, NewRand(d.cfg.Seed), d.cfg.Delay)
	})
	if err == nil {
		err = d.phase(ctx, pacer, PhaseWait, func() error {
			return pacer.Frame(ctx, arr, CaptionWaiting, NoHighlight, d.cfg.Wait)
		})
	}
	if err == nil {
		err = d.phase(ctx, pacer, PhaseSort, func() error {
			return sorter.Sort(ctx, 0, n-1)
		})
	}
	if err == nil {
		err = d.phase(ctx, pacer, PhaseDone, func() error {
			return pacer.Frame(ctx, arr, CaptionDone, NoHighlight, 0)
		})
	}

	summary.Frames = pacer.Frames()
	summary.Sort = sorter.Stats()
	summary.Sorted = slices.IsSorted(arr.Values())
	summary.Elapsed = time.Since(start)
	return summary, err
}

func (d *Driver) phase(ctx context.Context, p *Pacer, name string, fn func() error) error {
	hooks := observability.Driver()
	hooks.OnPhaseStart(ctx, name, d.cfg.Count)
	start, before := time.Now(), p.Frames()
	err := fn()
	hooks.OnPhaseComplete(ctx, name, p.Frames()-before, time.Since(start), err)
	return err
}
