package viz

import (
	"context"
	"math"
	"time"
)

// Sleeper blocks for a frame delay. It returns early with ctx.Err() when
// the context ends first.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep implements Sleeper.
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// TimerSleeper sleeps on a real timer.
type TimerSleeper struct{}

// Sleep implements Sleeper.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// DelayDuration converts a delay in seconds to a Duration, splitting it into
// whole seconds and the nanosecond remainder.
func DelayDuration(seconds float64) time.Duration {
	whole := math.Trunc(seconds)
	nanos := (seconds - whole) * 1e9
	return time.Duration(whole)*time.Second + time.Duration(nanos)
}

// Pacer draws frames to a Sink and sleeps after each one.
type Pacer struct {
	sink    Sink
	sleeper Sleeper
	frames  int
}

// NewPacer creates a Pacer. A nil sleeper selects TimerSleeper.
func NewPacer(sink Sink, sleeper Sleeper) *Pacer {
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	return &Pacer{sink: sink, sleeper: sleeper}
}

// Frame draws one frame and then pauses for delay. A non-positive delay
// draws without pausing.
func (p *Pacer) Frame(ctx context.Context, cols Columns, caption string, highlight int, delay time.Duration) error {
	if err := p.sink.Draw(cols, caption, highlight); err != nil {
		return err
	}
	p.frames++
	if delay <= 0 {
		return nil
	}
	return p.sleeper.Sleep(ctx, delay)
}

// Frames returns the number of frames drawn so far.
func (p *Pacer) Frames() int { return p.frames }
