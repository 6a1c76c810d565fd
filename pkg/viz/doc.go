// Package viz draws the merge-sort animation in a terminal.
//
// # Overview
//
// A run is a fixed sequence of frames over one array of values 1..n:
//
//  1. Randomize: every index is swapped with a random one, one frame before
//     and one after each swap.
//  2. Wait: a single "Waiting..." frame followed by a longer pause.
//  3. Sort: the in-place merge sort from [mergesort], two frames per swap.
//  4. Done: the final frame, without a pause.
//
// Frames are never reordered or skipped. Each frame goes to a [Sink]: the
// [Renderer] writes ANSI text to a terminal, the [Recorder] keeps snapshots
// for later browsing. A [Pacer] sits between the sequence and the sink and
// sleeps after every frame.
//
// The pause after the waiting frame is [DefaultWait] unless Config.Wait
// overrides it; Config.NoWait drops it.
//
// # Usage
//
//	d, err := viz.NewDriver(viz.Config{
//	    Count: 64,
//	    Delay: viz.DelayDuration(0.01),
//	    Seed:  viz.WallClockSeed(),
//	    Sink:  viz.NewRenderer(os.Stdout),
//	})
//	if err != nil {
//	    return err
//	}
//	summary, err := d.Run(ctx)
//
// # Rendering
//
// The histogram has n/2+1 rows. Row y (counted from the bottom, starting at
// 0) shows a full glyph for values >= 2y+1 and a half glyph for values >= 2y,
// so every two units of value add one row of bar height.
//
// [mergesort]: github.com/matzehuels/mergeviz/pkg/mergesort
package viz
