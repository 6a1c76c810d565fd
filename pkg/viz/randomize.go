package viz

import (
	"context"
	"math/rand/v2"
	"time"
)

// Swapper is a mutable set of columns.
type Swapper interface {
	Columns
	Swap(i, j int)
}

// NewRand returns the generator used for one run. The same seed always
// yields the same shuffle.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// WallClockSeed derives a seed from the current time.
func WallClockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Randomize visits every index in order and swaps it with an index drawn
// modulo the length. The result is not a uniform permutation. A frame is
// drawn before each swap highlighting the visited index and after it
// highlighting the drawn one.
func Randomize(ctx context.Context, p *Pacer, cols Swapper, rng *rand.Rand, delay time.Duration) error {
	n := cols.Len()
	for i := 0; i < n; i++ {
		if err := p.Frame(ctx, cols, CaptionRandomizing, i, delay); err != nil {
			return err
		}
		r := int(rng.Uint32() % uint32(n))
		cols.Swap(i, r)
		if err := p.Frame(ctx, cols, CaptionRandomizing, r, delay); err != nil {
			return err
		}
	}
	return nil
}
