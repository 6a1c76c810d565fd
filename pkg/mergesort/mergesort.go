// Package mergesort implements an in-place, rotation-based merge sort that
// reports every element movement.
//
// Merging two sorted runs does not use an auxiliary buffer. When the head of
// the right run belongs before the current element of the left run, it is
// rotated into place by a chain of adjacent swaps. That makes the worst case
// O(n²) element movements, and every one of them is a visible step: the
// [StepFunc] is called before each swap with the lower index of the pair and
// after it with the upper index.
//
//	s := mergesort.New[uint16](arr, func(highlight int) error {
//	    return draw(arr, highlight)
//	})
//	if err := s.Sort(ctx, 0, arr.Len()-1); err != nil {
//	    return err
//	}
package mergesort

import (
	"cmp"
	"context"

	"github.com/matzehuels/mergeviz/pkg/observability"
)

// Sequence is the container the sorter works on. MustAt aborts the process
// on an invalid index; the sorter only asks for indices inside the range it
// was given.
type Sequence[T cmp.Ordered] interface {
	Len() int
	MustAt(i int) T
	Swap(i, j int)
}

// StepFunc is called around every swap. A non-nil error stops the sort and
// is returned from Sort.
type StepFunc func(highlight int) error

// Stats counts the work done by a Sorter.
type Stats struct {
	Comparisons int // element comparisons
	Swaps       int // adjacent swaps performed while rotating
	Merges      int // merge calls
	FastPaths   int // merges skipped because the runs were already ordered
}

// Sorter sorts a Sequence in place.
type Sorter[T cmp.Ordered] struct {
	seq   Sequence[T]
	step  StepFunc
	stats Stats
}

// New creates a Sorter. step may be nil.
func New[T cmp.Ordered](seq Sequence[T], step StepFunc) *Sorter[T] {
	if step == nil {
		step = func(int) error { return nil }
	}
	return &Sorter[T]{seq: seq, step: step}
}

// Stats returns the counters accumulated so far.
func (s *Sorter[T]) Stats() Stats { return s.stats }

// Sort orders the inclusive range [left, right].
func (s *Sorter[T]) Sort(ctx context.Context, left, right int) error {
	if left >= right {
		return nil
	}
	middle := left + (right-left)/2

	if err := s.Sort(ctx, left, middle); err != nil {
		return err
	}
	if err := s.Sort(ctx, middle+1, right); err != nil {
		return err
	}
	return s.Merge(ctx, left, middle, right)
}

// Merge merges the sorted runs [left, middle] and [middle+1, right].
func (s *Sorter[T]) Merge(ctx context.Context, left, middle, right int) error {
	s.stats.Merges++
	cursor := middle + 1

	s.stats.Comparisons++
	if s.seq.MustAt(middle) <= s.seq.MustAt(cursor) {
		s.stats.FastPaths++
		observability.Sort().OnMerge(ctx, left, middle, right, true)
		return nil
	}
	observability.Sort().OnMerge(ctx, left, middle, right, false)

	for left <= middle && cursor <= right {
		s.stats.Comparisons++
		if s.seq.MustAt(left) <= s.seq.MustAt(cursor) {
			left++
			continue
		}

		if err := s.rotate(cursor, left); err != nil {
			return err
		}
		observability.Sort().OnRotate(ctx, cursor, left)

		left++
		middle++
		cursor++
	}
	return nil
}

// rotate moves the element at from down to to, shifting the elements in
// between up by one.
func (s *Sorter[T]) rotate(from, to int) error {
	for k := from; k > to; k-- {
		if err := s.step(k - 1); err != nil {
			return err
		}
		s.seq.Swap(k, k-1)
		s.stats.Swaps++
		if err := s.step(k); err != nil {
			return err
		}
	}
	return nil
}

// Sort orders all of seq and returns the work counters.
func Sort[T cmp.Ordered](ctx context.Context, seq Sequence[T], step StepFunc) (Stats, error) {
	s := New(seq, step)
	err := s.Sort(ctx, 0, seq.Len()-1)
	return s.Stats(), err
}
