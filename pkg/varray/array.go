// Package varray provides a fixed-length container of trivially-copyable
// values stored in a single block obtained from the layout engine.
//
// Slots are equally strided by the adapted element size. Accessors are
// bounds checked and never abort: [Array.At] reports absence, [Array.Set] and
// [Array.Swap] silently ignore out-of-range indices. [Array.MustAt] is the
// asserting variant for call sites where an invalid index is a logic defect.
//
// The array owns its block exclusively. Call [Array.Free] exactly once when
// done; later calls are no-ops and the array then reports length 0.
package varray

import (
	"reflect"
	"unsafe"

	"github.com/matzehuels/mergeviz/pkg/fault"
	"github.com/matzehuels/mergeviz/pkg/mem"
)

// Array is a fixed-length sequence of T in manually managed memory.
type Array[T any] struct {
	alloc  mem.Allocator
	layout mem.Layout // per element; Size is the stride
	block  mem.Block
	len    int
}

// New allocates length slots from a and copies initial into each of them.
// It aborts if T holds pointers, if length is negative or if the allocator
// fails.
func New[T any](a mem.Allocator, initial T, length int) *Array[T] {
	if err := mem.CheckTrivial(reflect.TypeFor[T]()); err != nil {
		fault.Abort("varray", "%v", err)
	}
	layout := mem.Of[T]().CAligned()
	arr := &Array[T]{
		alloc:  a,
		layout: layout,
		block:  layout.Scale(length).Alloc(a),
		len:    length,
	}

	size := unsafe.Sizeof(initial)
	if size == 0 {
		return arr
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(&initial)), size)
	buf := arr.block.Bytes()
	for i := 0; i < length; i++ {
		off := uintptr(i) * layout.Size
		copy(buf[off:off+size], src)
	}
	return arr
}

// Len returns the fixed element count.
func (a *Array[T]) Len() int { return a.len }

// Layout returns the adapted per-element layout.
func (a *Array[T]) Layout() mem.Layout { return a.layout }

// At returns the element at i, or false if i is out of bounds.
func (a *Array[T]) At(i int) (T, bool) {
	if !a.inBounds(i) {
		var zero T
		return zero, false
	}
	return *a.slot(i), true
}

// MustAt returns the element at i and aborts the process if i is out of
// bounds.
func (a *Array[T]) MustAt(i int) T {
	v, ok := a.At(i)
	if !ok {
		fault.Abort("varray", "out-of-bounds index %d (length %d)", i, a.len)
	}
	return v
}

// Set stores v at i. Out-of-bounds writes are ignored.
func (a *Array[T]) Set(i int, v T) {
	if !a.inBounds(i) {
		return
	}
	*a.slot(i) = v
}

// Swap exchanges the bytes of slots i and j in place. It is a no-op if
// either index is out of bounds.
func (a *Array[T]) Swap(i, j int) {
	if !a.inBounds(i) || !a.inBounds(j) || i == j {
		return
	}
	x, y := a.bytes(i), a.bytes(j)
	for k := range x {
		x[k], y[k] = y[k], x[k]
	}
}

// Values returns a copy of the elements in order.
func (a *Array[T]) Values() []T {
	out := make([]T, a.len)
	for i := range out {
		out[i] = *a.slot(i)
	}
	return out
}

// Free releases the backing block. Only the first call has an effect.
func (a *Array[T]) Free() {
	if a.block.IsZero() {
		return
	}
	mem.Dealloc(a.alloc, a.block)
	a.block = mem.Block{}
	a.len = 0
}

func (a *Array[T]) inBounds(i int) bool {
	return i >= 0 && i < a.len
}

// slot returns a pointer to element i; i must be in bounds.
func (a *Array[T]) slot(i int) *T {
	if a.layout.Size == 0 {
		return new(T)
	}
	return (*T)(unsafe.Pointer(&a.block.Bytes()[uintptr(i)*a.layout.Size]))
}

func (a *Array[T]) bytes(i int) []byte {
	off := uintptr(i) * a.layout.Size
	return a.block.Bytes()[off : off+a.layout.Size]
}
