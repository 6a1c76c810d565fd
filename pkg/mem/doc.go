// Package mem is the layout engine: it computes the size and alignment of a
// value type, adapts that layout to what an allocator can honor, and is the
// only package that talks to an allocator.
//
// # Layouts
//
// [Of] returns the natural layout of a type. [Layout.CAligned] adapts it: the
// alignment becomes the largest power of two not above the natural one,
// clamped to [MaxAlign], and the size is rounded up to a multiple of it. The
// adapted size is the stride between slots of a container.
//
//	l := mem.Of[uint16]().CAligned() // {Size: 2, Align: 2}
//	total := l.Scale(100)            // {Size: 200, Align: 2}
//
// # Blocks
//
// [Layout.Alloc] returns an opaque [Block]. A zero-size layout never reaches
// the allocator: it yields a placeholder whose address equals the alignment,
// so it is distinguishable from the empty handle. [Dealloc] on a placeholder
// is a no-op.
//
// Allocation failure, a double release or an overflowing layout are
// invariant violations and abort the process through pkg/fault; there is no
// recoverable out-of-memory path.
//
// # Allocators
//
//   - [HeapAllocator]: the Go heap, trimmed to the requested alignment
//   - [MmapAllocator]: anonymous private mappings (unix only)
//
// Both track live blocks so that releasing a block twice is detected.
package mem
