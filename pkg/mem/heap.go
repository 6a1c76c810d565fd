package mem

import "math"

// HeapAllocator allocates from the Go heap. Blocks are over-allocated by
// align-1 bytes and trimmed so that the first byte is aligned; the garbage
// collector never moves heap objects, so the alignment holds for the
// block's lifetime.
type HeapAllocator struct {
	tracker
}

// NewHeapAllocator creates an unlimited heap allocator.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{tracker: newTracker()}
}

// SetLimit caps the bytes that may be live at once. Zero removes the cap.
func (h *HeapAllocator) SetLimit(limit uintptr) { h.limit = limit }

// Name implements Allocator.
func (h *HeapAllocator) Name() string { return AllocatorHeap }

// Allocate implements Allocator.
func (h *HeapAllocator) Allocate(size, align uintptr) ([]byte, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}
	if align == 0 || align&(align-1) != 0 || align > MaxAlign {
		return nil, ErrBadAlign
	}
	if size > math.MaxInt-align {
		return nil, ErrOutOfMemory
	}
	if err := h.admit(size); err != nil {
		return nil, err
	}

	raw := make([]byte, size+align-1)
	off := AlignUp(addrOf(raw), align) - addrOf(raw)
	buf := raw[off : off+size : off+size]
	h.add(buf)
	return buf, nil
}

// Release implements Allocator. The memory itself is reclaimed by the
// garbage collector once the caller drops its last reference.
func (h *HeapAllocator) Release(buf []byte) error {
	return h.remove(buf)
}

// Stats returns a snapshot of the allocator counters.
func (h *HeapAllocator) Stats() Stats { return h.stats }
