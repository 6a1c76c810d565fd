//go:build unix

package mem

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// MmapAllocator backs every block with its own anonymous private mapping.
// Mappings are page aligned, which covers every alignment up to MaxAlign,
// and live outside the Go heap until Release unmaps them.
type MmapAllocator struct {
	tracker
	pageSize uintptr
}

// NewMmapAllocator creates an mmap-backed allocator.
func NewMmapAllocator() (*MmapAllocator, error) {
	return &MmapAllocator{tracker: newTracker(), pageSize: uintptr(os.Getpagesize())}, nil
}

// SetLimit caps the bytes that may be mapped at once. Zero removes the cap.
func (m *MmapAllocator) SetLimit(limit uintptr) { m.limit = limit }

// Name implements Allocator.
func (m *MmapAllocator) Name() string { return AllocatorMmap }

// Allocate implements Allocator.
func (m *MmapAllocator) Allocate(size, align uintptr) ([]byte, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}
	if align == 0 || align&(align-1) != 0 || align > m.pageSize {
		return nil, ErrBadAlign
	}
	if size > math.MaxInt {
		return nil, ErrOutOfMemory
	}
	if err := m.admit(size); err != nil {
		return nil, err
	}

	buf, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	m.add(buf)
	return buf, nil
}

// Release implements Allocator. buf must be the exact slice Allocate returned.
func (m *MmapAllocator) Release(buf []byte) error {
	if err := m.remove(buf); err != nil {
		return err
	}
	if err := unix.Munmap(buf); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}

// Stats returns a snapshot of the allocator counters.
func (m *MmapAllocator) Stats() Stats { return m.stats }
