//go:build !unix

package mem

// MmapAllocator is unavailable on this platform.
type MmapAllocator struct {
	tracker
}

// NewMmapAllocator always fails with ErrUnsupported on this platform.
func NewMmapAllocator() (*MmapAllocator, error) {
	return nil, ErrUnsupported
}

// SetLimit is a no-op on this platform.
func (m *MmapAllocator) SetLimit(uintptr) {}

// Name implements Allocator.
func (m *MmapAllocator) Name() string { return AllocatorMmap }

// Allocate implements Allocator.
func (m *MmapAllocator) Allocate(uintptr, uintptr) ([]byte, error) { return nil, ErrUnsupported }

// Release implements Allocator.
func (m *MmapAllocator) Release([]byte) error { return ErrUnsupported }

// Stats returns a snapshot of the allocator counters.
func (m *MmapAllocator) Stats() Stats { return Stats{} }
