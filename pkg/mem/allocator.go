package mem

import (
	"errors"
	"fmt"
	"strings"

	mverrors "github.com/matzehuels/mergeviz/pkg/errors"
)

// Allocator names accepted by ByName.
const (
	AllocatorHeap = "heap"
	AllocatorMmap = "mmap"
)

// Sentinel errors returned by allocators.
var (
	// ErrZeroSize is returned for zero-byte requests; Layout.Alloc never makes them.
	ErrZeroSize = errors.New("zero-size allocation")

	// ErrBadAlign is returned when the alignment is not a supported power of two.
	ErrBadAlign = errors.New("unsupported alignment")

	// ErrOutOfMemory is returned when a request exceeds the allocator's limit.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrUnknownBlock is returned when releasing a block the allocator does not own,
	// including one that was already released.
	ErrUnknownBlock = errors.New("unknown or already released block")

	// ErrUnsupported is returned when an allocator is not available on this platform.
	ErrUnsupported = errors.New("allocator not supported on this platform")
)

// Allocator is the native allocation primitive behind a Layout.
// Only this package calls it.
type Allocator interface {
	// Name identifies the allocator in logs and diagnostics.
	Name() string

	// Allocate returns size bytes whose first byte is aligned to align.
	Allocate(size, align uintptr) ([]byte, error)

	// Release hands back a slice previously returned by Allocate.
	Release(buf []byte) error
}

// Stats counts allocator activity.
type Stats struct {
	Allocs    int
	Frees     int
	LiveBytes uintptr
}

// Live returns the number of blocks not yet released.
func (s Stats) Live() int { return s.Allocs - s.Frees }

// tracker records live blocks by address. Allocators are used from a single
// goroutine, so it is not synchronized.
type tracker struct {
	live  map[uintptr]uintptr
	stats Stats
	limit uintptr
}

func newTracker() tracker {
	return tracker{live: make(map[uintptr]uintptr)}
}

func (t *tracker) admit(size uintptr) error {
	if t.limit > 0 && (size > t.limit || t.stats.LiveBytes > t.limit-size) {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, size, t.stats.LiveBytes, t.limit)
	}
	return nil
}

func (t *tracker) add(buf []byte) {
	t.live[addrOf(buf)] = uintptr(len(buf))
	t.stats.Allocs++
	t.stats.LiveBytes += uintptr(len(buf))
}

func (t *tracker) remove(buf []byte) error {
	addr := addrOf(buf)
	size, ok := t.live[addr]
	if !ok || buf == nil {
		return ErrUnknownBlock
	}
	delete(t.live, addr)
	t.stats.Frees++
	t.stats.LiveBytes -= size
	return nil
}

// ByName returns a fresh allocator for one of the AllocatorHeap or
// AllocatorMmap names. The empty name selects the heap.
func ByName(name string) (Allocator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AllocatorHeap:
		return NewHeapAllocator(), nil
	case AllocatorMmap:
		a, err := NewMmapAllocator()
		if err != nil {
			return nil, mverrors.Wrap(mverrors.ErrCodeUnsupported, err, "allocator %q unavailable", name)
		}
		return a, nil
	default:
		return nil, mverrors.New(mverrors.ErrCodeInvalidAllocator, "unknown allocator %q (want %s or %s)", name, AllocatorHeap, AllocatorMmap)
	}
}
