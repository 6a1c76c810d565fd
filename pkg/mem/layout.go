package mem

import (
	"math"
	"math/bits"
	"unsafe"

	"github.com/matzehuels/mergeviz/pkg/fault"
	"github.com/matzehuels/mergeviz/pkg/observability"
)

// MaxAlign is the widest alignment every allocator in this package honors.
const MaxAlign = 16

// Layout describes how to allocate storage for a value type.
type Layout struct {
	Size  uintptr // bytes
	Align uintptr // power of two
}

// Of returns the natural layout of T.
func Of[T any]() Layout {
	var zero T
	return Layout{Size: unsafe.Sizeof(zero), Align: unsafe.Alignof(zero)}
}

// CAligned returns the layout adapted to the allocator contract. Zero-size
// layouts are returned unchanged.
func (l Layout) CAligned() Layout {
	if l.Size == 0 {
		return l
	}
	align := uintptr(1)
	if l.Align > 0 {
		align <<= bits.Len64(uint64(l.Align)) - 1
	}
	align = min(align, MaxAlign)
	return Layout{Size: AlignUp(l.Size, align), Align: align}
}

// Scale returns the layout of n consecutive values. The alignment is kept.
func (l Layout) Scale(n int) Layout {
	if n < 0 {
		fault.Abort("layout", "negative element count %d", n)
	}
	hi, lo := bits.Mul64(uint64(l.Size), uint64(n))
	if hi != 0 || lo > math.MaxInt {
		fault.Abort("layout", "size overflow: %d x %d bytes", n, l.Size)
	}
	return Layout{Size: uintptr(lo), Align: l.Align}
}

// Alloc obtains a block for the layout from a. Zero-size layouts yield a
// placeholder without calling the allocator. Allocator failure aborts.
func (l Layout) Alloc(a Allocator) Block {
	if l.Size == 0 {
		return Block{addr: max(l.Align, 1), layout: l}
	}
	c := l.CAligned()
	buf, err := a.Allocate(c.Size, c.Align)
	if err != nil {
		fault.Abort("alloc", "%s allocator cannot provide %d bytes: %v", a.Name(), c.Size, err)
	}
	if uintptr(len(buf)) < c.Size || addrOf(buf)%c.Align != 0 {
		fault.Abort("alloc", "%s allocator returned a block violating %d/%d", a.Name(), c.Size, c.Align)
	}
	observability.Memory().OnAlloc(a.Name(), c.Size, c.Align)
	return Block{addr: addrOf(buf), buf: buf, layout: c}
}

// Dealloc releases b back to a. Placeholders are ignored. Releasing the
// empty handle, or a block a does not own, aborts.
func Dealloc(a Allocator, b Block) {
	switch {
	case b.IsZero():
		fault.Abort("dealloc", "release of an empty block handle")
	case b.Placeholder():
		return
	}
	if err := a.Release(b.buf); err != nil {
		fault.Abort("dealloc", "%s allocator rejected block %#x: %v", a.Name(), b.addr, err)
	}
	observability.Memory().OnRelease(a.Name(), b.layout.Size)
}

// AlignUp rounds n up to a multiple of align, which must be a power of two.
func AlignUp(n, align uintptr) uintptr {
	if align == 0 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
