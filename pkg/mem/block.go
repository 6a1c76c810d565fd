package mem

// Block is an owned memory block obtained from [Layout.Alloc]. The zero value
// is the empty handle.
type Block struct {
	addr   uintptr
	buf    []byte
	layout Layout
}

// Addr returns the numeric address of the block. For placeholders this is
// the layout's alignment; it is never 0 for a block returned by Alloc.
func (b Block) Addr() uintptr { return b.addr }

// Layout returns the layout the block was allocated for.
func (b Block) Layout() Layout { return b.layout }

// Placeholder reports whether b stands for a zero-size allocation with no
// backing memory.
func (b Block) Placeholder() bool { return b.addr != 0 && b.buf == nil }

// IsZero reports whether b is the empty handle.
func (b Block) IsZero() bool { return b.addr == 0 }

// Bytes exposes the backing memory to the container that owns the block.
// It is nil for placeholders.
func (b Block) Bytes() []byte { return b.buf }
