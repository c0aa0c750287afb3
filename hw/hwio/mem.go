package hwio

import "fmt"

// Mem is a linear memory area. Its size must be a power of 2, accesses are
// masked with size-1 so that a Mem mapped over a larger range is naturally
// mirrored.
type Mem struct {
	Name string // name of the memory area (for debugging)
	Data []byte // actual memory buffer
}

// NewMem allocates a zeroed memory area of the given size.
func NewMem(name string, size int) *Mem {
	if size <= 0 || size&(size-1) != 0 {
		panic(fmt.Sprintf("memory %q: size 0x%x is not pow2", name, size))
	}
	return &Mem{
		Name: name,
		Data: make([]byte, size),
	}
}

func (m *Mem) mask() uint16 {
	return uint16(len(m.Data) - 1)
}

func (m *Mem) Read8(addr uint16) uint8 {
	return m.Data[addr&m.mask()]
}

func (m *Mem) Write8(addr uint16, val uint8) {
	m.Data[addr&m.mask()] = val
}

// Reset zeroes the whole memory area.
func (m *Mem) Reset() {
	clear(m.Data)
}

// MemWindow maps a Mem over the [Begin, End] address range of a bus, the
// memory being mirrored if the range is larger than the memory.
type MemWindow struct {
	Mem        *Mem
	Begin, End uint16
}

func (w *MemWindow) Read8(addr uint16) (uint8, bool) {
	if addr < w.Begin || addr > w.End {
		return 0, false
	}
	return w.Mem.Read8(addr - w.Begin), true
}

func (w *MemWindow) Write8(addr uint16, val uint8) bool {
	if addr < w.Begin || addr > w.End {
		return false
	}
	w.Mem.Write8(addr-w.Begin, val)
	return true
}
