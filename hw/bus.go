package hw

import (
	"yane/emu/log"
	"yane/hw/hwio"
)

// CPU memory map.
const (
	RAMSize = 0x800

	ramEnd    = 0x1FFF // internal RAM, mirrored every 0x800 bytes
	ppuWinBeg = 0x2000 // PPU registers, mirrored every 8 bytes
	ppuWinEnd = 0x3FFF
)

// Bus connects the CPU to the internal RAM, the PPU registers and the
// cartridge. Each access goes to the first device claiming the address, in
// that order: cartridge, RAM, PPU registers. The cartridge comes first so
// that mappers can override the fixed memory map.
type Bus struct {
	RAM *hwio.Mem

	cart *Cartridge
	ppu  *PPU

	cpu  *hwio.Table
	peek *hwio.Table // same as cpu, without side effects
	chr  *hwio.Table

	dbg Debugger
}

// NewBus creates the CPU bus. Both cart and ppu are optional.
func NewBus(cart *Cartridge, ppu *PPU) *Bus {
	b := &Bus{
		RAM:  hwio.NewMem("ram", RAMSize),
		cart: cart,
		ppu:  ppu,
		cpu:  hwio.NewTable("cpu"),
		peek: hwio.NewTable("peek"),
		chr:  hwio.NewTable("chr"),
		dbg:  nopDebugger{},
	}

	ram := &hwio.MemWindow{Mem: b.RAM, Begin: 0x0000, End: ramEnd}
	if cart != nil {
		b.cpu.Map("cart", cpuSide{cart})
		b.peek.Map("cart", cpuSide{cart})
		b.chr.Map("cart", ppuSide{cart})
	}
	b.cpu.Map("ram", ram)
	b.peek.Map("ram", ram)
	if ppu != nil {
		b.cpu.Map("ppu", &ppuWindow{ppu: ppu})
	}
	return b
}

// SetDebugger installs a debugger watching bus accesses, nil removes it.
func (b *Bus) SetDebugger(dbg Debugger) {
	if dbg == nil {
		dbg = nopDebugger{}
	}
	b.dbg = dbg
}

// CPURead reads a byte at addr, ok is false if no device claimed it, in
// which case 0 is returned.
func (b *Bus) CPURead(addr uint16) (val uint8, ok bool) {
	b.dbg.WatchRead(addr)
	val, ok = b.cpu.Read8(addr)
	if !ok {
		log.ModMem.DebugZ("unmapped read").Hex16("addr", addr).End()
		return 0, false
	}
	return val, true
}

// CPUWrite writes a byte at addr and reports whether a device claimed it.
// Writes to unmapped addresses are dropped.
func (b *Bus) CPUWrite(addr uint16, val uint8) bool {
	b.dbg.WatchWrite(addr, val)
	if !b.cpu.Write8(addr, val) {
		log.ModMem.DebugZ("unmapped write").Hex16("addr", addr).Hex8("val", val).End()
		return false
	}
	return true
}

// PPURead reads a byte of the cartridge character memory.
func (b *Bus) PPURead(addr uint16) (uint8, bool) {
	if addr >= 0x2000 {
		return 0, false
	}
	return b.chr.Read8(addr)
}

// PPUWrite writes a byte of the cartridge character memory.
func (b *Bus) PPUWrite(addr uint16, val uint8) bool {
	if addr >= 0x2000 {
		return false
	}
	return b.chr.Write8(addr, val)
}

// Peek8 reads a byte without side effects, PPU registers read as 0.
func (b *Bus) Peek8(addr uint16) uint8 {
	val, _ := b.peek.Read8(addr)
	return val
}

// Devices returns the names of the devices connected to the CPU bus, by
// decreasing priority.
func (b *Bus) Devices() []string {
	return b.cpu.Devices()
}

// ppuWindow maps the 8 PPU registers at 0x2000-0x3FFF. The first access to
// an unimplemented register is reported as a warning, next ones only in
// debug.
type ppuWindow struct {
	ppu    *PPU
	warned uint8
}

func (w *ppuWindow) report(reg uint8, err error) {
	if w.warned&(1<<reg) == 0 {
		w.warned |= 1 << reg
		log.ModPPU.WarnZ("register access").Error("err", err).End()
		return
	}
	log.ModPPU.DebugZ("register access").Error("err", err).End()
}

func (w *ppuWindow) Read8(addr uint16) (uint8, bool) {
	if addr < ppuWinBeg || addr > ppuWinEnd {
		return 0, false
	}
	reg := uint8(addr & 0x7)
	val, err := w.ppu.ReadReg(reg)
	if err != nil {
		w.report(reg, err)
	}
	return val, true
}

func (w *ppuWindow) Write8(addr uint16, val uint8) bool {
	if addr < ppuWinBeg || addr > ppuWinEnd {
		return false
	}
	reg := uint8(addr & 0x7)
	if err := w.ppu.WriteReg(reg, val); err != nil {
		w.report(reg, err)
	}
	return true
}
