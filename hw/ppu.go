package hw

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"yane/emu/log"
	"yane/hw/hwio"
)

const (
	NumScanlines = 262 // Number of scanlines per frame.
	NumCycles    = 341 // Number of PPU cycles per scanline.

	preRenderScanline = -1
)

// CPU-exposed registers, mapped at 0x2000-0x2007 and mirrored up to 0x3FFF.
const (
	PPUCTRL = iota
	PPUMASK
	PPUSTATUS
	OAMADDR
	OAMDATA
	PPUSCROLL
	PPUADDR
	PPUDATA
)

// PPUSTATUS bits
const (
	// Vertical blank has started (0: not in vblank; 1: in vblank).
	vblank = 7
)

var ErrRegNotImplemented = errors.New("PPU register not implemented")

type PPU struct {
	Cycle    int // Current cycle/pixel in scanline, 0-340
	Scanline int // Current scanline, -1 (pre-render) to 260

	// FrameComplete is set at the end of each frame. The PPU never clears
	// it, the consumer does.
	FrameComplete bool
	Frames        uint64 // number of completed frames

	// $0000-$0FFF Pattern table 0
	// $1000-$1FFF Pattern table 1
	// only used when the cartridge doesn't claim these addresses.
	Patterns [2]*hwio.Mem

	// $3F00-$3F1F Palette RAM indexes
	// $3F20-$3FFF Mirrors of $3F00-$3F1F
	Palettes *hwio.Mem

	// CPU-exposed registers, only PPUSTATUS holds a value.
	Regs [8]hwio.Reg8

	cart *Cartridge
}

// NewPPU creates a PPU reading character memory from cart, which can be nil.
func NewPPU(cart *Cartridge) *PPU {
	p := &PPU{
		Patterns: [2]*hwio.Mem{
			hwio.NewMem("pattern0", 0x1000),
			hwio.NewMem("pattern1", 0x1000),
		},
		Palettes: hwio.NewMem("palettes", 0x20),
		Regs: [8]hwio.Reg8{
			{Name: "PPUCTRL"}, {Name: "PPUMASK"}, {Name: "PPUSTATUS"}, {Name: "OAMADDR"},
			{Name: "OAMDATA"}, {Name: "PPUSCROLL"}, {Name: "PPUADDR"}, {Name: "PPUDATA"},
		},
		cart: cart,
	}
	p.Reset()
	return p
}

func (p *PPU) Reset() {
	p.Cycle = 0
	p.Scanline = preRenderScanline
	p.FrameComplete = false
	p.Frames = 0

	p.Patterns[0].Reset()
	p.Patterns[1].Reset()
	p.Palettes.Reset()

	for i := range p.Regs {
		p.Regs[i].Value = 0
	}
	p.Regs[PPUSTATUS].SetBit(vblank)
}

// Run runs one PPU cycle.
func (p *PPU) Run() {
	p.Cycle++
	if p.Cycle < NumCycles {
		return
	}

	p.Cycle = 0
	p.Scanline++
	if p.Scanline < NumScanlines-1 {
		return
	}

	p.Scanline = preRenderScanline
	p.FrameComplete = true
	p.Frames++
	log.ModPPU.DebugZ("frame complete").Uint("frame", p.Frames).End()
}

// ReadReg reads one of the 8 CPU-exposed registers. Only PPUSTATUS is
// implemented, it always reports vblank.
func (p *PPU) ReadReg(reg uint8) (uint8, error) {
	reg &= 7
	if reg == PPUSTATUS {
		return p.Regs[reg].Read8(), nil
	}
	return 0, fmt.Errorf("%w: read %s", ErrRegNotImplemented, p.Regs[reg].Name)
}

// WriteReg writes one of the 8 CPU-exposed registers, none is implemented.
func (p *PPU) WriteReg(reg uint8, val uint8) error {
	reg &= 7
	return fmt.Errorf("%w: write %s (val=0x%02x)", ErrRegNotImplemented, p.Regs[reg].Name, val)
}

// Read8 reads a byte on the PPU bus.
func (p *PPU) Read8(addr uint16) uint8 {
	addr &= 0x3FFF
	if p.cart != nil {
		if val, ok := p.cart.PPURead(addr); ok {
			return val
		}
	}

	switch {
	case addr < 0x2000:
		return p.Patterns[addr>>12].Read8(addr)
	case addr >= 0x3F00:
		return p.Palettes.Read8(addr)
	}
	return 0
}

// Write8 writes a byte on the PPU bus.
func (p *PPU) Write8(addr uint16, val uint8) {
	addr &= 0x3FFF
	if p.cart != nil && p.cart.PPUWrite(addr, val) {
		return
	}

	switch {
	case addr < 0x2000:
		p.Patterns[addr>>12].Write8(addr, val)
	case addr >= 0x3F00:
		p.Palettes.Write8(addr, val)
	}
}

// paletteColor returns the color of a 2-bit pixel value in a palette.
func (p *PPU) paletteColor(palette, pixel uint8) color.RGBA {
	idx := p.Read8(0x3F00 + uint16(palette)<<2 + uint16(pixel))
	return SystemPalette[idx&0x3F]
}

// PatternTable renders one of the 2 pattern tables (16x16 tiles of 8x8
// pixels) with one of the 8 palettes. It has no side effects.
func (p *PPU) PatternTable(table, palette uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	base := uint16(table&1) * 0x1000
	palette &= 7

	for ty := range 16 {
		for tx := range 16 {
			off := base + uint16(ty*256+tx*16)
			for row := range 8 {
				lo := p.Read8(off + uint16(row))
				hi := p.Read8(off + uint16(row) + 8)
				for col := range 8 {
					shift := 7 - col
					pixel := hwio.GetBiti8(lo, uint(shift)) + hwio.GetBiti8(hi, uint(shift))
					img.SetRGBA(tx*8+col, ty*8+row, p.paletteColor(palette, pixel))
				}
			}
		}
	}
	return img
}
