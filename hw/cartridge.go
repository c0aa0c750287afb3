package hw

import (
	"fmt"
	"io"

	"yane/hw/mappers"
	"yane/ines"
)

// chrRAMSize is the CHR RAM size allocated for carts without CHR ROM.
const chrRAMSize = 0x2000

// A Cartridge holds the program and character memories of a rom and the
// mapper translating bus addresses into these memories.
type Cartridge struct {
	PRG    []byte
	CHR    []byte
	Mapper mappers.Mapper

	rom *ines.Rom
}

// NewCartridge creates a cartridge from a decoded rom.
func NewCartridge(rom *ines.Rom) (*Cartridge, error) {
	m, err := mappers.New(rom.Mapper(), rom.PRGBanks(), rom.CHRBanks())
	if err != nil {
		return nil, err
	}

	cart := &Cartridge{
		PRG:    make([]byte, len(rom.PRG)),
		Mapper: m,
		rom:    rom,
	}
	copy(cart.PRG, rom.PRG)

	if rom.CHRBanks() == 0 {
		cart.CHR = make([]byte, chrRAMSize)
	} else {
		cart.CHR = make([]byte, len(rom.CHR))
		copy(cart.CHR, rom.CHR)
	}
	return cart, nil
}

// LoadCartridge decodes a rom from r and creates a cartridge from it.
func LoadCartridge(r io.Reader) (*Cartridge, error) {
	rom := new(ines.Rom)
	if _, err := rom.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to load rom: %w", err)
	}
	return NewCartridge(rom)
}

// Rom returns the rom the cartridge has been created from.
func (c *Cartridge) Rom() *ines.Rom { return c.rom }

// Translated offsets outside of PRG or CHR means the mapper is inconsistent
// with the cartridge, the index out of range panic is what we want.

func (c *Cartridge) CPURead(addr uint16) (uint8, bool) {
	off, ok := c.Mapper.CPUMapRead(addr)
	if !ok {
		return 0, false
	}
	return c.PRG[off], true
}

func (c *Cartridge) CPUWrite(addr uint16, val uint8) bool {
	off, ok := c.Mapper.CPUMapWrite(addr)
	if !ok {
		return false
	}
	c.PRG[off] = val
	return true
}

func (c *Cartridge) PPURead(addr uint16) (uint8, bool) {
	off, ok := c.Mapper.PPUMapRead(addr)
	if !ok {
		return 0, false
	}
	return c.CHR[off], true
}

func (c *Cartridge) PPUWrite(addr uint16, val uint8) bool {
	off, ok := c.Mapper.PPUMapWrite(addr)
	if !ok {
		return false
	}
	c.CHR[off] = val
	return true
}

// cpuSide exposes the cartridge PRG side as a bus device.
type cpuSide struct{ *Cartridge }

func (c cpuSide) Read8(addr uint16) (uint8, bool)    { return c.CPURead(addr) }
func (c cpuSide) Write8(addr uint16, val uint8) bool { return c.CPUWrite(addr, val) }

// ppuSide exposes the cartridge CHR side as a bus device.
type ppuSide struct{ *Cartridge }

func (c ppuSide) Read8(addr uint16) (uint8, bool)    { return c.PPURead(addr) }
func (c ppuSide) Write8(addr uint16, val uint8) bool { return c.PPUWrite(addr, val) }
