package emu

import (
	"fmt"

	"yane/emu/log"
	"yane/hw"
	"yane/hw/mappers"
	"yane/ines"
)

// The PPU runs 3 cycles per CPU cycle.
const ppuCyclesPerCPU = 3

// NES wires the hardware components together and drives their clocks.
type NES struct {
	CPU  *hw.CPU
	PPU  *hw.PPU
	Bus  *hw.Bus
	Cart *hw.Cartridge
	Rom  *ines.Rom

	clock uint64 // master clock, in PPU cycles
}

// PowerUp creates the hardware from a rom and resets the CPU.
func PowerUp(rom *ines.Rom) (*NES, error) {
	cart, err := hw.NewCartridge(rom)
	if err != nil {
		return nil, fmt.Errorf("failed to create cartridge: %w", err)
	}

	ppu := hw.NewPPU(cart)
	bus := hw.NewBus(cart, ppu)
	nes := &NES{
		CPU:  hw.NewCPU(bus),
		PPU:  ppu,
		Bus:  bus,
		Cart: cart,
		Rom:  rom,
	}
	nes.CPU.Init()

	log.ModEmu.InfoZ("power up").
		String("mapper", mappers.All[rom.Mapper()].Name).
		Hex16("reset", nes.CPU.PC).
		End()
	return nes, nil
}

// Reset resets the PPU and reloads the CPU program counter from the reset
// vector. Memory is left untouched.
func (nes *NES) Reset() {
	nes.PPU.Reset()
	nes.CPU.Init()
	nes.clock = 0
}

// Clock runs one master clock tick: one PPU cycle, and one CPU cycle every 3
// ticks.
func (nes *NES) Clock() {
	nes.PPU.Run()
	if nes.clock%ppuCyclesPerCPU == 0 {
		nes.CPU.Clock()
	}
	nes.clock++
}

// Ticks returns the number of master clock ticks since power up.
func (nes *NES) Ticks() uint64 { return nes.clock }

// RunOneFrame clocks the hardware until the PPU completes a frame.
func (nes *NES) RunOneFrame() {
	nes.runFrame(func() bool { return false })
}

// runFrame clocks the hardware until the end of the current frame, or until
// stop returns true. It reports whether the frame completed.
func (nes *NES) runFrame(stop func() bool) bool {
	for !nes.PPU.FrameComplete {
		if stop() {
			return false
		}
		nes.Clock()
	}
	nes.PPU.FrameComplete = false
	return true
}
