package tests

import "bytes"

// ROM describes an in-memory iNES image.
type ROM struct {
	PRGBanks uint8
	CHRBanks uint8
	Mapper   uint8
	Flags6   uint8 // low nibble of flags 6 (mirroring, persistent, trainer)
	Flags7   uint8 // low nibble of flags 7

	Trainer []byte

	// PRG and CHR are copied at the start of their respective sections, the
	// rest of the sections is zero-filled.
	PRG []byte
	CHR []byte

	// Vectors, written at the end of the last PRG bank, little-endian.
	NMI, Reset, IRQ uint16
}

// BuildROM returns an iNES image built from r.
func BuildROM(r ROM) []byte {
	var buf bytes.Buffer

	flags6 := r.Mapper<<4 | r.Flags6&0x0F
	if len(r.Trainer) > 0 {
		flags6 |= 0x04
	}
	flags7 := r.Mapper&0xF0 | r.Flags7&0x0F

	buf.WriteString("NES\x1a")
	buf.Write([]byte{r.PRGBanks, r.CHRBanks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0})

	if len(r.Trainer) > 0 {
		trainer := make([]byte, 512)
		copy(trainer, r.Trainer)
		buf.Write(trainer)
	}

	prg := make([]byte, int(r.PRGBanks)*0x4000)
	copy(prg, r.PRG)
	if len(prg) != 0 {
		end := len(prg)
		prg[end-6], prg[end-5] = byte(r.NMI), byte(r.NMI>>8)
		prg[end-4], prg[end-3] = byte(r.Reset), byte(r.Reset>>8)
		prg[end-2], prg[end-1] = byte(r.IRQ), byte(r.IRQ>>8)
	}
	buf.Write(prg)

	chr := make([]byte, int(r.CHRBanks)*0x2000)
	copy(chr, r.CHR)
	buf.Write(chr)

	return buf.Bytes()
}

// Program returns a single PRG bank NROM image running prog at 0x8000.
func Program(prog ...byte) []byte {
	return BuildROM(ROM{
		PRGBanks: 1,
		CHRBanks: 1,
		PRG:      prog,
		Reset:    0x8000,
		IRQ:      0x8000,
		NMI:      0x8000,
	})
}
