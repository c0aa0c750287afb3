package mappers

var NROM = MapperDesc{
	Name: "NROM",
	New:  newNROM,
}

// nrom maps 16KB or 32KB of PRG ROM at 0x8000-0xFFFF. 16KB roms are mirrored
// at 0xC000-0xFFFF. CHR is either 8KB of ROM or, without CHR bank, 8KB of RAM.
type nrom struct {
	prgBanks uint8
	chrBanks uint8
}

func newNROM(prgBanks, chrBanks uint8) Mapper {
	return &nrom{prgBanks: prgBanks, chrBanks: chrBanks}
}

func (m *nrom) prgMask() uint16 {
	if m.prgBanks > 1 {
		return 0x7FFF
	}
	return 0x3FFF
}

func (m *nrom) CPUMapRead(addr uint16) (uint32, bool) {
	if addr >= 0x8000 {
		return uint32(addr & m.prgMask()), true
	}
	return 0, false
}

func (m *nrom) CPUMapWrite(addr uint16) (uint32, bool) {
	if addr >= 0x8000 {
		return uint32(addr & m.prgMask()), true
	}
	return 0, false
}

func (m *nrom) PPUMapRead(addr uint16) (uint32, bool) {
	if addr < 0x2000 {
		return uint32(addr), true
	}
	return 0, false
}

func (m *nrom) PPUMapWrite(addr uint16) (uint32, bool) {
	if addr < 0x2000 && m.chrBanks == 0 {
		// CHR RAM
		return uint32(addr), true
	}
	return 0, false
}
