package mappers

import (
	"errors"
	"fmt"

	"yane/emu/log"
)

var modMapper = log.NewModule("mapper")

var ErrUnsupportedMapper = errors.New("unsupported mapper")

// A Mapper translates bus addresses into offsets of the cartridge PRG and CHR
// memories. A mapper is a pure function of its construction parameters; the
// boolean reports whether the address is claimed by the cartridge.
type Mapper interface {
	CPUMapRead(addr uint16) (uint32, bool)
	CPUMapWrite(addr uint16) (uint32, bool)
	PPUMapRead(addr uint16) (uint32, bool)
	PPUMapWrite(addr uint16) (uint32, bool)
}

type MapperDesc struct {
	Name string
	New  func(prgBanks, chrBanks uint8) Mapper
}

var All = map[uint16]MapperDesc{
	0: NROM,
}

// New returns the mapper with the given iNES mapper number.
func New(id uint16, prgBanks, chrBanks uint8) (Mapper, error) {
	desc, ok := All[id]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnsupportedMapper, id)
	}

	modMapper.InfoZ("loading mapper").
		String("name", desc.Name).
		Uint("prg", uint64(prgBanks)).
		Uint("chr", uint64(chrBanks)).
		End()
	return desc.New(prgBanks, chrBanks), nil
}
