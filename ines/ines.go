// package ines implements a decoder for roms in the iNES file format, used
// for the distribution of NES binary programs.
package ines

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	Magic      = "NES\x1a"
	HeaderSize = 16

	PRGBankSize = 0x4000 // 16KB
	CHRBankSize = 0x2000 // 8KB
	TrainerSize = 512
)

var (
	ErrInvalidMagic      = errors.New("invalid magic number")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTruncated         = errors.New("truncated rom")
	ErrNoPRG             = errors.New("rom has no PRG bank")
)

type Rom struct {
	header
	Trainer []byte // Trainer, 512 bytes if present, or empty.
	PRG     []byte // PRG is PRG ROM data (length is multiples of 16k)
	CHR     []byte // CHR is CHR ROM data (length is multiples of 8k)
}

// Open loads a rom from file.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := new(Rom)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rom, nil
}

// Decode decodes a rom from an in-memory image.
func Decode(buf []byte) (*Rom, error) {
	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(buf)); err != nil {
		return nil, err
	}
	return rom, nil
}

// ReadFrom implements io.ReaderFrom interface. The rom is read sequentially:
// header, trainer (if any), PRG then CHR sections.
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	var n int64

	readSection := func(name string, size int) ([]byte, error) {
		buf := make([]byte, size)
		nread, err := io.ReadFull(r, buf)
		n += int64(nread)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return nil, fmt.Errorf("%w: incomplete %s section (%d/%d bytes)", ErrTruncated, name, nread, size)
		case err != nil:
			return nil, err
		}
		return buf, nil
	}

	// header
	hdr, err := readSection("header", HeaderSize)
	if err != nil {
		return n, err
	}
	if err := rom.decode(hdr); err != nil {
		return n, fmt.Errorf("failed to decode header: %w", err)
	}

	// trainer
	if rom.HasTrainer() {
		if rom.Trainer, err = readSection("TRAINER", TrainerSize); err != nil {
			return n, err
		}
	}

	// PRG rom data
	if rom.PRG, err = readSection("PRG", rom.prgsz); err != nil {
		return n, err
	}

	// CHR rom data
	if rom.CHR, err = readSection("CHR", rom.chrsz); err != nil {
		return n, err
	}

	return n, nil
}

func (hdr *header) decode(p []byte) error {
	if len(p) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes", ErrTruncated, HeaderSize)
	}
	if string(p[:4]) != Magic {
		return ErrInvalidMagic
	}
	copy(hdr.raw[:], p[:HeaderSize])

	if hdr.IsNES20() {
		return fmt.Errorf("%w: NES 2.0 header", ErrUnsupportedFormat)
	}
	if hdr.PRGBanks() == 0 {
		return ErrNoPRG
	}

	hdr.prgsz = int(hdr.PRGBanks()) * PRGBankSize
	hdr.chrsz = int(hdr.CHRBanks()) * CHRBankSize
	return nil
}

// header layout:
//
//	0-3   magic "NES\x1a"
//	4     PRG bank count (16KB units)
//	5     CHR bank count (8KB units, 0 means CHR RAM)
//	6     flags6: mapper low nibble, trainer, persistent memory, mirroring
//	7     flags7: mapper high nibble, NES 2.0 identifier
//	8     PRG RAM size
//	9-10  TV system
//	11-15 reserved
type header struct {
	raw   [HeaderSize]byte
	prgsz int
	chrsz int
}

func (hdr *header) PRGBanks() uint8 { return hdr.raw[4] }
func (hdr *header) CHRBanks() uint8 { return hdr.raw[5] }

// HasTrainer indicates the presence of a trainer section in the rom.
func (hdr *header) HasTrainer() bool {
	return hdr.raw[6]&0x04 != 0
}

// HasPersistent indicates the presence of persistent memory in the rom.
func (hdr *header) HasPersistent() bool {
	return hdr.raw[6]&0x02 != 0
}

// VerticalMirroring reports the nametable mirroring arrangement.
func (hdr *header) VerticalMirroring() bool {
	return hdr.raw[6]&0x01 != 0
}

// IsNES20 reports whether the header uses the NES 2.0 extensions.
func (hdr *header) IsNES20() bool {
	return hdr.raw[7]&0x0C == 0x08
}

// Mapper returns the mapper number, made of the high nibbles of flags 7 and 6.
func (hdr *header) Mapper() uint16 {
	return uint16(hdr.raw[7]&0xF0) | uint16(hdr.raw[6]>>4)
}

func (hdr *header) PRGRAMSize() int {
	// 0 infers 8KB for compatibility.
	return max(1, int(hdr.raw[8])) * 0x2000
}

func (hdr *header) IsPAL() bool {
	return hdr.raw[9]&0x01 != 0
}

// PrintInfos writes a human readable description of the rom header.
func (rom *Rom) PrintInfos(w io.Writer) {
	tv := "NTSC"
	if rom.IsPAL() {
		tv = "PAL"
	}
	mirroring := "horizontal"
	if rom.VerticalMirroring() {
		mirroring = "vertical"
	}
	chr := fmt.Sprintf("%dKB", len(rom.CHR)/1024)
	if rom.CHRBanks() == 0 {
		chr = "none (CHR RAM)"
	}

	fmt.Fprintf(w, "PRG ROM:    %dKB (%d banks)\n", len(rom.PRG)/1024, rom.PRGBanks())
	fmt.Fprintf(w, "CHR ROM:    %s\n", chr)
	fmt.Fprintf(w, "Mapper:     %03d\n", rom.Mapper())
	fmt.Fprintf(w, "Mirroring:  %s\n", mirroring)
	fmt.Fprintf(w, "PRG RAM:    %dKB\n", rom.PRGRAMSize()/1024)
	fmt.Fprintf(w, "Trainer:    %t\n", rom.HasTrainer())
	fmt.Fprintf(w, "Persistent: %t\n", rom.HasPersistent())
	fmt.Fprintf(w, "TV system:  %s\n", tv)
}
