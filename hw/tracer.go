package hw

import (
	"fmt"
	"io"
)

// tracer writes a nestest-like execution log, one line per instruction.
type tracer struct {
	w   io.Writer
	cpu *CPU
	buf []byte
}

func (t *tracer) write() {
	c := t.cpu
	dis := c.Disasm(c.PC).String()

	t.buf = append(t.buf[:0], dis...)
	for len(t.buf) < 48 {
		t.buf = append(t.buf, ' ')
	}
	t.buf = fmt.Appendf(t.buf, "A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		c.A, c.X, c.Y, c.Flags(), c.SP)

	if ppu := c.Bus.ppu; ppu != nil {
		t.buf = fmt.Appendf(t.buf, " PPU:%3d,%3d", ppu.Scanline, ppu.Cycle)
	}
	t.buf = fmt.Appendf(t.buf, " CYC:%d\n", c.Cycles)
	t.w.Write(t.buf)
}
