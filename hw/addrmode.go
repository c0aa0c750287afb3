package hw

import "yane/hw/hwio"

//go:generate go tool stringer -type=AddrMode

// AddrMode is an addressing mode, the rule to compute the address of the
// operand of an instruction.
type AddrMode uint8

const (
	Implied AddrMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
	Relative
)

// operandSize returns the number of bytes following the opcode.
func (m AddrMode) operandSize() int {
	switch m {
	case Implied, Accumulator:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	}
	return 1
}

// operand resolves the operand address for the given addressing mode, and
// advances PC past the operand bytes. For relative mode, the returned
// address is the branch target.
func (c *CPU) operand(mode AddrMode) uint16 {
	switch mode {
	case Implied, Accumulator:
		return 0
	case Immediate:
		addr := c.PC
		c.PC++
		return addr
	case ZeroPage:
		return uint16(c.fetch8())
	case ZeroPageX:
		return uint16(c.fetch8() + c.X)
	case ZeroPageY:
		return uint16(c.fetch8() + c.Y)
	case Absolute:
		return c.fetch16()
	case AbsoluteX:
		return c.fetch16() + uint16(c.X)
	case AbsoluteY:
		return c.fetch16() + uint16(c.Y)
	case Indirect:
		return c.read16(c.fetch16())
	case IndirectX:
		return c.read16zp(c.fetch8() + c.X)
	case IndirectY:
		return c.read16zp(c.fetch8()) + uint16(c.Y)
	case Relative:
		off := int8(c.fetch8())
		return c.PC + uint16(off)
	}
	panic("unknown addressing mode " + mode.String())
}

// fetch8 reads the byte at PC and increments PC.
func (c *CPU) fetch8() uint8 {
	val := c.read8(c.PC)
	c.PC++
	return val
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return hwio.Word(lo, hi)
}

// read16zp reads a word in page zero, the high byte wraps within the page.
func (c *CPU) read16zp(ptr uint8) uint16 {
	lo := c.read8(uint16(ptr))
	hi := c.read8(uint16(ptr + 1))
	return hwio.Word(lo, hi)
}
