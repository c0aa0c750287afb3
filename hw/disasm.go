package hw

import (
	"fmt"
	"strings"

	"yane/hw/hwio"
)

type DisasmOp struct {
	PC     uint16
	Buf    []byte // opcode and operand bytes
	Opcode string
	Oper   string
}

func (d DisasmOp) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%04X  ", d.PC)
	for i := range 3 {
		if i < len(d.Buf) {
			fmt.Fprintf(&sb, "%02X ", d.Buf[i])
		} else {
			sb.WriteString("   ")
		}
	}
	sb.WriteString(" ")
	sb.WriteString(d.Opcode)
	if d.Oper != "" {
		sb.WriteByte(' ')
		sb.WriteString(d.Oper)
	}
	return sb.String()
}

// Disasm disassembles the instruction at pc. Memory is read without side
// effects.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	opcode := c.Bus.Peek8(pc)
	op := ops[opcode]
	if op.exec == nil {
		return DisasmOp{PC: pc, Buf: []byte{opcode}, Opcode: "???"}
	}

	dis := DisasmOp{
		PC:     pc,
		Buf:    make([]byte, 1+op.mode.operandSize()),
		Opcode: op.name,
	}
	for i := range dis.Buf {
		dis.Buf[i] = c.Bus.Peek8(pc + uint16(i))
	}

	var (
		b8  uint8
		b16 uint16
	)
	if len(dis.Buf) > 1 {
		b8 = dis.Buf[1]
		b16 = uint16(b8)
	}
	if len(dis.Buf) > 2 {
		b16 = hwio.Word(b8, dis.Buf[2])
	}

	switch op.mode {
	case Accumulator:
		dis.Oper = "A"
	case Immediate:
		dis.Oper = fmt.Sprintf("#$%02X", b8)
	case ZeroPage:
		dis.Oper = fmt.Sprintf("$%02X", b8)
	case ZeroPageX:
		dis.Oper = fmt.Sprintf("$%02X,X", b8)
	case ZeroPageY:
		dis.Oper = fmt.Sprintf("$%02X,Y", b8)
	case Absolute:
		dis.Oper = formatAddr(b16)
	case AbsoluteX:
		dis.Oper = formatAddr(b16) + ",X"
	case AbsoluteY:
		dis.Oper = formatAddr(b16) + ",Y"
	case Indirect:
		dis.Oper = fmt.Sprintf("($%04X)", b16)
	case IndirectX:
		dis.Oper = fmt.Sprintf("($%02X,X)", b8)
	case IndirectY:
		dis.Oper = fmt.Sprintf("($%02X),Y", b8)
	case Relative:
		dis.Oper = fmt.Sprintf("$%04X", pc+2+uint16(int8(b8)))
	}
	return dis
}

var addressLabels = map[uint16]string{
	0x2000: "PpuControl_2000",
	0x2001: "PpuMask_2001",
	0x2002: "PpuStatus_2002",
	0x2003: "OamAddr_2003",
	0x2004: "OamData_2004",
	0x2005: "PpuScroll_2005",
	0x2006: "PpuAddr_2006",
	0x2007: "PpuData_2007",
}

func formatAddr(addr uint16) string {
	if label, ok := addressLabels[addr]; ok {
		return label
	}
	return fmt.Sprintf("$%04X", addr)
}
