package hw

type opdef struct {
	name   string
	mode   AddrMode
	cycles uint8 // base cycle count, page crossings are not accounted for
	exec   func(cpu *CPU, addr uint16)
}

// ops holds the 151 official opcodes, other entries are nil.
var ops = [256]opdef{
	0x00: {"BRK", Implied, 7, brk},
	0x01: {"ORA", IndirectX, 6, ora},
	0x05: {"ORA", ZeroPage, 3, ora},
	0x06: {"ASL", ZeroPage, 5, asl},
	0x08: {"PHP", Implied, 3, php},
	0x09: {"ORA", Immediate, 2, ora},
	0x0A: {"ASL", Accumulator, 2, aslAcc},
	0x0D: {"ORA", Absolute, 4, ora},
	0x0E: {"ASL", Absolute, 6, asl},
	0x10: {"BPL", Relative, 2, bpl},
	0x11: {"ORA", IndirectY, 5, ora},
	0x15: {"ORA", ZeroPageX, 4, ora},
	0x16: {"ASL", ZeroPageX, 6, asl},
	0x18: {"CLC", Implied, 2, clc},
	0x19: {"ORA", AbsoluteY, 4, ora},
	0x1D: {"ORA", AbsoluteX, 4, ora},
	0x1E: {"ASL", AbsoluteX, 7, asl},
	0x20: {"JSR", Absolute, 6, jsr},
	0x21: {"AND", IndirectX, 6, and},
	0x24: {"BIT", ZeroPage, 3, bit},
	0x25: {"AND", ZeroPage, 3, and},
	0x26: {"ROL", ZeroPage, 5, rol},
	0x28: {"PLP", Implied, 4, plp},
	0x29: {"AND", Immediate, 2, and},
	0x2A: {"ROL", Accumulator, 2, rolAcc},
	0x2C: {"BIT", Absolute, 4, bit},
	0x2D: {"AND", Absolute, 4, and},
	0x2E: {"ROL", Absolute, 6, rol},
	0x30: {"BMI", Relative, 2, bmi},
	0x31: {"AND", IndirectY, 5, and},
	0x35: {"AND", ZeroPageX, 4, and},
	0x36: {"ROL", ZeroPageX, 6, rol},
	0x38: {"SEC", Implied, 2, sec},
	0x39: {"AND", AbsoluteY, 4, and},
	0x3D: {"AND", AbsoluteX, 4, and},
	0x3E: {"ROL", AbsoluteX, 7, rol},
	0x40: {"RTI", Implied, 6, rti},
	0x41: {"EOR", IndirectX, 6, eor},
	0x45: {"EOR", ZeroPage, 3, eor},
	0x46: {"LSR", ZeroPage, 5, lsr},
	0x48: {"PHA", Implied, 3, pha},
	0x49: {"EOR", Immediate, 2, eor},
	0x4A: {"LSR", Accumulator, 2, lsrAcc},
	0x4C: {"JMP", Absolute, 3, jmp},
	0x4D: {"EOR", Absolute, 4, eor},
	0x4E: {"LSR", Absolute, 6, lsr},
	0x50: {"BVC", Relative, 2, bvc},
	0x51: {"EOR", IndirectY, 5, eor},
	0x55: {"EOR", ZeroPageX, 4, eor},
	0x56: {"LSR", ZeroPageX, 6, lsr},
	0x58: {"CLI", Implied, 2, cli},
	0x59: {"EOR", AbsoluteY, 4, eor},
	0x5D: {"EOR", AbsoluteX, 4, eor},
	0x5E: {"LSR", AbsoluteX, 7, lsr},
	0x60: {"RTS", Implied, 6, rts},
	0x61: {"ADC", IndirectX, 6, adc},
	0x65: {"ADC", ZeroPage, 3, adc},
	0x66: {"ROR", ZeroPage, 5, ror},
	0x68: {"PLA", Implied, 4, pla},
	0x69: {"ADC", Immediate, 2, adc},
	0x6A: {"ROR", Accumulator, 2, rorAcc},
	0x6C: {"JMP", Indirect, 5, jmp},
	0x6D: {"ADC", Absolute, 4, adc},
	0x6E: {"ROR", Absolute, 6, ror},
	0x70: {"BVS", Relative, 2, bvs},
	0x71: {"ADC", IndirectY, 5, adc},
	0x75: {"ADC", ZeroPageX, 4, adc},
	0x76: {"ROR", ZeroPageX, 6, ror},
	0x78: {"SEI", Implied, 2, sei},
	0x79: {"ADC", AbsoluteY, 4, adc},
	0x7D: {"ADC", AbsoluteX, 4, adc},
	0x7E: {"ROR", AbsoluteX, 7, ror},
	0x81: {"STA", IndirectX, 6, sta},
	0x84: {"STY", ZeroPage, 3, sty},
	0x85: {"STA", ZeroPage, 3, sta},
	0x86: {"STX", ZeroPage, 3, stx},
	0x88: {"DEY", Implied, 2, dey},
	0x8A: {"TXA", Implied, 2, txa},
	0x8C: {"STY", Absolute, 4, sty},
	0x8D: {"STA", Absolute, 4, sta},
	0x8E: {"STX", Absolute, 4, stx},
	0x90: {"BCC", Relative, 2, bcc},
	0x91: {"STA", IndirectY, 6, sta},
	0x94: {"STY", ZeroPageX, 4, sty},
	0x95: {"STA", ZeroPageX, 4, sta},
	0x96: {"STX", ZeroPageY, 4, stx},
	0x98: {"TYA", Implied, 2, tya},
	0x99: {"STA", AbsoluteY, 5, sta},
	0x9A: {"TXS", Implied, 2, txs},
	0x9D: {"STA", AbsoluteX, 5, sta},
	0xA0: {"LDY", Immediate, 2, ldy},
	0xA1: {"LDA", IndirectX, 6, lda},
	0xA2: {"LDX", Immediate, 2, ldx},
	0xA4: {"LDY", ZeroPage, 3, ldy},
	0xA5: {"LDA", ZeroPage, 3, lda},
	0xA6: {"LDX", ZeroPage, 3, ldx},
	0xA8: {"TAY", Implied, 2, tay},
	0xA9: {"LDA", Immediate, 2, lda},
	0xAA: {"TAX", Implied, 2, tax},
	0xAC: {"LDY", Absolute, 4, ldy},
	0xAD: {"LDA", Absolute, 4, lda},
	0xAE: {"LDX", Absolute, 4, ldx},
	0xB0: {"BCS", Relative, 2, bcs},
	0xB1: {"LDA", IndirectY, 5, lda},
	0xB4: {"LDY", ZeroPageX, 4, ldy},
	0xB5: {"LDA", ZeroPageX, 4, lda},
	0xB6: {"LDX", ZeroPageY, 4, ldx},
	0xB8: {"CLV", Implied, 2, clv},
	0xB9: {"LDA", AbsoluteY, 4, lda},
	0xBA: {"TSX", Implied, 2, tsx},
	0xBC: {"LDY", AbsoluteX, 4, ldy},
	0xBD: {"LDA", AbsoluteX, 4, lda},
	0xBE: {"LDX", AbsoluteY, 4, ldx},
	0xC0: {"CPY", Immediate, 2, cpy},
	0xC1: {"CMP", IndirectX, 6, cmpA},
	0xC4: {"CPY", ZeroPage, 3, cpy},
	0xC5: {"CMP", ZeroPage, 3, cmpA},
	0xC6: {"DEC", ZeroPage, 5, dec},
	0xC8: {"INY", Implied, 2, iny},
	0xC9: {"CMP", Immediate, 2, cmpA},
	0xCA: {"DEX", Implied, 2, dex},
	0xCC: {"CPY", Absolute, 4, cpy},
	0xCD: {"CMP", Absolute, 4, cmpA},
	0xCE: {"DEC", Absolute, 6, dec},
	0xD0: {"BNE", Relative, 2, bne},
	0xD1: {"CMP", IndirectY, 5, cmpA},
	0xD5: {"CMP", ZeroPageX, 4, cmpA},
	0xD6: {"DEC", ZeroPageX, 6, dec},
	0xD8: {"CLD", Implied, 2, nop},
	0xD9: {"CMP", AbsoluteY, 4, cmpA},
	0xDD: {"CMP", AbsoluteX, 4, cmpA},
	0xDE: {"DEC", AbsoluteX, 7, dec},
	0xE0: {"CPX", Immediate, 2, cpx},
	0xE1: {"SBC", IndirectX, 6, sbc},
	0xE4: {"CPX", ZeroPage, 3, cpx},
	0xE5: {"SBC", ZeroPage, 3, sbc},
	0xE6: {"INC", ZeroPage, 5, inc},
	0xE8: {"INX", Implied, 2, inx},
	0xE9: {"SBC", Immediate, 2, sbc},
	0xEA: {"NOP", Implied, 2, nop},
	0xEC: {"CPX", Absolute, 4, cpx},
	0xED: {"SBC", Absolute, 4, sbc},
	0xEE: {"INC", Absolute, 6, inc},
	0xF0: {"BEQ", Relative, 2, beq},
	0xF1: {"SBC", IndirectY, 5, sbc},
	0xF5: {"SBC", ZeroPageX, 4, sbc},
	0xF6: {"INC", ZeroPageX, 6, inc},
	0xF8: {"SED", Implied, 2, nop},
	0xF9: {"SBC", AbsoluteY, 4, sbc},
	0xFD: {"SBC", AbsoluteX, 4, sbc},
	0xFE: {"INC", AbsoluteX, 7, inc},
}
