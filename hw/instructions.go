package hw

/* loads and stores */

func lda(c *CPU, addr uint16) {
	c.A = c.read8(addr)
	c.P.checkNZ(c.A)
}

func ldx(c *CPU, addr uint16) {
	c.X = c.read8(addr)
	c.P.checkNZ(c.X)
}

func ldy(c *CPU, addr uint16) {
	c.Y = c.read8(addr)
	c.P.checkNZ(c.Y)
}

func sta(c *CPU, addr uint16) { c.write8(addr, c.A) }
func stx(c *CPU, addr uint16) { c.write8(addr, c.X) }
func sty(c *CPU, addr uint16) { c.write8(addr, c.Y) }

/* transfers */

func tax(c *CPU, _ uint16) {
	c.X = c.A
	c.P.checkNZ(c.X)
}

func tay(c *CPU, _ uint16) {
	c.Y = c.A
	c.P.checkNZ(c.Y)
}

func txa(c *CPU, _ uint16) {
	c.A = c.X
	c.P.checkNZ(c.A)
}

func tya(c *CPU, _ uint16) {
	c.A = c.Y
	c.P.checkNZ(c.A)
}

func tsx(c *CPU, _ uint16) {
	c.X = c.SP
	c.P.checkNZ(c.X)
}

func txs(c *CPU, _ uint16) { c.SP = c.X }

/* arithmetic */

// add adds val and the carry to the accumulator.
func (c *CPU) add(val uint8) {
	var carry uint16
	if c.P.C() {
		carry = 1
	}
	sum := uint16(c.A) + uint16(val) + carry
	res := uint8(sum)

	// signed overflow: both operands have the same sign, which differs
	// from the sign of the result.
	c.P.writeFlag(Overflow, (c.A^res)&^(c.A^val)&0x80 != 0)
	c.P.writeFlag(Carry, sum > 0xFF)
	c.A = res
	c.P.checkNZ(c.A)
}

func adc(c *CPU, addr uint16) { c.add(c.read8(addr)) }
func sbc(c *CPU, addr uint16) { c.add(^c.read8(addr)) }

func (c *CPU) compare(reg, val uint8) {
	c.P.writeFlag(Carry, reg >= val)
	c.P.checkNZ(reg - val)
}

func cmpA(c *CPU, addr uint16) { c.compare(c.A, c.read8(addr)) }
func cpx(c *CPU, addr uint16) { c.compare(c.X, c.read8(addr)) }
func cpy(c *CPU, addr uint16) { c.compare(c.Y, c.read8(addr)) }

func inc(c *CPU, addr uint16) {
	val := c.read8(addr) + 1
	c.write8(addr, val)
	c.P.checkNZ(val)
}

func dec(c *CPU, addr uint16) {
	val := c.read8(addr) - 1
	c.write8(addr, val)
	c.P.checkNZ(val)
}

func inx(c *CPU, _ uint16) {
	c.X++
	c.P.checkNZ(c.X)
}

func iny(c *CPU, _ uint16) {
	c.Y++
	c.P.checkNZ(c.Y)
}

func dex(c *CPU, _ uint16) {
	c.X--
	c.P.checkNZ(c.X)
}

func dey(c *CPU, _ uint16) {
	c.Y--
	c.P.checkNZ(c.Y)
}

/* logical */

func and(c *CPU, addr uint16) {
	c.A &= c.read8(addr)
	c.P.checkNZ(c.A)
}

func ora(c *CPU, addr uint16) {
	c.A |= c.read8(addr)
	c.P.checkNZ(c.A)
}

func eor(c *CPU, addr uint16) {
	c.A ^= c.read8(addr)
	c.P.checkNZ(c.A)
}

func bit(c *CPU, addr uint16) {
	val := c.read8(addr)
	c.P.writeFlag(Zero, c.A&val == 0)
	c.P.writeFlag(Negative, val&0x80 != 0)
	c.P.writeFlag(Overflow, val&0x40 != 0)
}

/* shifts and rotates */

func (c *CPU) shl(val uint8, carryIn bool) uint8 {
	res := val << 1
	if carryIn {
		res |= 0x01
	}
	c.P.writeFlag(Carry, val&0x80 != 0)
	c.P.checkNZ(res)
	return res
}

func (c *CPU) shr(val uint8, carryIn bool) uint8 {
	res := val >> 1
	if carryIn {
		res |= 0x80
	}
	c.P.writeFlag(Carry, val&0x01 != 0)
	c.P.checkNZ(res)
	return res
}

func asl(c *CPU, addr uint16) { c.write8(addr, c.shl(c.read8(addr), false)) }
func lsr(c *CPU, addr uint16) { c.write8(addr, c.shr(c.read8(addr), false)) }
func rol(c *CPU, addr uint16) { c.write8(addr, c.shl(c.read8(addr), c.P.C())) }
func ror(c *CPU, addr uint16) { c.write8(addr, c.shr(c.read8(addr), c.P.C())) }

func aslAcc(c *CPU, _ uint16) { c.A = c.shl(c.A, false) }
func lsrAcc(c *CPU, _ uint16) { c.A = c.shr(c.A, false) }
func rolAcc(c *CPU, _ uint16) { c.A = c.shl(c.A, c.P.C()) }
func rorAcc(c *CPU, _ uint16) { c.A = c.shr(c.A, c.P.C()) }

/* branches, the operand address is the branch target */

func branch(flag P, set bool) func(*CPU, uint16) {
	return func(c *CPU, target uint16) {
		if (c.P&flag != 0) == set {
			c.PC = target
		}
	}
}

var (
	bcc = branch(Carry, false)
	bcs = branch(Carry, true)
	bne = branch(Zero, false)
	beq = branch(Zero, true)
	bpl = branch(Negative, false)
	bmi = branch(Negative, true)
	bvc = branch(Overflow, false)
	bvs = branch(Overflow, true)
)

/* jumps and subroutines */

func jmp(c *CPU, addr uint16) { c.PC = addr }

func jsr(c *CPU, addr uint16) {
	// PC points to the next instruction.
	c.push16(c.PC - 1)
	c.PC = addr
}

func rts(c *CPU, _ uint16) {
	c.PC = c.pull16() + 1
}

func rti(c *CPU, _ uint16) {
	c.SetFlags(c.pull8())
	c.PC = c.pull16()
}

// brk performs an IRQ, pushing the address right after the opcode. It's a
// no-op when interrupts are disabled.
func brk(c *CPU, _ uint16) {
	if c.P.I() {
		return
	}
	c.interrupt(IRQVector, false)
}

/* stack */

func pha(c *CPU, _ uint16) { c.push8(c.A) }
func php(c *CPU, _ uint16) { c.push8(c.Flags()) }

func pla(c *CPU, _ uint16) {
	c.A = c.pull8()
	c.P.checkNZ(c.A)
}

func plp(c *CPU, _ uint16) { c.SetFlags(c.pull8()) }

/* flags */

func clc(c *CPU, _ uint16) { c.P &^= Carry }
func sec(c *CPU, _ uint16) { c.P |= Carry }
func cli(c *CPU, _ uint16) { c.P &^= IntDisable }
func sei(c *CPU, _ uint16) { c.P |= IntDisable }
func clv(c *CPU, _ uint16) { c.P &^= Overflow }

// nop is also used for CLD and SED, decimal mode doesn't exist on the NES.
func nop(c *CPU, _ uint16) {}
