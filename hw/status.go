package hw

// P is the processor status register.
//
// Only five flags are tracked and their layout differs from the real 6502
// one. Decimal and break flags don't exist.
//
//	7  bit  0
//	---- ----
//	CZI. ..VN
//	|||     ||
//	|||     |+- Negative
//	|||     +-- Overflow
//	||+-------- Interrupt disable
//	|+--------- Zero
//	+---------- Carry
type P uint8

const (
	Negative   P = 1 << 0
	Overflow   P = 1 << 1
	IntDisable P = 1 << 5
	Zero       P = 1 << 6
	Carry      P = 1 << 7

	pmask = Negative | Overflow | IntDisable | Zero | Carry
)

func (p P) N() bool { return p&Negative != 0 }
func (p P) V() bool { return p&Overflow != 0 }
func (p P) I() bool { return p&IntDisable != 0 }
func (p P) Z() bool { return p&Zero != 0 }
func (p P) C() bool { return p&Carry != 0 }

func (p *P) writeFlag(flag P, v bool) {
	if v {
		*p |= flag
	} else {
		*p &^= flag
	}
}

// sets N if bit 7 of v is set, and Z if v is 0.
func (p *P) checkNZ(v uint8) {
	p.writeFlag(Negative, v&0x80 != 0)
	p.writeFlag(Zero, v == 0)
}

func (p P) String() string {
	const letters = "nvizcNVIZC"
	flags := [...]P{Negative, Overflow, IntDisable, Zero, Carry}

	s := make([]byte, len(flags))
	for i, f := range flags {
		if p&f != 0 {
			s[i] = letters[i+len(flags)]
		} else {
			s[i] = letters[i]
		}
	}
	return string(s)
}

// Registers holds the architectural state of the CPU.
type Registers struct {
	A, X, Y uint8
	SP      uint8 // offset in the stack page (0x0100-0x01FF)
	PC      uint16
	P       P
}

// Flags packs the status flags into a byte.
func (r *Registers) Flags() uint8 {
	return uint8(r.P & pmask)
}

// SetFlags unpacks b into the status flags, untracked bits are ignored.
func (r *Registers) SetFlags(b uint8) {
	r.P = P(b) & pmask
}

// reset sets the registers to their power-up state.
func (r *Registers) reset() {
	*r = Registers{SP: 0xFD, P: IntDisable}
}
