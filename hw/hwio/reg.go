package hwio

// Reg8 is an 8-bit memory mapped register.
type Reg8 struct {
	Name  string
	Value uint8
}

func (reg *Reg8) SetBit(n uint) { SetBit8(&reg.Value, n) }

func (reg *Reg8) Read8() uint8 { return reg.Value }
