package hwio

// GetBiti8 returns bit n of v, as 0 or 1.
func GetBiti8(v uint8, n uint) uint8 {
	return v >> (n) & 0x01
}

func SetBit8(v *uint8, n uint) {
	*v |= (1 << n)
}

// 16-bit helpers

func Lo(v uint16) uint8 { return uint8(v & 0xff) }
func Hi(v uint16) uint8 { return uint8(v >> 8) }

func Word(lo, hi uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}
