package debugger

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAddr parses a CPU address written in hexadecimal, with an optional
// '$' or '0x' prefix.
func ParseAddr(s string) (uint16, error) {
	hex := strings.TrimPrefix(s, "$")
	hex = strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	addr, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(addr), nil
}
