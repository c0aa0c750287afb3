package emu

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"yane/ines"
	"yane/tests"
)

type nestestState struct {
	PC          uint16
	A, X, Y, SP uint8
}

// parseNestestLine extracts the registers from a nestest.log line:
//
//	C000  4C F5 C5  JMP $C5F5      A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7
func parseNestestLine(line string) (nestestState, error) {
	var st nestestState
	if len(line) < 4 {
		return st, fmt.Errorf("short line %q", line)
	}

	pc, err := strconv.ParseUint(line[:4], 16, 16)
	if err != nil {
		return st, err
	}
	st.PC = uint16(pc)

	i := strings.Index(line, "A:")
	if i < 0 {
		return st, fmt.Errorf("no registers in %q", line)
	}
	var p uint8
	_, err = fmt.Sscanf(line[i:], "A:%02X X:%02X Y:%02X P:%02X SP:%02X", &st.A, &st.X, &st.Y, &p, &st.SP)
	return st, err
}

// The status byte layout differs from the 2A03 one, so the log can only be
// followed until the flags go through memory.
var flagsThroughMemory = map[uint8]string{
	0x00: "BRK",
	0x08: "PHP",
	0x28: "PLP",
	0x40: "RTI",
}

func TestNestest(t *testing.T) {
	rom, err := ines.Open(tests.RomPath(t, "other", "nestest.nes"))
	if err != nil {
		t.Fatal(err)
	}
	flog, err := os.Open(tests.RomPath(t, "other", "nestest.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer flog.Close()

	nes, err := PowerUp(rom)
	if err != nil {
		t.Fatal(err)
	}

	// nestest runs headless from 0xC000.
	nes.CPU.PC = 0xC000

	sc := bufio.NewScanner(flog)
	nlines, stopped := 0, ""
	for sc.Scan() {
		nlines++
		want, err := parseNestestLine(sc.Text())
		if err != nil {
			t.Fatalf("nestest.log:%d: %v", nlines, err)
		}

		got := nestestState{PC: nes.CPU.PC, A: nes.CPU.A, X: nes.CPU.X, Y: nes.CPU.Y, SP: nes.CPU.SP}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("nestest.log:%d: state mismatch (-want +got):\n%s", nlines, diff)
		}

		if op, ok := flagsThroughMemory[nes.Bus.Peek8(got.PC)]; ok {
			stopped = op
			break
		}
		nes.CPU.Exec()
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}

	// the jump, subroutine and branch prologue comes before any flag push.
	if nlines < 20 {
		t.Errorf("only %d instructions checked", nlines)
	}
	t.Logf("%d instructions match nestest.log, stopped at %s", nlines, stopped)
}
