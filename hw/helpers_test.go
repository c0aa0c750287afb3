package hw

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"

	"yane/tests"
)

/* cpu specific testing helpers */

func b2i(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func wantMem8(t *testing.T, cpu *CPU, addr uint16, want uint8) {
	t.Helper()

	if got := cpu.Bus.Peek8(addr); got != want {
		t.Errorf("$%04X = %02X want %02X", addr, got, want)
	}
}

func wantMem(t *testing.T, cpu *CPU, dl dumpline) {
	t.Helper()

	mem := []byte{}
	for i := range dl.bytes {
		mem = append(mem, cpu.Bus.Peek8(dl.off+uint16(i)))
	}

	if !bytes.Equal(mem, dl.bytes) {
		t.Errorf("mem mismatch at 0x%04x.\ngot:  % x\nwant: % x", dl.off, mem, dl.bytes)
	}
}

// runAndCheckState executes ninstr instructions then checks the CPU state.
// states is a list of name/value pairs.
func runAndCheckState(t *testing.T, cpu *CPU, ninstr int, states ...any) {
	t.Helper()

	if len(states)%2 != 0 {
		panic("odd number of states")
	}

	checkuint8 := func(name string, got, want uint8) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=$%02X, want $%02X", name, got, want)
		}
	}
	checkuint16 := func(name string, got, want uint16) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=$%04X, want $%04X", name, got, want)
		}
	}

	if testing.Verbose() {
		cpu.SetTraceOutput(tbwriter{t})
		defer cpu.SetTraceOutput(nil)
	}
	for range ninstr {
		cpu.Exec()
	}

	for i := 0; i < len(states); i += 2 {
		s := states[i].(string)
		switch {
		case s == "A":
			checkuint8("A", cpu.A, states[i+1].(uint8))
		case s == "X":
			checkuint8("X", cpu.X, states[i+1].(uint8))
		case s == "Y":
			checkuint8("Y", cpu.Y, states[i+1].(uint8))
		case s == "PC":
			checkuint16("PC", cpu.PC, states[i+1].(uint16))
		case s == "SP":
			checkuint8("SP", cpu.SP, states[i+1].(uint8))
		case s == "P":
			if got, want := cpu.Flags(), states[i+1].(uint8); got != want {
				t.Errorf("got P=$%02X(%s), want $%02X(%s)", got, P(got), want, P(want))
			}
		case len(s) > 1 && s[0] == 'P':
			bit := states[i+1].(uint8)
			for j := 1; j < len(s); j++ {
				switch s[j] {
				case 'n':
					checkuint8("Pn", b2i(cpu.P.N()), bit)
				case 'v':
					checkuint8("Pv", b2i(cpu.P.V()), bit)
				case 'i':
					checkuint8("Pi", b2i(cpu.P.I()), bit)
				case 'z':
					checkuint8("Pz", b2i(cpu.P.Z()), bit)
				case 'c':
					checkuint8("Pc", b2i(cpu.P.C()), bit)
				default:
					panic("unknown P bit: " + string(s[j]))
				}
			}
		case s == "mem":
			for _, line := range loadDump(t, states[i+1].(string)) {
				wantMem(t, cpu, line)
			}

		default:
			panic("unknown state: " + s)
		}
	}

	if t.Failed() {
		t.FailNow()
	}
}

type dumpline struct {
	off   uint16
	bytes []byte
}

// loadDump parses an hex dump, one 'offset: bytes' line per memory range.
func loadDump(tb testing.TB, dump string) []dumpline {
	tb.Helper()

	var lines []dumpline
	scan := bufio.NewScanner(strings.NewReader(dump))
	for scan.Scan() {
		line := scan.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		off, octets, ok := strings.Cut(line, ":")
		if !ok {
			tb.Fatalf("malformed line: %s", line)
		}

		ioff, err := strconv.ParseUint(strings.TrimSpace(off), 16, 16)
		if err != nil {
			tb.Fatalf("malformed offset %s: %s", off, err)
		}
		buf, err := hex.DecodeString(strings.ReplaceAll(octets, " ", ""))
		if err != nil {
			tb.Fatalf("hex decode: %s", err)
		}
		lines = append(lines, dumpline{off: uint16(ioff), bytes: buf})
	}
	if scan.Err() != nil {
		tb.Fatalf("scan error: %s", scan.Err())
	}

	return lines
}

// newTestCPU creates a CPU on a 32KB NROM cartridge, resetting at 0x8000.
// Memory is then loaded with the given dumps.
func newTestCPU(tb testing.TB, dumps ...string) *CPU {
	tb.Helper()

	rom := tests.BuildROM(tests.ROM{PRGBanks: 2, CHRBanks: 1, Reset: 0x8000})
	cart, err := LoadCartridge(bytes.NewReader(rom))
	if err != nil {
		tb.Fatal(err)
	}

	ppu := NewPPU(cart)
	cpu := NewCPU(NewBus(cart, ppu))
	for _, dump := range dumps {
		for _, line := range loadDump(tb, dump) {
			for i, b := range line.bytes {
				cpu.Bus.CPUWrite(line.off+uint16(i), b)
			}
		}
	}
	cpu.Init()
	return cpu
}

// loadCPUWith creates a CPU executing prog at 0x8000.
func loadCPUWith(tb testing.TB, prog string, dumps ...string) *CPU {
	tb.Helper()
	return newTestCPU(tb, append([]string{"8000: " + prog}, dumps...)...)
}

type tbwriter struct {
	testing.TB
}

func (t tbwriter) Write(p []byte) (int, error) {
	t.TB.Helper()
	t.TB.Log(string(bytes.TrimSpace(p)))
	return len(p), nil
}

func TestLoadDump(t *testing.T) {
	tests := []struct {
		dump string
		want []dumpline
	}{
		{
			dump: `01f0: 0f 0e 0d`,
			want: []dumpline{{0x01f0, []byte{0x0f, 0x0e, 0x0d}}},
		},
		{
			dump: `
# comment
01f0: 0f 0e
0210: 0d
`,
			want: []dumpline{
				{0x01f0, []byte{0x0f, 0x0e}},
				{0x0210, []byte{0x0d}},
			},
		},
	}
	for _, tt := range tests {
		got := loadDump(t, tt.dump)
		if len(got) != len(tt.want) {
			t.Fatalf("loadDump() got %d lines, want %d", len(got), len(tt.want))
		}
		for i := range got {
			if got[i].off != tt.want[i].off || !bytes.Equal(got[i].bytes, tt.want[i].bytes) {
				t.Errorf("line %d: got %+v, want %+v", i, got[i], tt.want[i])
			}
		}
	}
}
