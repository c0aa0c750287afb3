package hw

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"yane/tests"
)

// claimAll maps the whole address space onto PRG and CHR.
type claimAll struct{}

func (claimAll) CPUMapRead(addr uint16) (uint32, bool)  { return uint32(addr), true }
func (claimAll) CPUMapWrite(addr uint16) (uint32, bool) { return uint32(addr), true }
func (claimAll) PPUMapRead(addr uint16) (uint32, bool)  { return uint32(addr), true }
func (claimAll) PPUMapWrite(addr uint16) (uint32, bool) { return uint32(addr), true }

func newTestCart(tb testing.TB, chrBanks uint8) *Cartridge {
	tb.Helper()

	rom := tests.BuildROM(tests.ROM{PRGBanks: 1, CHRBanks: chrBanks, PRG: []byte{0xA9, 0x42}})
	cart, err := LoadCartridge(bytes.NewReader(rom))
	if err != nil {
		tb.Fatal(err)
	}
	return cart
}

func TestBusDevices(t *testing.T) {
	cart := newTestCart(t, 1)
	bus := NewBus(cart, NewPPU(cart))
	if diff := cmp.Diff([]string{"cart", "ram", "ppu"}, bus.Devices()); diff != "" {
		t.Errorf("Devices() mismatch (-want +got):\n%s", diff)
	}

	bus = NewBus(nil, nil)
	if diff := cmp.Diff([]string{"ram"}, bus.Devices()); diff != "" {
		t.Errorf("Devices() mismatch (-want +got):\n%s", diff)
	}
}

func TestBusRAMMirroring(t *testing.T) {
	bus := NewBus(nil, nil)

	if !bus.CPUWrite(0x0001, 0x55) {
		t.Fatalf("RAM write not claimed")
	}
	for _, addr := range []uint16{0x0001, 0x0801, 0x1001, 0x1801} {
		val, ok := bus.CPURead(addr)
		if !ok || val != 0x55 {
			t.Errorf("CPURead(%04X) = %02X, %t, want 55, true", addr, val, ok)
		}
	}

	bus.CPUWrite(0x1FFF, 0xAA)
	if got := bus.RAM.Data[0x7FF]; got != 0xAA {
		t.Errorf("RAM[7FF] = %02X, want AA", got)
	}
}

func TestBusUnmapped(t *testing.T) {
	bus := NewBus(nil, nil)

	for _, addr := range []uint16{0x2002, 0x4016, 0x6000, 0x8000, 0xFFFF} {
		val, ok := bus.CPURead(addr)
		if ok || val != 0 {
			t.Errorf("CPURead(%04X) = %02X, %t, want 0, false", addr, val, ok)
		}
		if bus.CPUWrite(addr, 0x12) {
			t.Errorf("CPUWrite(%04X) claimed", addr)
		}
	}
}

func TestBusPPUWindow(t *testing.T) {
	cart := newTestCart(t, 1)
	bus := NewBus(cart, NewPPU(cart))

	for _, addr := range []uint16{0x2002, 0x200A, 0x3FFA} {
		val, ok := bus.CPURead(addr)
		if !ok || val != 0x80 {
			t.Errorf("CPURead(%04X) = %02X, %t, want 80, true", addr, val, ok)
		}
	}

	// unimplemented registers are still claimed.
	for range 3 {
		if val, ok := bus.CPURead(0x2007); !ok || val != 0 {
			t.Errorf("CPURead(2007) = %02X, %t, want 0, true", val, ok)
		}
		if !bus.CPUWrite(0x2000, 0x80) {
			t.Errorf("CPUWrite(2000) not claimed")
		}
	}

	if got := bus.Peek8(0x2002); got != 0 {
		t.Errorf("Peek8(2002) = %02X, want 0", got)
	}
}

func TestBusCartridgeFirst(t *testing.T) {
	cart := &Cartridge{
		PRG:    make([]byte, 0x10000),
		CHR:    make([]byte, 0x10000),
		Mapper: claimAll{},
	}
	bus := NewBus(cart, NewPPU(cart))

	bus.CPUWrite(0x0000, 0x12)
	if cart.PRG[0] != 0x12 {
		t.Errorf("cart PRG[0] = %02X, want 12", cart.PRG[0])
	}
	if bus.RAM.Data[0] != 0 {
		t.Errorf("RAM[0] = %02X, want 0", bus.RAM.Data[0])
	}

	cart.PRG[0x2002] = 0x34
	if val, _ := bus.CPURead(0x2002); val != 0x34 {
		t.Errorf("CPURead(2002) = %02X, want 34", val)
	}
	if got := bus.Peek8(0x2002); got != 0x34 {
		t.Errorf("Peek8(2002) = %02X, want 34", got)
	}
}

func TestBusCartridge(t *testing.T) {
	cart := newTestCart(t, 1)
	bus := NewBus(cart, nil)

	// 16KB PRG is mirrored.
	for _, addr := range []uint16{0x8000, 0xC000} {
		if val, ok := bus.CPURead(addr); !ok || val != 0xA9 {
			t.Errorf("CPURead(%04X) = %02X, %t, want A9, true", addr, val, ok)
		}
	}
	if got := bus.Peek8(0xC001); got != 0x42 {
		t.Errorf("Peek8(C001) = %02X, want 42", got)
	}
}

func TestBusPPUSide(t *testing.T) {
	t.Run("CHR ROM", func(t *testing.T) {
		cart := newTestCart(t, 1)
		cart.CHR[0x10] = 0x77
		bus := NewBus(cart, nil)

		if val, ok := bus.PPURead(0x0010); !ok || val != 0x77 {
			t.Errorf("PPURead(0010) = %02X, %t, want 77, true", val, ok)
		}
		if bus.PPUWrite(0x0010, 0x11) {
			t.Errorf("PPUWrite to CHR ROM claimed")
		}
		if _, ok := bus.PPURead(0x2000); ok {
			t.Errorf("PPURead(2000) claimed")
		}
	})
	t.Run("CHR RAM", func(t *testing.T) {
		cart := newTestCart(t, 0)
		bus := NewBus(cart, nil)

		if !bus.PPUWrite(0x1FFF, 0x11) {
			t.Fatalf("PPUWrite to CHR RAM not claimed")
		}
		if val, ok := bus.PPURead(0x1FFF); !ok || val != 0x11 {
			t.Errorf("PPURead(1FFF) = %02X, %t, want 11, true", val, ok)
		}
		if bus.PPUWrite(0x2000, 0x11) {
			t.Errorf("PPUWrite(2000) claimed")
		}
	})
}

type access struct {
	write bool
	addr  uint16
	val   uint8
}

type recordDebugger struct {
	nopDebugger
	accesses []access
	traces   []uint16
	irqs     [][2]uint16
}

func (d *recordDebugger) Trace(pc uint16) { d.traces = append(d.traces, pc) }

func (d *recordDebugger) Interrupt(prevpc, curpc uint16, isNMI bool) {
	d.irqs = append(d.irqs, [2]uint16{prevpc, curpc})
}

func (d *recordDebugger) WatchRead(addr uint16) {
	d.accesses = append(d.accesses, access{addr: addr})
}

func (d *recordDebugger) WatchWrite(addr uint16, val uint8) {
	d.accesses = append(d.accesses, access{write: true, addr: addr, val: val})
}

func TestDebugger(t *testing.T) {
	// LDA $10; STA $0200
	cpu := loadCPUWith(t, `a5 10 8d 00 02`, `0010: 99`, "fffa: 00 90")

	dbg := &recordDebugger{}
	cpu.SetDebugger(dbg)
	cpu.Exec()
	cpu.Exec()
	cpu.NMI()

	want := []access{
		// LDA $10
		{addr: 0x8000},
		{addr: 0x8001},
		{addr: 0x0010},
		// STA $0200
		{addr: 0x8002},
		{addr: 0x8003},
		{addr: 0x8004},
		{write: true, addr: 0x0200, val: 0x99},
		// NMI
		{write: true, addr: 0x01FC, val: 0x80},
		{write: true, addr: 0x01FB, val: 0x05},
		{write: true, addr: 0x01FA, val: 0x21}, // I and N
		{addr: 0xFFFA},
		{addr: 0xFFFB},
	}
	if diff := cmp.Diff(want, dbg.accesses, cmp.AllowUnexported(access{})); diff != "" {
		t.Errorf("bus accesses mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint16{0x8000, 0x8002}, dbg.traces); diff != "" {
		t.Errorf("traces mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][2]uint16{{0x8005, 0x9000}}, dbg.irqs); diff != "" {
		t.Errorf("interrupts mismatch (-want +got):\n%s", diff)
	}

	cpu.SetDebugger(nil)
	cpu.Exec()
	if len(dbg.traces) != 2 {
		t.Errorf("debugger still called after removal")
	}
}
