// Package debugger implements a headless CPU debugger. It keeps track of the
// call stack and records the CPU state when breakpoints or watchpoints
// trigger.
package debugger

import (
	"fmt"

	"yane/emu/log"
	"yane/hw"
)

var modDbg = log.NewModule("debugger")

type Reason uint8

const (
	Breakpoint Reason = iota // instruction about to be executed
	ReadWatch                // CPU bus read
	WriteWatch               // CPU bus write
)

func (r Reason) String() string {
	switch r {
	case Breakpoint:
		return "breakpoint"
	case ReadWatch:
		return "read watchpoint"
	case WriteWatch:
		return "write watchpoint"
	}
	return fmt.Sprintf("Reason(%d)", r)
}

// A Hit is the CPU state at the time a breakpoint or a watchpoint triggered.
type Hit struct {
	Reason Reason
	Addr   uint16
	PC     uint16 // address of the instruction being executed
	Value  uint8  // value written, for write watchpoints
	Frame  uint64 // number of frames completed before the hit
	Regs   hw.Registers
	Stack  []FrameInfo
}

func (h Hit) String() string {
	s := fmt.Sprintf("%s at $%04X (pc=$%04X frame=%d)", h.Reason, h.Addr, h.PC, h.Frame)
	if h.Reason == WriteWatch {
		s += fmt.Sprintf(" val=$%02X", h.Value)
	}
	return s
}

// A Debugger monitors a CPU. In order to be able to report a call stack at
// any moment, it keeps track of the executed JSR, RTS and RTI and of the
// interrupts, even without any breakpoint.
type Debugger struct {
	// OnBreak, if set, is called for each hit.
	OnBreak func(Hit)

	cpu *hw.CPU

	prevPC     uint16
	prevOpcode uint8

	cstack callStack
	frames uint64

	breakpoints map[uint16]bool
	reads       map[uint16]bool
	writes      map[uint16]bool

	hits []Hit
}

// New creates a debugger and installs it on cpu.
func New(cpu *hw.CPU) *Debugger {
	d := &Debugger{
		cpu:         cpu,
		prevOpcode:  0xFF,
		breakpoints: make(map[uint16]bool),
		reads:       make(map[uint16]bool),
		writes:      make(map[uint16]bool),
	}
	cpu.SetDebugger(d)
	return d
}

func (d *Debugger) AddBreakpoint(addr uint16) { d.breakpoints[addr] = true }
func (d *Debugger) AddReadWatch(addr uint16)  { d.reads[addr] = true }
func (d *Debugger) AddWriteWatch(addr uint16) { d.writes[addr] = true }

// Hits returns the recorded hits, in order.
func (d *Debugger) Hits() []Hit { return d.hits }

// CallStack returns the current call stack, innermost frame first.
func (d *Debugger) CallStack() []FrameInfo {
	return d.cstack.build(d.cpu.PC)
}

// Reset forgets the call stack, to be called after a CPU reset.
func (d *Debugger) Reset() {
	d.cstack.reset()
	d.prevOpcode = 0xFF
}

// Trace must be called before each opcode is executed.
func (d *Debugger) Trace(pc uint16) {
	d.updateStack(pc, sffNone)
	d.prevPC = pc
	d.prevOpcode = d.cpu.Bus.Peek8(pc)

	if d.breakpoints[pc] {
		d.hit(Breakpoint, pc, 0)
	}
}

func (d *Debugger) updateStack(dstPc uint16, sff stackFrameFlag) {
	switch d.prevOpcode {
	case 0x20: // JSR
		d.cstack.push(d.prevPC, dstPc, d.prevPC+3, sff)
	case 0x40, 0x60: // RTS RTI
		d.cstack.pop()
	}
}

func (d *Debugger) Interrupt(prevpc, curpc uint16, isNMI bool) {
	flag := sffIRQ
	if isNMI {
		flag = sffNMI
	}
	d.updateStack(prevpc, flag)
	d.prevOpcode = 0xFF

	d.cstack.push(d.prevPC, curpc, prevpc, flag)
}

func (d *Debugger) WatchRead(addr uint16) {
	if d.reads[addr] {
		d.hit(ReadWatch, addr, 0)
	}
}

func (d *Debugger) WatchWrite(addr uint16, val uint8) {
	if d.writes[addr] {
		d.hit(WriteWatch, addr, val)
	}
}

func (d *Debugger) FrameEnd() {
	d.frames++
}

func (d *Debugger) hit(reason Reason, addr uint16, val uint8) {
	h := Hit{
		Reason: reason,
		Addr:   addr,
		PC:     d.prevPC,
		Value:  val,
		Frame:  d.frames,
		Regs:   d.cpu.Registers,
		Stack:  d.CallStack(),
	}
	d.hits = append(d.hits, h)

	modDbg.InfoZ(reason.String()).
		Hex16("addr", addr).
		Uint("frame", d.frames).
		End()

	if d.OnBreak != nil {
		d.OnBreak(h)
	}
}
