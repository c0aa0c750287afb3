package hw

import (
	"io"

	"yane/emu/log"
	"yane/hw/hwio"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

const stackBase = 0x0100

// interrupt sequence duration, in cycles.
const interruptCycles = 7

type CPU struct {
	Registers

	Bus *Bus

	Cycles    int64 // total elapsed cycles
	remaining uint8 // cycles left before the next instruction

	// Non-nil when execution tracing is enabled.
	tracer *tracer
	dbg    Debugger
}

// NewCPU creates a new CPU at power-up state. Init must be called before the
// first instruction is executed.
func NewCPU(bus *Bus) *CPU {
	cpu := &CPU{
		Bus: bus,
		dbg: nopDebugger{},
	}
	cpu.reset()
	return cpu
}

// Init loads the program counter from the reset vector.
func (c *CPU) Init() {
	c.PC = c.read16(ResetVector)
	log.ModCPU.DebugZ("reset").Hex16("vector", c.PC).End()
}

// Clock runs one CPU cycle. A new instruction is executed once the cycles of
// the previous one have elapsed.
func (c *CPU) Clock() {
	if c.remaining == 0 {
		c.Exec()
	}
	c.remaining--
}

// RemainingCycles returns the number of cycles left before the next
// instruction gets executed.
func (c *CPU) RemainingCycles() int {
	return int(c.remaining)
}

// Exec executes one full instruction.
func (c *CPU) Exec() {
	pc := c.PC
	c.traceOp()

	opcode := c.fetch8()
	op := &ops[opcode]
	if op.exec == nil {
		log.ModCPU.WarnZ("unknown opcode").
			Hex8("opcode", opcode).
			Hex16("addr", pc).
			End()
		c.spend(1)
		return
	}

	addr := c.operand(op.mode)
	op.exec(c, addr)
	c.spend(op.cycles)
}

func (c *CPU) spend(ncycles uint8) {
	c.remaining += ncycles
	c.Cycles += int64(ncycles)
}

func (c *CPU) read8(addr uint16) uint8 {
	val, _ := c.Bus.CPURead(addr)
	return val
}

func (c *CPU) write8(addr uint16, val uint8) {
	c.Bus.CPUWrite(addr, val)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.read8(addr)
	hi := c.read8(addr + 1)
	return hwio.Word(lo, hi)
}

/* stack operations */

// push8 decrements SP then writes at the top of the stack.
func (c *CPU) push8(val uint8) {
	c.SP--
	c.write8(stackBase+uint16(c.SP), val)
}

func (c *CPU) push16(val uint16) {
	c.push8(hwio.Hi(val))
	c.push8(hwio.Lo(val))
}

// pull8 reads the top of the stack, clears it, then increments SP.
func (c *CPU) pull8() uint8 {
	top := stackBase + uint16(c.SP)
	val := c.read8(top)
	c.write8(top, 0)
	c.SP++
	return val
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return hwio.Word(lo, hi)
}

/* interrupt handling */

// IRQ triggers a maskable interrupt, ignored if the interrupt disable flag is
// set. It reports whether the interrupt has been taken.
func (c *CPU) IRQ() bool {
	if c.P.I() {
		return false
	}
	c.interrupt(IRQVector, false)
	c.spend(interruptCycles)
	return true
}

// NMI triggers a non-maskable interrupt.
func (c *CPU) NMI() {
	c.interrupt(NMIVector, true)
	c.spend(interruptCycles)
}

func (c *CPU) interrupt(vector uint16, isNMI bool) {
	prevpc := c.PC
	c.push16(c.PC)
	c.push8(c.Flags())
	if isNMI {
		c.P |= IntDisable
	}
	c.PC = c.read16(vector)
	c.dbg.Interrupt(prevpc, c.PC, isNMI)
}

/* tracing / debugging */

// SetTraceOutput enables the execution trace, written to w. A nil writer
// disables it.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, cpu: c}
}

// SetDebugger installs dbg on the CPU and its bus, nil removes it.
func (c *CPU) SetDebugger(dbg Debugger) {
	if dbg == nil {
		dbg = nopDebugger{}
	}
	c.dbg = dbg
	c.Bus.SetDebugger(dbg)
}

func (c *CPU) traceOp() {
	if c.tracer != nil {
		c.tracer.write()
	}
	c.dbg.Trace(c.PC)
}

// AddLogContext adds the program counter to log entries.
func (c *CPU) AddLogContext(e *log.EntryZ) {
	e.Hex16("pc", c.PC)
}
