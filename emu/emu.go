package emu

import (
	"fmt"
	"sync/atomic"
	"time"

	"yane/emu/debugger"
	"yane/emu/log"
	"yane/hw"
	"yane/ines"
)

type Emulator struct {
	NES *NES

	// Debugger is only set when breakpoints or watchpoints are configured.
	Debugger *debugger.Debugger

	cfg    Config
	frames uint64

	// These are accessed concurrently by the emulator loop and the rpc
	// server.
	quit   atomic.Bool
	paused atomic.Bool
	reset  atomic.Bool
	status atomic.Pointer[Status]
}

// Status is a snapshot of the emulator state, taken at the end of each
// frame.
type Status struct {
	Frames   uint64
	Regs     hw.Registers
	Cycles   int64
	Scanline int
	Cycle    int
	Paused   bool
	Stopped  bool
}

// Launch powers up the hardware and sets up tracing and debugging as
// configured. It doesn't start the emulation loop, call Run() for that.
func Launch(rom *ines.Rom, cfg Config) (*Emulator, error) {
	nes, err := PowerUp(rom)
	if err != nil {
		return nil, fmt.Errorf("power up failed: %w", err)
	}

	e := &Emulator{
		NES: nes,
		cfg: cfg,
	}

	// CPU execution trace setup.
	if cfg.TraceOut != nil {
		nes.CPU.SetTraceOutput(cfg.TraceOut)
	}

	if err := e.setupDebugger(cfg.Debug); err != nil {
		return nil, err
	}

	log.AddContext(nes.CPU)
	e.publish()
	return e, nil
}

func (e *Emulator) setupDebugger(cfg DebugConfig) error {
	if len(cfg.Breakpoints)+len(cfg.ReadWatch)+len(cfg.WriteWatch) == 0 {
		return nil
	}

	dbg := debugger.New(e.NES.CPU)
	for _, list := range []struct {
		addrs []string
		add   func(uint16)
	}{
		{cfg.Breakpoints, dbg.AddBreakpoint},
		{cfg.ReadWatch, dbg.AddReadWatch},
		{cfg.WriteWatch, dbg.AddWriteWatch},
	} {
		for _, s := range list.addrs {
			addr, err := debugger.ParseAddr(s)
			if err != nil {
				return err
			}
			list.add(addr)
		}
	}

	dbg.OnBreak = func(h debugger.Hit) {
		log.ModEmu.InfoZ("stopping emulation").Stringer("hit", h).End()
		e.Stop()
	}
	e.Debugger = dbg
	return nil
}

// Run runs the emulation loop until the configured number of frames have
// been emulated, or Stop is called.
func (e *Emulator) Run() {
	defer log.RemoveContext(e.NES.CPU)

	for !e.shouldStop() {
		e.handleReset()
		if e.isPaused() {
			// Don't burn cpu while paused.
			time.Sleep(10 * time.Millisecond)
			e.publish()
			continue
		}
		e.RunOneFrame()
	}

	e.quit.Store(true)
	e.publish()
	log.ModEmu.InfoZ("Emulation loop exited").Uint("frames", e.frames).End()
}

// RunOneFrame emulates one frame. It returns early if the emulation gets
// stopped in the middle of the frame.
func (e *Emulator) RunOneFrame() {
	if !e.NES.runFrame(e.quit.Load) {
		return
	}
	e.frames++
	if e.Debugger != nil {
		e.Debugger.FrameEnd()
	}
	e.publish()
}

// Frames returns the number of emulated frames.
func (e *Emulator) Frames() uint64 { return e.frames }

// Status returns the emulator state at the end of the last frame.
func (e *Emulator) Status() Status { return *e.status.Load() }

func (e *Emulator) publish() {
	e.status.Store(&Status{
		Frames:   e.frames,
		Regs:     e.NES.CPU.Registers,
		Cycles:   e.NES.CPU.Cycles,
		Scanline: e.NES.PPU.Scanline,
		Cycle:    e.NES.PPU.Cycle,
		Paused:   e.isPaused(),
		Stopped:  e.quit.Load(),
	})
}

// SetPause, Stop and Reset allows to control the emulator loop in a
// concurrent-safe way.

func (e *Emulator) SetPause(pause bool) { e.paused.CompareAndSwap(!pause, pause) }
func (e *Emulator) Reset()              { e.reset.Store(true) }
func (e *Emulator) Stop()               { e.quit.Store(true) }

func (e *Emulator) isPaused() bool {
	return e.paused.Load()
}

func (e *Emulator) shouldStop() bool {
	if e.quit.Load() {
		return true
	}
	n := e.cfg.Emulation.Frames
	return n > 0 && e.frames >= uint64(n)
}

func (e *Emulator) handleReset() {
	if e.reset.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("Performing reset").End()
		e.NES.Reset()
		if e.Debugger != nil {
			e.Debugger.Reset()
		}
	}
}
