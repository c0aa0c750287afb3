package hw

// A Debugger monitors the CPU and its bus.
type Debugger interface {
	// Trace is called before each instruction is executed.
	Trace(pc uint16)

	// Interrupt is called when an interrupt is taken. prevpc is the address
	// of the instruction that was about to be executed, curpc is the address
	// of the interrupt handler.
	Interrupt(prevpc, curpc uint16, isNMI bool)

	// WatchRead/WatchWrite are called before each CPU bus access.
	WatchRead(addr uint16)
	WatchWrite(addr uint16, val uint8)

	// FrameEnd signals the end of the current frame.
	FrameEnd()
}

type nopDebugger struct{}

func (nopDebugger) Trace(pc uint16)                            {}
func (nopDebugger) Interrupt(prevpc, curpc uint16, isNMI bool) {}
func (nopDebugger) WatchRead(addr uint16)                      {}
func (nopDebugger) WatchWrite(addr uint16, val uint8)          {}
func (nopDebugger) FrameEnd()                                  {}
