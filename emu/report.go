package emu

import (
	"io"

	"github.com/go-faster/jx"

	"yane/emu/debugger"
)

// WriteReport writes the emulator state as an indented JSON object. It must
// not be called while the emulation loop runs.
func (e *Emulator) WriteReport(w io.Writer, romName string) error {
	var enc jx.Encoder
	enc.SetIdent(2)

	cpu, ppu := e.NES.CPU, e.NES.PPU
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("rom", func(enc *jx.Encoder) { enc.Str(romName) })
		enc.Field("frames", func(enc *jx.Encoder) { enc.UInt64(e.frames) })
		enc.Field("cpu", func(enc *jx.Encoder) {
			enc.Obj(func(enc *jx.Encoder) {
				enc.Field("a", func(enc *jx.Encoder) { enc.Int(int(cpu.A)) })
				enc.Field("x", func(enc *jx.Encoder) { enc.Int(int(cpu.X)) })
				enc.Field("y", func(enc *jx.Encoder) { enc.Int(int(cpu.Y)) })
				enc.Field("sp", func(enc *jx.Encoder) { enc.Int(int(cpu.SP)) })
				enc.Field("pc", func(enc *jx.Encoder) { enc.Int(int(cpu.PC)) })
				enc.Field("p", func(enc *jx.Encoder) { enc.Int(int(cpu.Flags())) })
				enc.Field("flags", func(enc *jx.Encoder) { enc.Str(cpu.P.String()) })
				enc.Field("cycles", func(enc *jx.Encoder) { enc.Int64(cpu.Cycles) })
			})
		})
		enc.Field("ppu", func(enc *jx.Encoder) {
			enc.Obj(func(enc *jx.Encoder) {
				enc.Field("scanline", func(enc *jx.Encoder) { enc.Int(ppu.Scanline) })
				enc.Field("cycle", func(enc *jx.Encoder) { enc.Int(ppu.Cycle) })
				enc.Field("frames", func(enc *jx.Encoder) { enc.UInt64(ppu.Frames) })
			})
		})
		if e.Debugger != nil {
			enc.Field("callstack", func(enc *jx.Encoder) { encodeStack(enc, e.Debugger.CallStack()) })
			enc.Field("hits", func(enc *jx.Encoder) {
				enc.Arr(func(enc *jx.Encoder) {
					for _, h := range e.Debugger.Hits() {
						encodeHit(enc, h)
					}
				})
			})
		}
	})

	_, err := w.Write(append(enc.Bytes(), '\n'))
	return err
}

func encodeHit(enc *jx.Encoder, h debugger.Hit) {
	enc.Obj(func(enc *jx.Encoder) {
		enc.Field("reason", func(enc *jx.Encoder) { enc.Str(h.Reason.String()) })
		enc.Field("addr", func(enc *jx.Encoder) { enc.Int(int(h.Addr)) })
		enc.Field("pc", func(enc *jx.Encoder) { enc.Int(int(h.PC)) })
		if h.Reason == debugger.WriteWatch {
			enc.Field("value", func(enc *jx.Encoder) { enc.Int(int(h.Value)) })
		}
		enc.Field("frame", func(enc *jx.Encoder) { enc.UInt64(h.Frame) })
		enc.Field("callstack", func(enc *jx.Encoder) { encodeStack(enc, h.Stack) })
	})
}

func encodeStack(enc *jx.Encoder, frames []debugger.FrameInfo) {
	enc.Arr(func(enc *jx.Encoder) {
		for _, f := range frames {
			enc.Obj(func(enc *jx.Encoder) {
				enc.Field("entry", func(enc *jx.Encoder) { enc.Str(f[0]) })
				enc.Field("at", func(enc *jx.Encoder) { enc.Str(f[1]) })
			})
		}
	})
}
