package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"

	"yane/emu"
	"yane/emu/rpc"
)

// emuMain runs the emulator with the given rom.
func emuMain(args Run, cfg emu.Config) {
	rom, path := openRom(args.RomPath, cfg)

	if args.Frames >= 0 {
		cfg.Emulation.Frames = args.Frames
	}
	cfg.Debug.Breakpoints = append(cfg.Debug.Breakpoints, args.Break...)
	cfg.Debug.ReadWatch = append(cfg.Debug.ReadWatch, args.WatchRead...)
	cfg.Debug.WriteWatch = append(cfg.Debug.WriteWatch, args.WatchWrite...)

	trace := args.Trace
	if trace == nil && cfg.Debug.TraceFile != "" {
		trace = &outfile{}
		checkf(trace.open(cfg.Debug.TraceFile), "failed to create trace file")
	}
	if trace != nil {
		cfg.TraceOut = trace
		defer trace.Close()
	}

	emulator, err := emu.Launch(rom, cfg)
	checkf(err, "failed to start emulator")

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	if args.RPC != "" {
		server, err := rpc.NewServer(args.RPC, emulator)
		checkf(err, "failed to start rpc server")
		defer server.Close()
	}

	emulator.Run()

	if emulator.Debugger != nil {
		for _, h := range emulator.Debugger.Hits() {
			fmt.Fprintln(os.Stderr, h)
		}
	}

	if args.Report != nil {
		defer args.Report.Close()
		checkf(emulator.WriteReport(args.Report, filepath.Base(path)), "failed to write report")
	}
}

// patternsMain runs the rom for some frames then exports the pattern tables.
func patternsMain(args Patterns, cfg emu.Config) {
	rom, _ := openRom(args.RomPath, cfg)

	cfg.Emulation.Frames = args.Frames
	cfg.Debug = emu.DebugConfig{}

	emulator, err := emu.Launch(rom, cfg)
	checkf(err, "failed to start emulator")
	if args.Frames > 0 {
		emulator.Run()
	}

	paths, err := emu.ExportPatternTables(emulator.NES.PPU, args.Out)
	checkf(err, "failed to export pattern tables")
	for _, p := range paths {
		fmt.Println(p)
	}
}

// ctlMain sends a command to a running emulator.
func ctlMain(args Ctl) {
	client, err := rpc.NewClient(args.Addr)
	checkf(err, "failed to connect to emulator")
	defer client.Close()

	switch args.Action {
	case "pause":
		err = client.SetPause(true)
	case "resume":
		err = client.SetPause(false)
	case "reset":
		err = client.Reset()
	case "stop":
		err = client.Stop()
	case "status":
		var st emu.Status
		if st, err = client.Status(); err == nil {
			fmt.Printf("frames=%d pc=$%04X a=$%02X x=$%02X y=$%02X sp=$%02X p=%s cycles=%d ppu=%d,%d paused=%t stopped=%t\n",
				st.Frames, st.Regs.PC, st.Regs.A, st.Regs.X, st.Regs.Y, st.Regs.SP, st.Regs.P,
				st.Cycles, st.Scanline, st.Cycle, st.Paused, st.Stopped)
		}
	}
	checkf(err, "%s failed", args.Action)
}
