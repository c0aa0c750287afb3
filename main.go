package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"yane/emu"
	"yane/emu/log"
	"yane/ines"
)

func main() {
	cli := parseArgs(os.Args[1:])
	cfg := emu.LoadConfigOrDefault(cli.Config)

	if cli.Log.set {
		cli.Log.apply()
	} else if len(cfg.Debug.LogModules) > 0 {
		mask, nolog, err := parseLogModules(cfg.Debug.LogModules)
		checkf(err, "invalid log_modules in config")
		logModMask{disable: nolog, mask: mask}.apply()
	}

	switch cli.mode {
	case runMode:
		emuMain(cli.Run, cfg)
	case romInfosMode:
		rom, err := ines.Open(cli.RomInfos.RomPath)
		checkf(err, "failed to open rom")
		rom.PrintInfos(os.Stdout)
	case patternsMode:
		patternsMain(cli.Patterns, cfg)
	case ctlMode:
		ctlMain(cli.Ctl)
	case versionMode:
		fmt.Println("yane", version())
	}
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}

// openRom opens the rom at path, or the default rom from the config if path
// is empty.
func openRom(path string, cfg emu.Config) (*ines.Rom, string) {
	if path == "" {
		path = cfg.General.DefaultROM
		log.ModEmu.InfoZ("using default rom").String("path", path).End()
	}
	rom, err := ines.Open(path)
	checkf(err, "failed to open rom")
	return rom, path
}
