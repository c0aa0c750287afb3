package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"yane/emu/log"
)

type mode byte

const (
	runMode      mode = iota // Run a ROM
	romInfosMode             // Show ROM infos
	patternsMode             // Export pattern tables
	ctlMode                  // Control a running emulator
	versionMode              // Show yane version
)

type (
	CLI struct {
		Run      Run      `cmd:"" help:"Run ROM in emulator."`
		RomInfos RomInfos `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Patterns Patterns `cmd:"" help:"Export pattern tables as PNG images."`
		Ctl      Ctl      `cmd:"" help:"Control an emulator started with --rpc."`
		Version  Version  `cmd:"" help:"Show yane version."`

		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		Config string     `help:"${config_help}" type:"path" placeholder:"FILE"`

		mode mode
	}

	Run struct {
		RomPath string `arg:"" optional:"" name:"/path/to/rom" help:"${rompath_help}" type:"existingfile"`

		Frames     int      `name:"frames" help:"${frames_help}" default:"-1"`
		Trace      *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		Report     *outfile `name:"report" help:"Write a JSON report of the final state." placeholder:"FILE|stdout|stderr"`
		Break      []string `name:"break" help:"Stop emulation before executing the instruction at ADDR." placeholder:"ADDR"`
		WatchRead  []string `name:"watch-read" help:"Stop emulation when the CPU reads ADDR." placeholder:"ADDR"`
		WatchWrite []string `name:"watch-write" help:"Stop emulation when the CPU writes ADDR." placeholder:"ADDR"`
		RPC        string   `name:"rpc" help:"Serve emulator controls over RPC." placeholder:"HOST:PORT"`
		CPUProfile string   `name:"cpuprofile" help:"${cpuprofile_help}" type:"path"`
	}

	RomInfos struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
	}

	Patterns struct {
		RomPath string `arg:"" optional:"" name:"/path/to/rom" help:"${rompath_help}" type:"existingfile"`

		Out    string `name:"out" help:"Output directory." default:"patterns" type:"path"`
		Frames int    `name:"frames" help:"Number of frames to run before the export." default:"0"`
	}

	Ctl struct {
		Action string `arg:"" enum:"pause,resume,reset,stop,status" help:"One of pause, resume, reset, stop or status."`
		Addr   string `name:"addr" help:"Address of the emulator RPC server." required:"" placeholder:"HOST:PORT"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"rompath_help":    "ROM to run, defaults to default_rom in the config file.",
	"frames_help":     "Number of frames to run, 0 runs until stopped. Defaults to the config file value.",
	"cpuprofile_help": "Write CPU profile to file.",
	"log_help":        "Enable logging for specified modules.",
	"config_help":     "Configuration file. Defaults to yane/config.toml in the user config directory.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("yane"),
		kong.Description("Yet Another NES Emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch cmd := ctx.Command(); {
	case strings.HasPrefix(cmd, "rom-infos"):
		cfg.mode = romInfosMode
	case strings.HasPrefix(cmd, "patterns"):
		cfg.mode = patternsMode
	case strings.HasPrefix(cmd, "ctl"):
		cfg.mode = ctlMode
	case cmd == "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.

Addresses:
  --break, --watch-read and --watch-write accept hexadecimal addresses,
  optionally prefixed by '$' or '0x'.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

// logModMask is the set of modules enabled with --log.
type logModMask struct {
	set     bool
	disable bool
	mask    log.ModuleMask
}

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	mask, disable, err := parseLogModules(strings.Split(tok.Value.(string), ","))
	if err != nil {
		return err
	}
	*lm = logModMask{set: true, disable: disable, mask: mask}
	return nil
}

func (lm logModMask) apply() {
	if lm.disable {
		log.Disable()
		return
	}
	log.EnableDebugModules(lm.mask)
}

// parseLogModules parses a list of module names, or the special values 'all'
// and 'no'.
func parseLogModules(names []string) (mask log.ModuleMask, nolog bool, err error) {
	allLogs := false
	for _, v := range names {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return 0, false, fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return 0, false, fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return 0, false, fmt.Errorf("cannot combine 'no' with other log modules")
		}
		return 0, true, nil
	}

	if allLogs {
		mask = log.ModuleMaskAll
	}
	return mask, false, nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	return f.open(tok.Value.(string))
}

func (f *outfile) open(name string) error {
	f.name = name
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
