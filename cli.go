package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"famicore/emu/log"
)

type (
	CLI struct {
		Run      Run      `cmd:"" help:"Run a ROM headless for a number of frames."`
		RomInfos RomInfos `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Version  Version  `cmd:"" help:"Show famicore version."`

		Log       logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		Verbosity int        `help:"Log verbosity (0-4)." default:"1"`
	}

	Run struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"${rompath_help}" required:"true" type:"existingfile"`

		Frames int      `name:"frames" help:"Number of frames to emulate." default:"60"`
		Trace  *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
	}

	RomInfos struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
		JSON    bool   `name:"json" help:"Print infos as JSON."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"rompath_help": "Emulate the ROM without video or audio output.",
	"log_help":     "Enable debug logging for specified modules.",
}

func parseArgs(args []string) (CLI, *kong.Context) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("famicore"),
		kong.Description("NES emulation core."),
		kong.UsageOnError(),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)
	return cli, ctx
}

// logModMask parses a comma-separated module list into a debug mask.
type logModMask log.ModuleMask

func (m *logModMask) UnmarshalText(text []byte) error {
	for _, name := range strings.Split(string(text), ",") {
		if name == "all" {
			*m = logModMask(log.ModuleMaskAll)
			continue
		}
		mod, found := log.ModuleByName(name)
		if !found {
			return fmt.Errorf("unknown log module %q", name)
		}
		*m |= logModMask(mod.Mask())
	}
	return nil
}

// outfile is a flag that accepts a file path, "stdout" or "stderr".
type outfile struct {
	w    io.WriteCloser
	name string
}

func (f *outfile) UnmarshalText(text []byte) error {
	f.name = string(text)
	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		w, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = w
	}
	return nil
}

func (f *outfile) Close() error {
	if f.w == os.Stdout || f.w == os.Stderr || f.w == nil {
		return nil
	}
	return f.w.Close()
}
