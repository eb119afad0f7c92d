package main

import (
	"fmt"
	"os"

	"famicore/emu/log"
)

const version = "0.1.0"

func main() {
	cli, ctx := parseArgs(os.Args[1:])

	log.SetVerbosity(cli.Verbosity)
	if cli.Log != 0 {
		log.EnableDebugModules(log.ModuleMask(cli.Log))
	}

	var err error
	switch ctx.Command() {
	case "run </path/to/rom>":
		err = runRom(cli.Run, loadConfigOrDefault())
	case "rom-infos </path/to/rom>":
		err = romInfos(cli.RomInfos)
	case "version":
		fmt.Println("famicore", version)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "famicore:", err)
		os.Exit(1)
	}
}
