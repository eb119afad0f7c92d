package main

import (
	"fmt"
	"os"

	"famicore/hw"
	"famicore/ines"
)

// runRom emulates the given ROM headless and prints a short summary.
// Useful to exercise a cartridge, produce execution traces, or benchmark
// the core without a front-end.
func runRom(cmd Run, cfg Config) error {
	rom, err := ines.Open(cmd.RomPath)
	if err != nil {
		return err
	}

	nes, err := hw.NewFromRom(rom)
	if err != nil {
		return err
	}
	nes.SetSampleRate(cfg.Audio.SampleRate)

	if cfg.General.Palette != "" {
		pal, err := os.ReadFile(cfg.General.Palette)
		if err != nil {
			return fmt.Errorf("palette file: %w", err)
		}
		if err := nes.LoadPalette(pal); err != nil {
			return err
		}
	}

	if cmd.Trace != nil {
		nes.SetTraceOutput(cmd.Trace.w)
		defer cmd.Trace.Close()
	}

	samples := make([]int16, 8192)
	nsamples := 0
	for i := 0; i < cmd.Frames; i++ {
		nes.StepFrame()
		nsamples += nes.TakeSamples(samples)
	}

	fmt.Printf("emulated %d frames, %d audio samples at %dHz\n",
		cmd.Frames, nsamples, cfg.Audio.SampleRate)
	return nil
}

func romInfos(cmd RomInfos) error {
	rom, err := ines.Open(cmd.RomPath)
	if err != nil {
		return err
	}
	if cmd.JSON {
		os.Stdout.Write(rom.JSONInfos())
		fmt.Println()
		return nil
	}
	rom.PrintInfos(os.Stdout)
	return nil
}
