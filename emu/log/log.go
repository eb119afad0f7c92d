// Package log is a thin layer over logrus that adds per-module log
// filtering. Modules are cheap constants; logging through a disabled
// module compiles down to a nil check, so hot paths (CPU, PPU ticks) can
// keep their log statements.
package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

type ModuleMask uint64
type Module uint

const ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF

const (
	ModEmu Module = iota + 1
	ModCPU
	ModPPU
	ModSound
	ModMapper
	ModDMA
	ModInput

	endStandardMods
)

var modNames = []string{
	"<error>", "emu", "cpu", "ppu", "sound", "mapper", "dma", "input",
}

var modDebugMask ModuleMask

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

func (mod Module) Enabled(level Level) bool {
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if mod.Enabled(lvl) {
		return &EntryZ{mod: mod, lvl: lvl, msg: msg}
	}
	return nil
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }
func (mod Module) FatalZ(msg string) *EntryZ { return mod.logz(FatalLevel, msg) }

// printf-like family, for the rare non hot-path message.

func (mod Module) Infof(format string, args ...any) {
	if mod.Enabled(InfoLevel) {
		entry(mod).Infof(format, args...)
	}
}

func (mod Module) Warnf(format string, args ...any) {
	if mod.Enabled(WarnLevel) {
		entry(mod).Warnf(format, args...)
	}
}

func (mod Module) Errorf(format string, args ...any) {
	if mod.Enabled(ErrorLevel) {
		entry(mod).Errorf(format, args...)
	}
}

func (mod Module) Fatalf(format string, args ...any) {
	entry(mod).Fatalf(format, args...)
}

func entry(mod Module) *logrus.Entry {
	return logrus.StandardLogger().WithField("_mod", modNames[mod])
}

// SetVerbosity maps a 0-4 verbosity knob to the underlying logrus level
// (0 silences everything below error, 4 enables debug output).
func SetVerbosity(v int) {
	levels := []logrus.Level{
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
		logrus.DebugLevel,
		logrus.DebugLevel,
	}
	if v < 0 {
		v = 0
	}
	if v >= len(levels) {
		v = len(levels) - 1
	}
	logrus.SetLevel(levels[v])
	if v == 4 {
		EnableDebugModules(ModuleMaskAll)
	}
}
