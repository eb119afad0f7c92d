// Package hw emulates the NES hardware: the 2A03 CPU and APU, the 2C02
// PPU, the system bus and the cartridge mappers. The NES type owns every
// subsystem and steps them in lockstep; it is the embedding surface for
// hosts, which provide controller input and consume video frames and
// audio samples.
package hw

import (
	"errors"
	"fmt"
	"image"
	"io"

	"famicore/emu/log"
	"famicore/hw/apu"
	"famicore/hw/mappers"
	"famicore/hw/snapshot"
	"famicore/ines"
)

var ErrSaveRAMSize = errors.New("hw: save RAM size mismatch")

// NES is the whole machine. The ordering contract: for every CPU cycle
// consumed, the PPU advances exactly 3 dots and the APU 1 cycle before
// the CPU executes its next instruction. DMA stalls count as CPU cycles
// and advance the PPU and APU the same way.
type NES struct {
	CPU *CPU
	PPU *PPU
	APU *apu.APU

	RAM [0x800]uint8

	rom         *ines.Rom
	mapper      mappers.Mapper
	controllers [2]Controller
}

// New parses an iNES image, builds the cartridge and powers up the
// machine.
func New(romBytes []byte) (*NES, error) {
	rom, err := ines.Decode(romBytes)
	if err != nil {
		return nil, err
	}
	return NewFromRom(rom)
}

// NewFromRom builds the machine around an already-parsed rom.
func NewFromRom(rom *ines.Rom) (*NES, error) {
	mapper, err := mappers.New(rom)
	if err != nil {
		return nil, err
	}

	n := &NES{rom: rom, mapper: mapper}
	n.CPU = NewCPU(bus{n})
	n.PPU = NewPPU(mapper, n.CPU)
	n.APU = apu.New(bus{n})
	n.Reset()

	log.ModEmu.InfoZ("powered up").
		Int("mapper", int(rom.Mapper())).
		String("mirroring", rom.Mirroring().String()).
		End()
	return n, nil
}

// Reset runs the RESET sequence. PRG RAM is preserved.
func (n *NES) Reset() {
	n.CPU.Reset()
	n.PPU.Reset()
	n.APU.Reset()
}

// SetButtons updates the button bitmask of one controller port
// (bit 0 = A ... bit 7 = Right).
func (n *NES) SetButtons(port int, state uint8) {
	n.controllers[port&1].SetButtons(state)
}

// Step runs one CPU instruction and catches the PPU and APU up. It
// returns the number of CPU cycles consumed.
func (n *NES) Step() int {
	cycles := n.CPU.Step()
	for i := 0; i < cycles*3; i++ {
		n.PPU.Step()
	}
	for i := 0; i < cycles; i++ {
		n.APU.Step()
	}
	return cycles
}

// StepFrame advances the machine until the PPU completes the current
// frame, then flushes the audio mixer.
func (n *NES) StepFrame() {
	frame := n.PPU.Frame
	for frame == n.PPU.Frame {
		n.Step()
	}
	n.APU.EndFrame()
}

// Frame returns the last completed frame as RGBA.
func (n *NES) Frame() *image.RGBA {
	return n.PPU.FrontBuffer()
}

// FrameIndexed returns the last completed frame as 6-bit palette
// indices.
func (n *NES) FrameIndexed() *[256 * 240]uint8 {
	return n.PPU.FrontIndexed()
}

// TakeSamples drains queued audio samples into dst and reports how many
// were written.
func (n *NES) TakeSamples(dst []int16) int {
	return n.APU.TakeSamples(dst)
}

// SetSampleRate sets the audio output rate in Hz.
func (n *NES) SetSampleRate(hz int) {
	n.APU.SetSampleRate(hz)
}

// SetTraceOutput enables per-instruction execution tracing.
func (n *NES) SetTraceOutput(w io.Writer) {
	n.CPU.SetTraceOutput(w)
	n.CPU.SetTracePPU(n.PPU)
}

// LoadPalette overrides the RGB palette with a 192-byte blob (64 RGB
// triplets).
func (n *NES) LoadPalette(rgb []byte) error {
	if len(rgb) != 192 {
		return fmt.Errorf("palette must be 192 bytes, got %d", len(rgb))
	}
	n.PPU.LoadPalette(rgb)
	return nil
}

// SaveRAM returns a copy of the battery-backed PRG RAM, or nil when the
// cartridge has no battery.
func (n *NES) SaveRAM() []byte {
	if !n.rom.HasBattery() {
		return nil
	}
	prgram := n.mapper.PRGRAM()
	out := make([]byte, len(prgram))
	copy(out, prgram)
	return out
}

// LoadSaveRAM restores battery-backed PRG RAM from a previous SaveRAM
// blob.
func (n *NES) LoadSaveRAM(data []byte) error {
	prgram := n.mapper.PRGRAM()
	if len(data) != len(prgram) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSaveRAMSize, len(data), len(prgram))
	}
	copy(prgram, data)
	return nil
}

// SaveState serializes the full machine state.
func (n *NES) SaveState() []byte {
	state := &snapshot.NES{
		CPU:    n.CPU.State(),
		PPU:    n.PPU.State(),
		APU:    n.APU.State(),
		Mapper: n.mapper.State(),
	}
	state.RAM = n.RAM
	return snapshot.Encode(state)
}

// LoadState restores a state produced by SaveState.
func (n *NES) LoadState(data []byte) error {
	state, err := snapshot.Decode(data)
	if err != nil {
		return err
	}
	n.CPU.Restore(&state.CPU)
	n.PPU.Restore(&state.PPU)
	n.APU.Restore(&state.APU)
	n.mapper.Restore(&state.Mapper)
	n.RAM = state.RAM
	return nil
}
