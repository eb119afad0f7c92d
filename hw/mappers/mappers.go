// Package mappers implements the cartridge circuitry that remaps the CPU
// and PPU address windows to PRG and CHR banks.
package mappers

import (
	"fmt"

	"famicore/emu/log"
	"famicore/hw/snapshot"
	"famicore/ines"
)

var modMapper = log.ModMapper

// A Mapper arbitrates the two cartridge bus views: the CPU window
// $8000-$FFFF (reads hit banked PRG ROM, writes hit mapper registers) and
// the PPU window $0000-$1FFF (pattern tables). PRG RAM at $6000-$7FFF is
// common to all supported boards and lives in the embedded base.
type Mapper interface {
	Name() string

	ReadPRG(addr uint16) uint8
	// WritePRG receives the CPU cycle of the write; MMC1 uses it to filter
	// back-to-back writes from read-modify-write instructions.
	WritePRG(addr uint16, val uint8, cycle uint64)

	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)

	ReadPRGRAM(addr uint16) uint8
	WritePRGRAM(addr uint16, val uint8)

	// PRGRAM exposes the raw PRG RAM, for battery saves.
	PRGRAM() []byte

	// Mirroring reports the current nametable arrangement.
	Mirroring() ines.NTMirroring

	State() snapshot.Mapper
	Restore(*snapshot.Mapper)
}

type Desc struct {
	Name string
	New  func(*base) Mapper
}

var All = map[uint8]Desc{
	0: NROM,
	1: MMC1,
	2: UxROM,
	3: CNROM,
}

// New builds the mapper for the given rom, or fails with
// ines.ErrUnsupportedMapper, or with ines.ErrBadHeader when the PRG ROM
// size is zero or not a power of two.
func New(rom *ines.Rom) (Mapper, error) {
	desc, ok := All[rom.Mapper()]
	if !ok {
		return nil, fmt.Errorf("%w: mapper %d", ines.ErrUnsupportedMapper, rom.Mapper())
	}
	b, err := newbase(rom)
	if err != nil {
		return nil, fmt.Errorf("mapper %s: %w", desc.Name, err)
	}
	m := desc.New(b)
	modMapper.InfoZ("mapper loaded").
		String("name", desc.Name).
		Int("prg", len(b.prg)).
		Int("chr", len(b.chr)).
		Bool("chrram", b.chrRAM).
		End()
	return m, nil
}

func ispow2(n int) bool {
	return n&(n-1) == 0
}

// base carries the memories every supported board has: PRG ROM, CHR (ROM
// or 8KB of RAM), and 8KB of PRG RAM. Trainer data, when present, is
// preloaded at $7000.
type base struct {
	prg    []byte
	chr    []byte
	chrRAM bool
	prgram [0x2000]byte
	mirror ines.NTMirroring
}

func newbase(rom *ines.Rom) (*base, error) {
	if len(rom.PRG) == 0 || !ispow2(len(rom.PRG)) {
		return nil, fmt.Errorf("%w: PRG size %d is not a power of 2", ines.ErrBadHeader, len(rom.PRG))
	}

	b := &base{
		prg:    rom.PRG,
		mirror: rom.Mirroring(),
	}
	if len(rom.CHR) == 0 {
		b.chr = make([]byte, 0x2000)
		b.chrRAM = true
	} else {
		b.chr = rom.CHR
	}
	if rom.HasTrainer() {
		copy(b.prgram[0x1000:], rom.Trainer)
	}
	return b, nil
}

func (b *base) Mirroring() ines.NTMirroring { return b.mirror }

func (b *base) ReadPRGRAM(addr uint16) uint8 {
	return b.prgram[addr&0x1FFF]
}

func (b *base) WritePRGRAM(addr uint16, val uint8) {
	b.prgram[addr&0x1FFF] = val
}

// PRGRAM exposes the raw PRG RAM, for battery saves.
func (b *base) PRGRAM() []byte { return b.prgram[:] }

func (b *base) baseState(s *snapshot.Mapper) {
	copy(s.PRGRAM[:], b.prgram[:])
	if b.chrRAM {
		s.HasCHRRAM = true
		copy(s.CHRRAM[:], b.chr)
	}
	s.Mirror = uint8(b.mirror)
}

func (b *base) baseRestore(s *snapshot.Mapper) {
	copy(b.prgram[:], s.PRGRAM[:])
	if b.chrRAM && s.HasCHRRAM {
		copy(b.chr, s.CHRRAM[:])
	}
	b.mirror = ines.NTMirroring(s.Mirror)
}

// readCHR and writeCHR implement the flat 8KB pattern table window used
// by the boards without CHR banking.
func (b *base) readCHR(addr uint16) uint8 {
	return b.chr[int(addr)&(len(b.chr)-1)]
}

func (b *base) writeCHR(addr uint16, val uint8) {
	if !b.chrRAM {
		return
	}
	b.chr[int(addr)&(len(b.chr)-1)] = val
}
