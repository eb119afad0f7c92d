package mappers

import "famicore/hw/snapshot"

var CNROM = Desc{
	Name: "CNROM",
	New:  func(b *base) Mapper { return &cnrom{base: b} },
}

// cnrom selects the 8KB CHR bank on any write to $8000-$FFFF. PRG is 16KB
// mirrored or 32KB direct.
type cnrom struct {
	*base

	chrbank uint32
}

func (m *cnrom) Name() string { return "CNROM" }

func (m *cnrom) ReadPRG(addr uint16) uint8 {
	return m.prg[int(addr-0x8000)&(len(m.prg)-1)]
}

func (m *cnrom) WritePRG(addr uint16, val uint8, cycle uint64) {
	// 7  bit  0
	// ---- ----
	// cccc ccCC
	// |||| ||||
	// ++++-++++- Select 8 KB CHR ROM bank for PPU $0000-$1FFF
	// CNROM only uses the lowest 2 bits.
	nbanks := uint32(len(m.chr) / 0x2000)
	prev := m.chrbank
	m.chrbank = uint32(val&0b11) % nbanks
	if prev != m.chrbank {
		modMapper.DebugZ("CHR bank switch").
			Uint32("prev", prev).
			Uint32("new", m.chrbank).
			End()
	}
}

func (m *cnrom) ReadCHR(addr uint16) uint8 {
	return m.chr[m.chrbank*0x2000+uint32(addr&0x1FFF)]
}

func (m *cnrom) WriteCHR(addr uint16, val uint8) {
	// CHR is ROM on CNROM boards.
}

func (m *cnrom) State() snapshot.Mapper {
	var s snapshot.Mapper
	m.baseState(&s)
	s.CHRBank = m.chrbank
	return s
}

func (m *cnrom) Restore(s *snapshot.Mapper) {
	m.baseRestore(s)
	m.chrbank = s.CHRBank
}
