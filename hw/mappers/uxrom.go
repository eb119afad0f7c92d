package mappers

import "famicore/hw/snapshot"

var UxROM = Desc{
	Name: "UxROM",
	New: func(b *base) Mapper {
		return &uxrom{
			base:     b,
			bankmask: uint8(len(b.prg)>>14) - 1,
		}
	},
}

// uxrom switches the 16KB PRG bank at $8000 on any write to $8000-$FFFF;
// the bank at $C000 is fixed to the last one. CHR is 8KB RAM.
type uxrom struct {
	*base

	prgbank  uint32
	bankmask uint8
}

func (m *uxrom) Name() string { return "UxROM" }

func (m *uxrom) ReadPRG(addr uint16) uint8 {
	if addr >= 0xC000 {
		// fixed last bank
		return m.prg[len(m.prg)-0x4000+int(addr-0xC000)]
	}
	return m.prg[int(m.prgbank)*0x4000+int(addr-0x8000)]
}

func (m *uxrom) WritePRG(addr uint16, val uint8, cycle uint64) {
	// 7  bit  0
	// ---- ----
	// xxxx pPPP
	//      ||||
	//      ++++- Select 16 KB PRG ROM bank for CPU $8000-$BFFF
	//            (UNROM uses bits 2-0; UOROM uses bits 3-0)
	prev := m.prgbank
	m.prgbank = uint32(val & m.bankmask)
	if prev != m.prgbank {
		modMapper.DebugZ("PRG bank switch").
			Uint32("prev", prev).
			Uint32("new", m.prgbank).
			End()
	}
}

func (m *uxrom) ReadCHR(addr uint16) uint8       { return m.readCHR(addr) }
func (m *uxrom) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

func (m *uxrom) State() snapshot.Mapper {
	var s snapshot.Mapper
	m.baseState(&s)
	s.PRGBank = m.prgbank
	return s
}

func (m *uxrom) Restore(s *snapshot.Mapper) {
	m.baseRestore(s)
	m.prgbank = s.PRGBank
}
