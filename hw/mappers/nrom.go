package mappers

import "famicore/hw/snapshot"

var NROM = Desc{
	Name: "NROM",
	New:  func(b *base) Mapper { return &nrom{base: b} },
}

// nrom has no registers: 16KB PRG mirrored to 32KB (or 32KB direct), flat
// 8KB CHR, mirroring hardwired by the header.
type nrom struct {
	*base
}

func (m *nrom) Name() string { return "NROM" }

func (m *nrom) ReadPRG(addr uint16) uint8 {
	return m.prg[int(addr-0x8000)&(len(m.prg)-1)]
}

func (m *nrom) WritePRG(addr uint16, val uint8, cycle uint64) {
	modMapper.DebugZ("write to NROM PRG ROM ignored").Hex16("addr", addr).End()
}

func (m *nrom) ReadCHR(addr uint16) uint8       { return m.readCHR(addr) }
func (m *nrom) WriteCHR(addr uint16, val uint8) { m.writeCHR(addr, val) }

func (m *nrom) State() snapshot.Mapper {
	var s snapshot.Mapper
	m.baseState(&s)
	return s
}

func (m *nrom) Restore(s *snapshot.Mapper) {
	m.baseRestore(s)
}
