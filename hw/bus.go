package hw

import (
	"famicore/emu/log"
	"famicore/hw/hwdefs"
)

// bus is the CPU-side address decode. It also backs the APU's view of
// the system (IRQ lines, DMC stalls and sample fetches).
//
// $0000-$1FFF  internal RAM, mirrored every 2KB
// $2000-$3FFF  PPU registers, mirrored every 8 bytes
// $4000-$4013  APU channels
// $4014        OAM DMA
// $4015        APU status
// $4016        controller 1 (strobe on write)
// $4017        controller 2 on read, APU frame counter on write
// $4018-$401F  test registers, ignored
// $4020-$FFFF  cartridge
type bus struct {
	n *NES
}

func (b bus) Read(addr uint16) uint8 {
	n := b.n
	switch {
	case addr < 0x2000:
		return n.RAM[addr&0x07FF]
	case addr < 0x4000:
		return n.PPU.ReadRegister(addr)
	case addr == 0x4015:
		return n.APU.ReadStatus()
	case addr == 0x4016:
		return n.controllers[0].Read()
	case addr == 0x4017:
		return n.controllers[1].Read()
	case addr < 0x4020:
		// write-only and test registers
		return 0
	case addr < 0x6000:
		// expansion area, nothing drives the bus
		return 0
	case addr < 0x8000:
		return n.mapper.ReadPRGRAM(addr)
	default:
		return n.mapper.ReadPRG(addr)
	}
}

func (b bus) Write(addr uint16, val uint8) {
	n := b.n
	switch {
	case addr < 0x2000:
		n.RAM[addr&0x07FF] = val
	case addr < 0x4000:
		n.PPU.WriteRegister(addr, val)
	case addr == 0x4014:
		b.oamDMA(val)
	case addr == 0x4016:
		n.controllers[0].WriteStrobe(val)
		n.controllers[1].WriteStrobe(val)
	case addr < 0x4018:
		// $4000-$4013, $4015 channel and status writes, $4017 frame
		// counter
		n.APU.WriteRegister(addr, val)
	case addr < 0x6000:
		// test registers and expansion area
	case addr < 0x8000:
		n.mapper.WritePRGRAM(addr, val)
	default:
		n.mapper.WritePRG(addr, val, n.CPU.Cycles)
	}
}

// Peek reads without side effects, for tracing and disassembly.
func (b bus) Peek(addr uint16) uint8 {
	n := b.n
	switch {
	case addr < 0x2000:
		return n.RAM[addr&0x07FF]
	case addr < 0x4000:
		return n.PPU.PeekRegister(addr)
	case addr == 0x4015:
		return n.APU.PeekStatus()
	case addr == 0x4016:
		return n.controllers[0].Peek()
	case addr == 0x4017:
		return n.controllers[1].Peek()
	case addr < 0x6000:
		return 0
	case addr < 0x8000:
		return n.mapper.ReadPRGRAM(addr)
	default:
		return n.mapper.ReadPRG(addr)
	}
}

// oamDMA copies a 256-byte page into OAM at the current OAMADDR. The CPU
// is suspended for 513 cycles, 514 when the write lands on an odd cycle.
func (b bus) oamDMA(page uint8) {
	n := b.n
	addr := uint16(page) << 8
	for i := 0; i < 256; i++ {
		n.PPU.WriteOAM(b.Read(addr + uint16(i)))
	}
	stall := uint32(513)
	if n.CPU.Cycles&1 != 0 {
		stall++
	}
	n.CPU.AddStall(stall)

	log.ModDMA.DebugZ("OAM DMA").Hex8("page", page).Uint32("stall", stall).End()
}

/* the APU side of the bus */

func (b bus) SetIRQ(src hwdefs.IRQSource)   { b.n.CPU.SetIRQSource(src) }
func (b bus) ClearIRQ(src hwdefs.IRQSource) { b.n.CPU.ClearIRQSource(src) }
func (b bus) CPUCycle() uint64              { return b.n.CPU.Cycles }

// StallCPU suspends the CPU for a DMC DMA fetch.
func (b bus) StallCPU(cycles uint32) { b.n.CPU.AddStall(cycles) }

// ReadMem services DMC sample fetches.
func (b bus) ReadMem(addr uint16) uint8 { return b.Read(addr) }
