package hw

import (
	"io"

	"famicore/emu/log"
	"famicore/hw/hwdefs"
	"famicore/hw/snapshot"
)

// busIO is the view of the system bus the CPU executes against.
type busIO interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
	// Peek reads without side effects (tracing, disassembly).
	Peek(addr uint16) uint8
}

// CPU emulates the Ricoh 2A03 core (a 6502 with the decimal mode cut).
// Execution is instruction-stepped: Step runs one instruction (or one
// stall cycle) and reports how many CPU cycles it consumed, so the owner
// can advance the PPU and APU in lockstep.
type CPU struct {
	bus busIO

	Cycles uint64

	A, X, Y, SP uint8
	PC          uint16
	P           P

	// nmiPending is the edge-triggered NMI latch; irqFlag is the OR of
	// the level-sensitive IRQ lines, sampled at instruction boundaries.
	nmiPending bool
	irqFlag    hwdefs.IRQSource

	// stall cycles still to burn (OAM DMA, DMC fetches).
	stall uint32

	tracer *tracer
}

func NewCPU(bus busIO) *CPU {
	return &CPU{bus: bus}
}

// Reset runs the RESET sequence: I set, SP dropped to $FD, PC loaded from
// the reset vector.
func (c *CPU) Reset() {
	c.SP = 0xFD
	c.P = Unused | IntDisable
	c.PC = c.read16(hwdefs.ResetVector)
	c.Cycles = 7
	c.nmiPending = false
	c.irqFlag = 0
	c.stall = 0

	log.ModCPU.InfoZ("reset").Hex16("pc", c.PC).End()
}

func (c *CPU) CurrentCycle() uint64 { return c.Cycles }

// TriggerNMI latches the 1->0 edge of the PPU NMI output.
func (c *CPU) TriggerNMI() {
	c.nmiPending = true
}

func (c *CPU) SetIRQSource(src hwdefs.IRQSource)      { c.irqFlag |= src }
func (c *CPU) ClearIRQSource(src hwdefs.IRQSource)    { c.irqFlag &^= src }
func (c *CPU) HasIRQSource(src hwdefs.IRQSource) bool { return c.irqFlag&src != 0 }

// AddStall suspends execution for n cycles. The PPU and APU keep running
// during the stall.
func (c *CPU) AddStall(n uint32) {
	c.stall += n
}

// SetTraceOutput enables the execution trace, one Nintendulator-style
// line per instruction. Pass nil to disable.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, cpu: c}
}

// Step executes a single instruction and returns the number of CPU
// cycles it took. Interrupts are polled at the instruction boundary:
// pending NMI wins over IRQ, IRQ is masked by the I flag.
func (c *CPU) Step() int {
	if c.stall > 0 {
		c.stall--
		c.Cycles++
		return 1
	}

	cycles := c.Cycles

	if c.nmiPending {
		c.nmiPending = false
		c.interrupt(hwdefs.NMIVector)
	} else if c.irqFlag != 0 && !c.P.has(IntDisable) {
		c.interrupt(hwdefs.IRQVector)
	}

	if c.tracer != nil {
		c.tracer.write()
	}

	opcode := c.bus.Read(c.PC)
	mode := instructionModes[opcode]

	addr, pageCrossed := c.operandAddress(mode)

	pc := c.PC
	c.PC += uint16(instructionSizes[opcode])
	c.Cycles += uint64(instructionCycles[opcode])
	if pageCrossed {
		c.Cycles += uint64(instructionPageCycles[opcode])
	}

	instructions[opcode](c, stepInfo{address: addr, pc: pc, mode: mode})

	return int(c.Cycles - cycles)
}

// stepInfo carries the resolved operand to the instruction functions.
type stepInfo struct {
	address uint16
	pc      uint16
	mode    uint8
}

func (c *CPU) operandAddress(mode uint8) (addr uint16, pageCrossed bool) {
	switch mode {
	case modeAbsolute:
		addr = c.read16(c.PC + 1)
	case modeAbsoluteX:
		addr = c.read16(c.PC+1) + uint16(c.X)
		pageCrossed = pagesDiffer(addr-uint16(c.X), addr)
	case modeAbsoluteY:
		addr = c.read16(c.PC+1) + uint16(c.Y)
		pageCrossed = pagesDiffer(addr-uint16(c.Y), addr)
	case modeAccumulator:
		addr = 0
	case modeImmediate:
		addr = c.PC + 1
	case modeImplied:
		addr = 0
	case modeIndexedIndirect:
		addr = c.read16bug(uint16(c.bus.Read(c.PC+1) + c.X))
	case modeIndirect:
		addr = c.read16bug(c.read16(c.PC + 1))
	case modeIndirectIndexed:
		addr = c.read16bug(uint16(c.bus.Read(c.PC+1))) + uint16(c.Y)
		pageCrossed = pagesDiffer(addr-uint16(c.Y), addr)
	case modeRelative:
		offset := uint16(c.bus.Read(c.PC + 1))
		if offset < 0x80 {
			addr = c.PC + 2 + offset
		} else {
			addr = c.PC + 2 + offset - 0x100
		}
	case modeZeroPage:
		addr = uint16(c.bus.Read(c.PC + 1))
	case modeZeroPageX:
		// indexing wraps within the zero page
		addr = uint16(c.bus.Read(c.PC+1)+c.X) & 0xFF
	case modeZeroPageY:
		addr = uint16(c.bus.Read(c.PC+1)+c.Y) & 0xFF
	}
	return addr, pageCrossed
}

func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr + 1))
	return hi<<8 | lo
}

// read16bug reproduces the 6502 indirect fetch bug: when the pointer low
// byte is $FF the high byte comes from the start of the same page.
func (c *CPU) read16bug(addr uint16) uint16 {
	a := addr
	b := addr&0xFF00 | uint16(uint8(addr)+1)
	lo := uint16(c.bus.Read(a))
	hi := uint16(c.bus.Read(b))
	return hi<<8 | lo
}

/* stack, on page $0100 with wraparound on SP */

func (c *CPU) push8(val uint8) {
	c.bus.Write(0x0100|uint16(c.SP), val)
	c.SP--
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.bus.Read(0x0100 | uint16(c.SP))
}

func (c *CPU) pull16() uint16 {
	lo := uint16(c.pull8())
	hi := uint16(c.pull8())
	return hi<<8 | lo
}

// interrupt runs the 7-cycle NMI/IRQ sequence: push PC and P (B clear),
// set I, jump through the vector.
func (c *CPU) interrupt(vector uint16) {
	c.push16(c.PC)
	c.push8(uint8(c.P&^Break | Unused))
	c.P.set(IntDisable, true)
	c.PC = c.read16(vector)
	c.Cycles += 7
}

// addBranchCycles accounts for a taken branch: +1 cycle, +2 if the
// target is on another page.
func (c *CPU) addBranchCycles(info stepInfo) {
	c.Cycles++
	if pagesDiffer(info.pc+2, info.address) {
		c.Cycles++
	}
}

func (c *CPU) State() snapshot.CPU {
	return snapshot.CPU{
		PC:         c.PC,
		SP:         c.SP,
		P:          uint8(c.P),
		A:          c.A,
		X:          c.X,
		Y:          c.Y,
		Cycles:     c.Cycles,
		Stall:      c.stall,
		NMIPending: c.nmiPending,
		IRQFlag:    uint8(c.irqFlag),
	}
}

func (c *CPU) Restore(s *snapshot.CPU) {
	c.PC = s.PC
	c.SP = s.SP
	c.P = P(s.P)
	c.A = s.A
	c.X = s.X
	c.Y = s.Y
	c.Cycles = s.Cycles
	c.stall = s.Stall
	c.nmiPending = s.NMIPending
	c.irqFlag = hwdefs.IRQSource(s.IRQFlag)
}
