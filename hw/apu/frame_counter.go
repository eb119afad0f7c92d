package apu

import (
	"famicore/hw/hwdefs"
	"famicore/hw/snapshot"
)

// frameCounter divides the CPU clock into the quarter- and half-frame
// events that drive envelopes, linear counters, length counters and
// sweeps.
//
// Mode 0 (4-step):  7457 Q  14913 Q+H  22371 Q  29829 Q+H+IRQ, period 29830
// Mode 1 (5-step):  7457 Q  14913 Q+H  22371 Q  29829 -  37281 Q+H, period 37282
type frameCounter struct {
	apu *APU

	mode       uint8
	cycle      uint32
	inhibitIRQ bool
	irqPending bool

	// $4017 writes apply after a 3 or 4 cycle delay, depending on the
	// write cycle parity.
	pending    uint8
	hasPending bool
	delay      uint8
}

func (fc *frameCounter) reset() {
	fc.cycle = 0
	fc.irqPending = false
	// the mode survives soft resets, as if $4017 were rewritten
	fc.hasPending = true
	fc.pending = fc.mode << 7
	fc.delay = 3
}

// write services $4017.
func (fc *frameCounter) write(val uint8) {
	fc.pending = val
	fc.hasPending = true
	if fc.apu.cycles&1 != 0 {
		// between APU cycles: effects occur 4 CPU cycles later
		fc.delay = 4
	} else {
		fc.delay = 3
	}

	fc.inhibitIRQ = val&0x40 != 0
	if fc.inhibitIRQ {
		fc.irqPending = false
		fc.apu.sys.ClearIRQ(hwdefs.FrameCounterIRQ)
	}
}

func (fc *frameCounter) apply() {
	fc.mode = fc.pending >> 7
	fc.cycle = 0
	fc.hasPending = false
	if fc.mode == 1 {
		// mode 1 clocks the quarter and half frame units immediately
		fc.apu.clockHalf()
	}
}

func (fc *frameCounter) step() {
	if fc.hasPending {
		fc.delay--
		if fc.delay == 0 {
			fc.apply()
			return
		}
	}

	fc.cycle++
	switch fc.cycle {
	case 7457, 22371:
		fc.apu.clockQuarter()
	case 14913:
		fc.apu.clockHalf()
	case 29829:
		if fc.mode == 0 {
			fc.apu.clockHalf()
			if !fc.inhibitIRQ {
				fc.irqPending = true
				fc.apu.sys.SetIRQ(hwdefs.FrameCounterIRQ)
			}
		}
	case 29830:
		if fc.mode == 0 {
			fc.cycle = 0
		}
	case 37281:
		fc.apu.clockHalf()
	case 37282:
		fc.cycle = 0
	}
}

func (fc *frameCounter) state() snapshot.FrameCounter {
	return snapshot.FrameCounter{
		Mode:       fc.mode,
		Cycle:      fc.cycle,
		InhibitIRQ: fc.inhibitIRQ,
		IRQPending: fc.irqPending,
		Pending:    fc.pending,
		HasPending: fc.hasPending,
		Delay:      fc.delay,
	}
}

func (fc *frameCounter) restore(s *snapshot.FrameCounter) {
	fc.mode = s.Mode
	fc.cycle = s.Cycle
	fc.inhibitIRQ = s.InhibitIRQ
	fc.irqPending = s.IRQPending
	fc.pending = s.Pending
	fc.hasPending = s.HasPending
	fc.delay = s.Delay
}
