package apu

import "famicore/hw/snapshot"

// dutyTable holds the four 8-step duty sequences (12.5, 25, 50 and 75%).
var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

// sweep periodically shifts the square channel period up or down.
type sweep struct {
	enabled bool
	negate  bool
	reload  bool
	period  uint8
	shift   uint8
	divider uint8
}

// squareChannel is one of the two pulse generators. The only asymmetry
// between them is the sweep adder: pulse 1 negates in ones' complement,
// pulse 2 in two's complement.
type squareChannel struct {
	channel uint8 // 1 or 2

	envelope envelope
	sweep    sweep
	length   lengthCounter

	dutyMode  uint8
	dutyValue uint8

	timerPeriod uint16
	timerValue  uint16
}

// $4000/$4004
func (sq *squareChannel) writeControl(val uint8) {
	sq.dutyMode = val >> 6 & 3
	sq.length.halt = val&0x20 != 0
	sq.envelope.write(val)
}

// $4001/$4005
func (sq *squareChannel) writeSweep(val uint8) {
	sq.sweep.enabled = val&0x80 != 0
	sq.sweep.period = val >> 4 & 7
	sq.sweep.negate = val&0x08 != 0
	sq.sweep.shift = val & 7
	sq.sweep.reload = true
}

// $4002/$4006
func (sq *squareChannel) writeTimerLow(val uint8) {
	sq.timerPeriod = sq.timerPeriod&0xFF00 | uint16(val)
}

// $4003/$4007
func (sq *squareChannel) writeTimerHigh(val uint8) {
	sq.timerPeriod = sq.timerPeriod&0x00FF | uint16(val&7)<<8
	sq.length.load(val >> 3)
	sq.envelope.restart()
	sq.dutyValue = 0
}

func (sq *squareChannel) stepTimer() {
	if sq.timerValue == 0 {
		sq.timerValue = sq.timerPeriod
		sq.dutyValue = (sq.dutyValue + 1) & 7
	} else {
		sq.timerValue--
	}
}

func (sq *squareChannel) clockSweep() {
	if sq.sweep.reload {
		if sq.sweep.enabled && sq.sweep.divider == 0 {
			sq.shiftPeriod()
		}
		sq.sweep.divider = sq.sweep.period
		sq.sweep.reload = false
	} else if sq.sweep.divider > 0 {
		sq.sweep.divider--
	} else {
		sq.sweep.divider = sq.sweep.period
		if sq.sweep.enabled {
			sq.shiftPeriod()
		}
	}
}

func (sq *squareChannel) shiftPeriod() {
	delta := sq.timerPeriod >> sq.sweep.shift
	if sq.sweep.negate {
		sq.timerPeriod -= delta
		if sq.channel == 1 {
			// pulse 1 adds the ones' complement
			sq.timerPeriod--
		}
	} else {
		sq.timerPeriod += delta
	}
}

func (sq *squareChannel) output() uint8 {
	if sq.length.value == 0 {
		return 0
	}
	if dutyTable[sq.dutyMode][sq.dutyValue] == 0 {
		return 0
	}
	if sq.timerPeriod < 8 || sq.timerPeriod > 0x7FF {
		return 0
	}
	return sq.envelope.volume()
}

func (sq *squareChannel) state() snapshot.Pulse {
	return snapshot.Pulse{
		Enabled:     sq.length.enabled,
		LengthValue: sq.length.value,
		LengthHalt:  sq.length.halt,
		DutyMode:    sq.dutyMode,
		DutyValue:   sq.dutyValue,
		TimerPeriod: sq.timerPeriod,
		TimerValue:  sq.timerValue,
		Envelope:    sq.envelope.state(),
		Sweep: snapshot.Sweep{
			Enabled: sq.sweep.enabled,
			Negate:  sq.sweep.negate,
			Reload:  sq.sweep.reload,
			Period:  sq.sweep.period,
			Shift:   sq.sweep.shift,
			Divider: sq.sweep.divider,
		},
	}
}

func (sq *squareChannel) restore(s *snapshot.Pulse) {
	sq.length.enabled = s.Enabled
	sq.length.value = s.LengthValue
	sq.length.halt = s.LengthHalt
	sq.dutyMode = s.DutyMode
	sq.dutyValue = s.DutyValue
	sq.timerPeriod = s.TimerPeriod
	sq.timerValue = s.TimerValue
	sq.envelope.restore(&s.Envelope)
	sq.sweep = sweep{
		enabled: s.Sweep.Enabled,
		negate:  s.Sweep.Negate,
		reload:  s.Sweep.Reload,
		period:  s.Sweep.Period,
		shift:   s.Sweep.Shift,
		divider: s.Sweep.Divider,
	}
}
