package apu

import "famicore/hw/snapshot"

// triangleSequence is the 32-step output of the triangle channel.
var triangleSequence = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// triangleChannel steps through the 32-entry sequence, gated by both the
// linear counter and the length counter: when either is zero the
// sequence position holds.
type triangleChannel struct {
	length lengthCounter

	control      bool // also the length counter halt flag
	linearPeriod uint8
	linearValue  uint8
	linearReload bool

	timerPeriod uint16
	timerValue  uint16
	seqPos      uint8
}

// $4008
func (tr *triangleChannel) writeControl(val uint8) {
	tr.control = val&0x80 != 0
	tr.length.halt = tr.control
	tr.linearPeriod = val & 0x7F
}

// $400A
func (tr *triangleChannel) writeTimerLow(val uint8) {
	tr.timerPeriod = tr.timerPeriod&0xFF00 | uint16(val)
}

// $400B
func (tr *triangleChannel) writeTimerHigh(val uint8) {
	tr.timerPeriod = tr.timerPeriod&0x00FF | uint16(val&7)<<8
	tr.length.load(val >> 3)
	tr.timerValue = tr.timerPeriod
	tr.linearReload = true
}

func (tr *triangleChannel) stepTimer() {
	if tr.timerValue == 0 {
		tr.timerValue = tr.timerPeriod
		if tr.length.value > 0 && tr.linearValue > 0 {
			tr.seqPos = (tr.seqPos + 1) & 31
		}
	} else {
		tr.timerValue--
	}
}

func (tr *triangleChannel) clockLinear() {
	if tr.linearReload {
		tr.linearValue = tr.linearPeriod
	} else if tr.linearValue > 0 {
		tr.linearValue--
	}
	if !tr.control {
		tr.linearReload = false
	}
}

func (tr *triangleChannel) output() uint8 {
	return triangleSequence[tr.seqPos]
}

func (tr *triangleChannel) state() snapshot.Triangle {
	return snapshot.Triangle{
		Enabled:      tr.length.enabled,
		LengthValue:  tr.length.value,
		Control:      tr.control,
		TimerPeriod:  tr.timerPeriod,
		TimerValue:   tr.timerValue,
		SeqPos:       tr.seqPos,
		LinearValue:  tr.linearValue,
		LinearPeriod: tr.linearPeriod,
		LinearReload: tr.linearReload,
	}
}

func (tr *triangleChannel) restore(s *snapshot.Triangle) {
	tr.length.enabled = s.Enabled
	tr.length.value = s.LengthValue
	tr.control = s.Control
	tr.length.halt = s.Control
	tr.timerPeriod = s.TimerPeriod
	tr.timerValue = s.TimerValue
	tr.seqPos = s.SeqPos
	tr.linearValue = s.LinearValue
	tr.linearPeriod = s.LinearPeriod
	tr.linearReload = s.LinearReload
}
