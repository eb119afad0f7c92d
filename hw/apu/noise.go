package apu

import "famicore/hw/snapshot"

// noisePeriods is the NTSC period table for the noise channel, in APU
// cycles.
var noisePeriods = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// noiseChannel clocks a 15-bit LFSR. The feedback tap is bit 1, or bit 6
// in the short mode, which produces a 93-step metallic loop.
type noiseChannel struct {
	envelope envelope
	length   lengthCounter

	mode        bool
	shift       uint16
	timerPeriod uint16
	timerValue  uint16
}

// $400C
func (no *noiseChannel) writeControl(val uint8) {
	no.length.halt = val&0x20 != 0
	no.envelope.write(val)
}

// $400E
func (no *noiseChannel) writePeriod(val uint8) {
	no.mode = val&0x80 != 0
	no.timerPeriod = noisePeriods[val&0x0F]
}

// $400F
func (no *noiseChannel) writeLength(val uint8) {
	no.length.load(val >> 3)
	no.envelope.restart()
}

func (no *noiseChannel) stepTimer() {
	if no.timerValue == 0 {
		no.timerValue = no.timerPeriod
		tap := uint16(1)
		if no.mode {
			tap = 6
		}
		feedback := no.shift&1 ^ no.shift>>tap&1
		no.shift = no.shift>>1 | feedback<<14
	} else {
		no.timerValue--
	}
}

func (no *noiseChannel) output() uint8 {
	if no.length.value == 0 {
		return 0
	}
	if no.shift&1 == 1 {
		return 0
	}
	return no.envelope.volume()
}

func (no *noiseChannel) state() snapshot.Noise {
	return snapshot.Noise{
		Enabled:     no.length.enabled,
		LengthValue: no.length.value,
		LengthHalt:  no.length.halt,
		Mode:        no.mode,
		Shift:       no.shift,
		TimerPeriod: no.timerPeriod,
		TimerValue:  no.timerValue,
		Envelope:    no.envelope.state(),
	}
}

func (no *noiseChannel) restore(s *snapshot.Noise) {
	no.length.enabled = s.Enabled
	no.length.value = s.LengthValue
	no.length.halt = s.LengthHalt
	no.mode = s.Mode
	no.shift = s.Shift
	no.timerPeriod = s.TimerPeriod
	no.timerValue = s.TimerValue
	no.envelope.restore(&s.Envelope)
}
