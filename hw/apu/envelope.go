package apu

import "famicore/hw/snapshot"

// envelope is the volume generator shared by the square and noise
// channels: constant volume, or a 15-to-0 decay clocked on quarter
// frames, optionally looping.
type envelope struct {
	start    bool
	loop     bool
	constant bool
	period   uint8
	divider  uint8
	decay    uint8
}

func (e *envelope) write(val uint8) {
	e.loop = val&0x20 != 0
	e.constant = val&0x10 != 0
	e.period = val & 0x0F
}

func (e *envelope) restart() {
	e.start = true
}

func (e *envelope) clock() {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = e.period
		return
	}
	if e.divider > 0 {
		e.divider--
		return
	}
	e.divider = e.period
	if e.decay > 0 {
		e.decay--
	} else if e.loop {
		e.decay = 15
	}
}

func (e *envelope) volume() uint8 {
	if e.constant {
		return e.period
	}
	return e.decay
}

func (e *envelope) state() snapshot.Envelope {
	return snapshot.Envelope{
		Start:    e.start,
		Loop:     e.loop,
		Constant: e.constant,
		Period:   e.period,
		Divider:  e.divider,
		Decay:    e.decay,
	}
}

func (e *envelope) restore(s *snapshot.Envelope) {
	e.start = s.Start
	e.loop = s.Loop
	e.constant = s.Constant
	e.period = s.Period
	e.divider = s.Divider
	e.decay = s.Decay
}
