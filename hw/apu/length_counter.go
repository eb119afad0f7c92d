package apu

// lengthTable maps the 5-bit load value of the length registers to the
// actual counter value.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// lengthCounter silences its channel when it reaches zero. Disabling the
// channel through $4015 zeroes it immediately; loads while disabled are
// ignored.
type lengthCounter struct {
	enabled bool
	halt    bool
	value   uint8
}

func (lc *lengthCounter) load(idx uint8) {
	if lc.enabled {
		lc.value = lengthTable[idx&0x1F]
	}
}

func (lc *lengthCounter) clock() {
	if lc.value > 0 && !lc.halt {
		lc.value--
	}
}

func (lc *lengthCounter) setEnabled(on bool) {
	if !on {
		lc.value = 0
	}
	lc.enabled = on
}
