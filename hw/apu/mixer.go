package apu

import (
	"github.com/arl/blip"

	"famicore/hw/hwdefs"
)

// DAC lookup tables for the non-linear mixer:
//
//	pulse_out = 95.52 / (8128/(p1+p2) + 100)
//	tnd_out   = 163.67 / (24329/(3*tri + 2*noise + dmc) + 100)
var (
	pulseTable [31]float32
	tndTable   [203]float32
)

func init() {
	for i := 1; i < len(pulseTable); i++ {
		pulseTable[i] = 95.52 / (8128.0/float32(i) + 100)
	}
	for i := 1; i < len(tndTable); i++ {
		tndTable[i] = 163.67 / (24329.0/float32(i) + 100)
	}
}

// outputScale maps the ~0.0-1.0 mixer output to int16 samples.
const outputScale = 32000

// maxSamplesPerFrame dimensions the blip buffer: one video frame of
// audio at the highest supported rate, with headroom.
const maxSamplesPerFrame = 96000 / 60 * 2

// Mixer pushes the instantaneous DAC output into a band-limited delta
// buffer, which resamples the 1.79MHz channel updates down to the host
// sample rate. Resampled frames queue up until the host drains them.
type Mixer struct {
	buf        *blip.Buffer
	sampleRate int
	prev       int16
	queue      []int16
	scratch    []int16
}

func newMixer(sampleRate int) *Mixer {
	m := &Mixer{
		buf:        blip.NewBuffer(maxSamplesPerFrame),
		sampleRate: sampleRate,
		scratch:    make([]int16, maxSamplesPerFrame),
	}
	m.buf.SetRates(hwdefs.CPUClockRate, float64(sampleRate))
	return m
}

func (m *Mixer) setSampleRate(hz int) {
	m.sampleRate = hz
	m.buf.Clear()
	m.buf.SetRates(hwdefs.CPUClockRate, float64(hz))
}

func (m *Mixer) reset() {
	m.buf.Clear()
	m.prev = 0
	m.queue = m.queue[:0]
}

// setOutput records the mixer output at the given CPU-cycle timestamp.
// Only changes produce deltas, so flat stretches cost nothing.
func (m *Mixer) setOutput(t uint32, out int16) {
	if out != m.prev {
		m.buf.AddDelta(uint64(t), int32(out-m.prev))
		m.prev = out
	}
}

// endFrame closes the current time frame and moves the resampled
// samples into the queue.
func (m *Mixer) endFrame(t uint32) {
	m.buf.EndFrame(int(t))
	n := m.buf.SamplesAvailable()
	for n > 0 {
		count := m.buf.ReadSamples(m.scratch, min(n, len(m.scratch)), blip.Mono)
		m.queue = append(m.queue, m.scratch[:count]...)
		n -= count
	}
}

// take drains queued samples into dst.
func (m *Mixer) take(dst []int16) int {
	n := copy(dst, m.queue)
	m.queue = m.queue[:copy(m.queue, m.queue[n:])]
	return n
}
