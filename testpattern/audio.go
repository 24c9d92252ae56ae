package testpattern

import (
	"math"
)

const (
	toneAmplitude = 6000
	baseTone      = 440.0
)

// tone is a stereo sine generator that produces exactly sampleRate
// samples per second of emulated time, whatever the frame rate.
type tone struct {
	sampleRate float64
	fps        float64
	freq       float64
	phase      float64
	// surplus is how many sample frames past the ideal stream position
	// have already been produced.
	surplus float64
	muted   bool
	buf     []int16
}

func newTone(sampleRate, fps float64) *tone {
	return &tone{
		sampleRate: sampleRate,
		fps:        fps,
		freq:       baseTone,
	}
}

// framesFor returns how many stereo sample frames the next video frame
// needs. Rounding up keeps every frame at or above its share; the excess
// is subtracted from later frames.
func (t *tone) framesFor() int {
	owed := t.sampleRate/t.fps - t.surplus
	n := int(math.Ceil(owed - 1e-9))
	if n < 0 {
		n = 0
	}
	t.surplus = float64(n) - owed
	return n
}

// next returns the interleaved samples for one video frame. The slice is
// reused by the following call.
func (t *tone) next() []int16 {
	n := t.framesFor()
	if cap(t.buf) < n*2 {
		t.buf = make([]int16, n*2)
	}
	out := t.buf[:n*2]

	step := 2 * math.Pi * t.freq / t.sampleRate
	for i := 0; i < n; i++ {
		var v int16
		if !t.muted {
			v = int16(toneAmplitude * math.Sin(t.phase))
		}
		out[i*2] = v
		out[i*2+1] = v
		t.phase += step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
	return out
}

// shift moves the tone by semitones.
func (t *tone) shift(semitones int) {
	t.freq *= math.Pow(2, float64(semitones)/12)
	t.freq = min(max(t.freq, 55), 3520)
}

func (t *tone) reset() {
	t.freq = baseTone
	t.phase = 0
	t.surplus = 0
	t.muted = false
}
