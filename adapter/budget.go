package adapter

// budgetTolerance absorbs float64 rounding in cores that track fractional
// sample counts themselves.
const budgetTolerance = 1e-6

// RequiredAudioSamples returns the number of int16 values (both stereo
// channels) one video frame needs at the given rates.
func RequiredAudioSamples(sampleRate, fps float64) float64 {
	return 2 * sampleRate / fps
}

// audioBudget carries the audio surplus between frames so cores may upload
// in chunks that do not line up with video frames.
type audioBudget struct {
	carry float64
}

// settle accounts for one frame's uploads. Falling short of the per-frame
// requirement is a contract violation.
func (b *audioBudget) settle(uploaded int, sampleRate, fps float64) {
	if fps <= 0 {
		violate("frame rate must be positive, got %v", fps)
	}
	required := RequiredAudioSamples(sampleRate, fps)
	total := b.carry + float64(uploaded)
	if total+budgetTolerance < required {
		violate("uploaded %d audio samples with %.2f carried, need at least %.2f each frame",
			uploaded, b.carry, required)
	}
	b.carry = max(total-required, 0)
}

func (b *audioBudget) reset() {
	b.carry = 0
}
