package adapter

// Frontend callback signatures. A nil value means the callback has not been
// registered yet.
type (
	// VideoRefreshFunc receives one frame; pitch is the row length in bytes.
	VideoRefreshFunc func(data []byte, width, height uint, pitch int)

	// AudioSampleFunc receives a single stereo sample.
	AudioSampleFunc func(left, right int16)

	// AudioSampleBatchFunc receives interleaved stereo samples and returns
	// the number of frames consumed.
	AudioSampleBatchFunc func(samples []int16) int

	// InputPollFunc asks the frontend to refresh input state.
	InputPollFunc func()

	// InputStateFunc returns the state of one input.
	InputStateFunc func(port, device, index, id uint) int16
)

// Callbacks holds the per-instance frontend callbacks.
type Callbacks struct {
	VideoRefresh     VideoRefreshFunc
	AudioSample      AudioSampleFunc
	AudioSampleBatch AudioSampleBatchFunc
	InputPoll        InputPollFunc
	InputState       InputStateFunc
}

// missingForRun returns the name of the first callback Run needs that is
// not registered, or "".
func (c *Callbacks) missingForRun() string {
	switch {
	case c.InputPoll == nil:
		return "input_poll"
	case c.InputState == nil:
		return "input_state"
	case c.VideoRefresh == nil:
		return "video_refresh"
	case c.AudioSampleBatch == nil:
		return "audio_sample_batch"
	}
	return ""
}
