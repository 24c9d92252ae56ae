package adapter

import emucore "github.com/user-none/goretro/api"

// Compile-time interface check.
var _ emucore.Frame = (*Frame)(nil)

// Frame is the handle passed to Core.RunFrame. It is created for one Run
// call and must not be used after that call returns.
type Frame struct {
	videoRefresh VideoRefreshFunc
	audioBatch   AudioSampleBatchFunc
	inputState   InputStateFunc

	width     uint
	height    uint
	maxWidth  uint
	maxHeight uint
	bpp       int

	resized       bool
	videoUploaded bool
	samples       int
	closed        bool
}

func newFrame(cb *Callbacks, config *emucore.VideoAudioConfig) *Frame {
	return &Frame{
		videoRefresh: cb.VideoRefresh,
		audioBatch:   cb.AudioSampleBatch,
		inputState:   cb.InputState,
		width:        config.Width(),
		height:       config.Height(),
		maxWidth:     config.MaxWidth(),
		maxHeight:    config.MaxHeight(),
		bpp:          config.PixelFormat().BytesPerPixel(),
	}
}

func (f *Frame) checkOpen() {
	if f.closed {
		violate("frame handle used after RunFrame returned")
	}
}

// SetVideoSize changes the base geometry starting with this frame.
func (f *Frame) SetVideoSize(width, height uint) {
	f.checkOpen()
	if f.videoUploaded {
		violate("SetVideoSize called after UploadVideoFrame")
	}
	if width == 0 || height == 0 || width > f.maxWidth || height > f.maxHeight {
		violate("video size %dx%d outside 1x1 to %dx%d", width, height, f.maxWidth, f.maxHeight)
	}
	if width == f.width && height == f.height {
		return
	}
	f.width, f.height = width, height
	f.resized = true
}

// Resized reports whether SetVideoSize changed the geometry.
func (f *Frame) Resized() bool {
	return f.resized
}

// UploadVideoFrame sends one frame to the frontend.
func (f *Frame) UploadVideoFrame(data []byte) {
	f.checkOpen()
	if f.videoUploaded {
		violate("UploadVideoFrame may only be called once per frame")
	}
	pitch := int(f.width) * f.bpp
	need := pitch * int(f.height)
	if len(data) < need {
		violate("video frame is %d bytes, need at least %d for %dx%d", len(data), need, f.width, f.height)
	}
	f.videoUploaded = true
	f.videoRefresh(data, f.width, f.height, pitch)
}

// UploadAudioFrame sends interleaved stereo samples to the frontend.
func (f *Frame) UploadAudioFrame(samples []int16) {
	f.checkOpen()
	if len(samples)%2 != 0 {
		violate("audio must be interleaved stereo, got %d samples", len(samples))
	}
	f.samples += len(samples)
	if len(samples) == 0 {
		return
	}
	f.audioBatch(samples)
}

// IsJoypadButtonPressed queries a RetroPad button on port.
func (f *Frame) IsJoypadButtonPressed(port uint, button emucore.JoypadButton) bool {
	f.checkOpen()
	id, ok := JoypadDeviceID(button)
	if !ok {
		return false
	}
	return f.inputState(port, DeviceJoypad, 0, id) == 1
}

// InputState queries an arbitrary input.
func (f *Frame) InputState(port, device, index, id uint) int16 {
	f.checkOpen()
	return f.inputState(port, device, index, id)
}

// SamplesUploaded returns the number of int16 audio values uploaded so far.
func (f *Frame) SamplesUploaded() int {
	return f.samples
}

// VideoUploaded reports whether a video frame was uploaded.
func (f *Frame) VideoUploaded() bool {
	return f.videoUploaded
}

func (f *Frame) close() {
	f.closed = true
}
