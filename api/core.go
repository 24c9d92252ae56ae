package emucore

// Core is the contract every emulation core implements. The adapter calls
// it synchronously from the frontend's thread and never concurrently.
type Core interface {
	// LoadGame prepares the core to run game. On success it returns the
	// video and audio configuration for the game; on failure it hands the
	// GameImage back.
	LoadGame(game GameImage) LoadResult

	// UnloadGame releases the current game and returns the GameImage that
	// was passed to LoadGame.
	UnloadGame() GameImage

	// RunFrame emulates one video frame. The frame handle is valid only for
	// the duration of the call.
	RunFrame(frame Frame)

	// Reset performs a soft reset.
	Reset()
}

// LoadResult is the outcome of Core.LoadGame.
type LoadResult struct {
	config *VideoAudioConfig
	game   GameImage
	err    error
}

// LoadSucceeded reports a successful load with the given configuration,
// which must not be nil.
func LoadSucceeded(config *VideoAudioConfig) LoadResult {
	return LoadResult{config: config}
}

// LoadFailed reports a failed load, returning the game and the reason.
func LoadFailed(game GameImage, err error) LoadResult {
	return LoadResult{game: game, err: err}
}

// OK reports whether the load succeeded.
func (r LoadResult) OK() bool { return r.config != nil }

// Config returns the negotiated configuration of a successful load.
func (r LoadResult) Config() *VideoAudioConfig { return r.config }

// Game returns the GameImage handed back by a failed load.
func (r LoadResult) Game() GameImage { return r.game }

// Err returns the failure reason, which may be nil.
func (r LoadResult) Err() error { return r.err }

// Frame is the set of operations legal during Core.RunFrame.
type Frame interface {
	// SetVideoSize changes the base video size from this frame on. It must
	// come before UploadVideoFrame and stay within the maximum geometry of
	// the load configuration.
	SetVideoSize(width, height uint)

	// UploadVideoFrame sends one frame of pixels in the negotiated format.
	// It may be called at most once per frame and data must hold at least
	// width*height*bytesPerPixel bytes.
	UploadVideoFrame(data []byte)

	// UploadAudioFrame sends interleaved stereo samples. len(samples) must
	// be even.
	UploadAudioFrame(samples []int16)

	// IsJoypadButtonPressed queries the joypad on port.
	IsJoypadButtonPressed(port uint, button JoypadButton) bool

	// InputState queries an arbitrary input device.
	InputState(port, device, index, id uint) int16
}

// MemoryKind selects a memory region exposed to the frontend. The values
// match RETRO_MEMORY_*.
type MemoryKind uint

const (
	MemorySaveRAM MemoryKind = iota
	MemoryRTC
	MemorySystemRAM
	MemoryVideoRAM
)

// String returns the name of the memory kind.
func (k MemoryKind) String() string {
	switch k {
	case MemorySaveRAM:
		return "save_ram"
	case MemoryRTC:
		return "rtc"
	case MemorySystemRAM:
		return "system_ram"
	case MemoryVideoRAM:
		return "video_ram"
	default:
		return "unknown"
	}
}

// SaveMemoryExposer exposes battery-backed save RAM. The returned slice is
// written by the frontend directly and must stay at the same address while
// the game is loaded.
type SaveMemoryExposer interface {
	SaveMemory() []byte
}

// RTCMemoryExposer exposes real-time clock state.
type RTCMemoryExposer interface {
	RTCMemory() []byte
}

// SystemMemoryExposer exposes main system RAM.
type SystemMemoryExposer interface {
	SystemMemory() []byte
}

// VideoMemoryExposer exposes video RAM.
type VideoMemoryExposer interface {
	VideoMemory() []byte
}

// StateSerializer enables save states. Cores without it report a zero
// state size and fail every serialize request.
type StateSerializer interface {
	// SerializeSize returns the number of bytes Serialize needs.
	SerializeSize() int

	// Serialize writes the state into dst.
	Serialize(dst []byte) bool

	// Unserialize restores the state from src.
	Unserialize(src []byte) bool
}
