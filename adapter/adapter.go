// Package adapter drives an emucore.Core through the libretro lifecycle.
// It owns the frontend callbacks, the negotiated audio/video configuration
// and the cross-frame audio accounting, and enforces the per-frame upload
// contract. All methods run synchronously on the frontend's thread.
package adapter

import (
	"log/slog"

	"github.com/google/uuid"
	emucore "github.com/user-none/goretro/api"
)

// Adapter binds one core instance to the frontend.
type Adapter struct {
	callbacks Callbacks
	core      emucore.Core
	config    *emucore.VideoAudioConfig

	loaded    bool
	gameToken uint64
	nextToken uint64

	options *optionSet
	audio   audioBudget
	log     *slog.Logger
}

// New wraps core in an adapter with no game loaded.
func New(core emucore.Core) *Adapter {
	return &Adapter{
		core:   core,
		config: emucore.NewVideoAudioConfig(),
		log:    Logger(),
	}
}

// Core returns the wrapped core.
func (a *Adapter) Core() emucore.Core {
	return a.core
}

func (a *Adapter) SetVideoRefresh(fn VideoRefreshFunc)         { a.callbacks.VideoRefresh = fn }
func (a *Adapter) SetAudioSample(fn AudioSampleFunc)           { a.callbacks.AudioSample = fn }
func (a *Adapter) SetAudioSampleBatch(fn AudioSampleBatchFunc) { a.callbacks.AudioSampleBatch = fn }
func (a *Adapter) SetInputPoll(fn InputPollFunc)               { a.callbacks.InputPoll = fn }
func (a *Adapter) SetInputState(fn InputStateFunc)             { a.callbacks.InputState = fn }

// Callbacks returns a copy of the registered callbacks.
func (a *Adapter) Callbacks() Callbacks {
	return a.callbacks
}

// GameLoaded reports whether a game is loaded.
func (a *Adapter) GameLoaded() bool {
	return a.loaded
}

// Config returns the current audio/video configuration.
func (a *Adapter) Config() *emucore.VideoAudioConfig {
	return a.config
}

// AudioCarry returns the audio surplus carried into the next frame, in
// int16 values.
func (a *Adapter) AudioCarry() float64 {
	return a.audio.carry
}

// SystemAVInfo projects the current configuration for the frontend.
func (a *Adapter) SystemAVInfo() SystemAVInfo {
	return avInfoFrom(a.config)
}

// LoadGame hands the game to the core. Loading while a game is loaded is a
// contract violation. A core failure is reported as false and leaves the
// adapter unchanged.
func (a *Adapter) LoadGame(info *GameInfo) bool {
	if a.loaded {
		violate("load_game called while a game is already loaded")
	}

	token := a.nextToken + 1
	game := borrowGame(info, token)

	a.refreshOptions(true)
	result := a.core.LoadGame(game)
	if !result.OK() {
		// A failed load hands the game back; anything else is a success
		// reported without a configuration.
		if result.Game().Token() != token {
			violate("core failed a load without returning game image %d", token)
		}
		a.log.Warn("core rejected game", "path", info.path(), "err", result.Err())
		return false
	}

	config := result.Config()
	env, ok := CurrentEnvironment()
	if !ok || !env.SetPixelFormat(config.PixelFormat()) {
		violate("frontend rejected pixel format %v", config.PixelFormat())
	}

	a.nextToken = token
	a.gameToken = token
	a.config = config
	a.loaded = true
	a.audio.reset()
	a.log = Logger().With("session", uuid.NewString())
	a.log.Info("game loaded",
		"path", info.path(),
		"size", len(game.Data()),
		"width", config.Width(),
		"height", config.Height(),
		"fps", config.FPS(),
		"sample_rate", config.SampleRate(),
		"pixel_format", config.PixelFormat(),
		"region", a.Region())
	if _, ok := a.options.regionOverride(); ok {
		a.pushRegion()
	}
	return true
}

// LoadGameSpecial is not supported and always fails.
func (a *Adapter) LoadGameSpecial(gameType uint, infos []GameInfo) bool {
	a.log.Debug("load_game_special is not supported", "type", gameType, "count", len(infos))
	return false
}

// borrowGame builds the core's view of the frontend game without copying.
func borrowGame(info *GameInfo, token uint64) emucore.GameImage {
	if info == nil {
		return emucore.NewGameImage("", nil, token)
	}
	return emucore.NewGameImage(info.Path, info.Data, token)
}

func (info *GameInfo) path() string {
	if info == nil {
		return ""
	}
	return info.Path
}

// Run emulates one frame. The frontend must have registered the input and
// output callbacks and loaded a game first.
func (a *Adapter) Run() {
	if name := a.callbacks.missingForRun(); name != "" {
		violate("run called before the %s callback was registered", name)
	}
	if !a.loaded {
		violate("run called with no game loaded")
	}

	a.callbacks.InputPoll()
	a.refreshOptions(false)

	frame := newFrame(&a.callbacks, a.config)
	a.core.RunFrame(frame)
	frame.close()

	if frame.Resized() {
		a.resize(frame.width, frame.height)
	}
	if !frame.VideoUploaded() {
		a.log.Debug("frame ran without video")
	}
	a.audio.settle(frame.SamplesUploaded(), a.config.SampleRate(), a.config.FPS())
}

// resize moves the base geometry and tells the frontend. The maximum
// geometry reported at load stays fixed.
func (a *Adapter) resize(width, height uint) {
	a.config.Video(width, height, a.config.FPS(), a.config.PixelFormat())
	env, ok := CurrentEnvironment()
	if !ok || !env.SetGeometry(avInfoFrom(a.config).Geometry) {
		a.log.Warn("frontend did not accept geometry change", "width", width, "height", height)
		return
	}
	a.log.Debug("geometry changed", "width", width, "height", height)
}

// Reset forwards a soft reset to the core.
func (a *Adapter) Reset() {
	a.core.Reset()
}

// UnloadGame releases the loaded game and returns the GameImage the core
// hands back. Without a loaded game it returns an empty image and does not
// call the core.
func (a *Adapter) UnloadGame() emucore.GameImage {
	if !a.loaded {
		return emucore.GameImage{}
	}

	game := a.core.UnloadGame()
	if game.Token() != a.gameToken {
		violate("core returned game image %d on unload, loaded %d", game.Token(), a.gameToken)
	}

	a.loaded = false
	a.gameToken = 0
	a.audio.reset()
	a.log.Info("game unloaded")
	a.log = Logger()
	return game
}

// Region returns the region picked in the frontend options, or the region
// of the current configuration when the option is Auto.
func (a *Adapter) Region() emucore.Region {
	if r, ok := a.options.regionOverride(); ok {
		return r
	}
	return a.config.InferRegion()
}

// SetControllerPortDevice is accepted and ignored.
func (a *Adapter) SetControllerPortDevice(port, device uint) {
	a.log.Debug("controller port device ignored", "port", port, "device", device)
}

// SerializeSize returns the save state size, or 0 when the core has no
// save state support.
func (a *Adapter) SerializeSize() int {
	if s, ok := a.core.(emucore.StateSerializer); ok {
		return s.SerializeSize()
	}
	return 0
}

// Serialize writes a save state into dst.
func (a *Adapter) Serialize(dst []byte) bool {
	s, ok := a.core.(emucore.StateSerializer)
	if !ok || len(dst) < s.SerializeSize() {
		return false
	}
	return s.Serialize(dst)
}

// Unserialize restores a save state from src.
func (a *Adapter) Unserialize(src []byte) bool {
	if s, ok := a.core.(emucore.StateSerializer); ok {
		return s.Unserialize(src)
	}
	return false
}

// CheatReset is accepted and ignored.
func (a *Adapter) CheatReset() {}

// CheatSet is accepted and ignored.
func (a *Adapter) CheatSet(index uint, enabled bool, code string) {
	a.log.Debug("cheat ignored", "index", index, "enabled", enabled)
}
