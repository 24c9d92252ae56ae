// Package libretro exports the libretro C ABI for a Go core. A c-shared
// main package registers its core factory from init and otherwise stays
// empty:
//
//	func init() { libretro.Register(&mycore.Factory{}) }
//	func main() {}
package libretro

/*
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"
import (
	"sync"
	"unsafe"

	"github.com/user-none/goretro/adapter"
	emucore "github.com/user-none/goretro/api"
	"github.com/user-none/goretro/config"
)

var (
	factory emucore.CoreFactory

	// System info strings are handed to the frontend by pointer and must
	// stay valid for the life of the process.
	sysStrings struct {
		once    sync.Once
		name    *C.char
		version *C.char
		exts    *C.char
	}

	pins = newRegionPins()
)

// Register sets the CoreFactory used by the libretro entry points.
// Must be called during init() before any retro_* function runs.
func Register(f emucore.CoreFactory) {
	factory = f
}

func registeredFactory() emucore.CoreFactory {
	if factory == nil {
		panic(&adapter.ContractViolation{Msg: "no core registered; call libretro.Register from init"})
	}
	return factory
}

//export retro_set_environment
func retro_set_environment(cb C.retro_environment_t) {
	C._retro_set_environment(cb)
	if cb == nil {
		C._retro_set_log(nil)
		adapter.SetEnvironment(nil)
		return
	}

	var logIf C.struct_retro_log_callback
	if C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_LOG_INTERFACE, unsafe.Pointer(&logIf)) {
		C._retro_set_log(logIf.log)
	} else {
		C._retro_set_log(nil)
	}
	adapter.SetEnvironment(hostEnvironment{})
	if !adapter.DeclareOptions(registeredFactory()) {
		adapter.Logger().Debug("frontend does not take core options")
	}
}

//export retro_set_video_refresh
func retro_set_video_refresh(cb C.retro_video_refresh_t) {
	a := adapter.Current()
	C._retro_set_video_refresh(cb)
	if cb == nil {
		a.SetVideoRefresh(nil)
		return
	}
	a.SetVideoRefresh(videoRefresh)
}

//export retro_set_audio_sample
func retro_set_audio_sample(cb C.retro_audio_sample_t) {
	a := adapter.Current()
	C._retro_set_audio_sample(cb)
	if cb == nil {
		a.SetAudioSample(nil)
		return
	}
	a.SetAudioSample(audioSample)
}

//export retro_set_audio_sample_batch
func retro_set_audio_sample_batch(cb C.retro_audio_sample_batch_t) {
	a := adapter.Current()
	C._retro_set_audio_sample_batch(cb)
	if cb == nil {
		a.SetAudioSampleBatch(nil)
		return
	}
	a.SetAudioSampleBatch(audioSampleBatch)
}

//export retro_set_input_poll
func retro_set_input_poll(cb C.retro_input_poll_t) {
	a := adapter.Current()
	C._retro_set_input_poll(cb)
	if cb == nil {
		a.SetInputPoll(nil)
		return
	}
	a.SetInputPoll(inputPoll)
}

//export retro_set_input_state
func retro_set_input_state(cb C.retro_input_state_t) {
	a := adapter.Current()
	C._retro_set_input_state(cb)
	if cb == nil {
		a.SetInputState(nil)
		return
	}
	a.SetInputState(inputState)
}

//export retro_init
func retro_init() {
	applyConfig()
	adapter.Init(registeredFactory())
}

//export retro_deinit
func retro_deinit() {
	adapter.Deinit()
	pins.release()
}

//export retro_api_version
func retro_api_version() C.uint {
	return C.RETRO_API_VERSION
}

//export retro_get_system_info
func retro_get_system_info(info *C.struct_retro_system_info) {
	si := adapter.DescribeSystem(registeredFactory())
	sysStrings.once.Do(func() {
		sysStrings.name = C.CString(si.LibraryName)
		sysStrings.version = C.CString(si.LibraryVersion)
		sysStrings.exts = C.CString(si.ValidExtensions)
	})

	info.library_name = sysStrings.name
	info.library_version = sysStrings.version
	info.valid_extensions = sysStrings.exts
	info.need_fullpath = C.bool(si.NeedFullPath)
	info.block_extract = C.bool(si.BlockExtract)
}

//export retro_get_system_av_info
func retro_get_system_av_info(info *C.struct_retro_system_av_info) {
	av := adapter.Current().SystemAVInfo()

	fillGeometry(&info.geometry, av.Geometry)
	info.timing.fps = C.double(av.Timing.FPS)
	info.timing.sample_rate = C.double(av.Timing.SampleRate)
}

//export retro_set_controller_port_device
func retro_set_controller_port_device(port C.uint, device C.uint) {
	adapter.Current().SetControllerPortDevice(uint(port), uint(device))
}

//export retro_reset
func retro_reset() {
	adapter.Current().Reset()
}

//export retro_run
func retro_run() {
	adapter.Current().Run()
}

//export retro_serialize_size
func retro_serialize_size() C.size_t {
	return C.size_t(adapter.Current().SerializeSize())
}

//export retro_serialize
func retro_serialize(data unsafe.Pointer, size C.size_t) C.bool {
	a := adapter.Current()
	if data == nil {
		return C.bool(false)
	}
	return C.bool(a.Serialize(unsafe.Slice((*byte)(data), int(size))))
}

//export retro_unserialize
func retro_unserialize(data unsafe.Pointer, size C.size_t) C.bool {
	a := adapter.Current()
	if data == nil {
		return C.bool(false)
	}
	return C.bool(a.Unserialize(unsafe.Slice((*byte)(data), int(size))))
}

//export retro_cheat_reset
func retro_cheat_reset() {
	adapter.Current().CheatReset()
}

//export retro_cheat_set
func retro_cheat_set(index C.uint, enabled C.bool, code *C.char) {
	var s string
	if code != nil {
		s = C.GoString(code)
	}
	adapter.Current().CheatSet(uint(index), bool(enabled), s)
}

//export retro_load_game
func retro_load_game(game *C.struct_retro_game_info) C.bool {
	a := adapter.Current()
	return C.bool(a.LoadGame(gameInfo(game)))
}

//export retro_load_game_special
func retro_load_game_special(gameType C.uint, info *C.struct_retro_game_info, numInfo C.size_t) C.bool {
	a := adapter.Current()
	var infos []adapter.GameInfo
	if info != nil {
		for _, g := range unsafe.Slice(info, int(numInfo)) {
			infos = append(infos, *gameInfo(&g))
		}
	}
	return C.bool(a.LoadGameSpecial(uint(gameType), infos))
}

//export retro_unload_game
func retro_unload_game() {
	adapter.Current().UnloadGame()
	pins.release()
}

//export retro_get_region
func retro_get_region() C.uint {
	return C.uint(hostRegion(adapter.Current().Region()))
}

//export retro_get_memory_data
func retro_get_memory_data(id C.uint) unsafe.Pointer {
	kind := emucore.MemoryKind(id)
	data := adapter.Current().MemoryData(kind)
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(pins.pin(kind, data))
}

//export retro_get_memory_size
func retro_get_memory_size(id C.uint) C.size_t {
	return C.size_t(adapter.Current().MemorySize(emucore.MemoryKind(id)))
}

// gameInfo views the frontend's game description without copying. A nil
// pointer yields nil, which the adapter treats as "no game".
func gameInfo(game *C.struct_retro_game_info) *adapter.GameInfo {
	if game == nil {
		return nil
	}
	var path, meta string
	if game.path != nil {
		path = C.GoString(game.path)
	}
	if game.meta != nil {
		meta = C.GoString(game.meta)
	}
	return newGameInfo(path, game.data, int(game.size), meta)
}

// applyConfig reads the adapter settings from the frontend's system
// directory, if it has one.
func applyConfig() {
	cfg := config.Default()
	if dir, ok := adapter.SystemDirectory(); ok {
		c, err := config.Load(dir, config.Name)
		if err != nil {
			adapter.Logger().Warn("using default settings", "err", err)
		}
		cfg = c
	}
	adapter.SetLogLevel(cfg.Log.Level)
	adapter.SetHostLogging(cfg.Log.Host)
}
