package libretro

/*
#include <stdlib.h>
#include "libretro.h"
#include "cfuncs.h"
*/
import "C"
import (
	"unsafe"

	"github.com/user-none/goretro/adapter"
	emucore "github.com/user-none/goretro/api"
)

// Go views of the C callback slots. Each is installed on the adapter only
// while the matching slot holds a frontend function.

func videoRefresh(data []byte, width, height uint, pitch int) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	C.call_video_cb(p, C.uint(width), C.uint(height), C.size_t(pitch))
}

func audioSample(left, right int16) {
	C.call_audio_cb(C.int16_t(left), C.int16_t(right))
}

func audioSampleBatch(samples []int16) int {
	if len(samples) == 0 {
		return 0
	}
	return int(C.call_audio_batch_cb((*C.int16_t)(unsafe.Pointer(&samples[0])), C.size_t(len(samples)/2)))
}

func inputPoll() {
	C.call_input_poll_cb()
}

func inputState(port, device, index, id uint) int16 {
	return int16(C.call_input_state_cb(C.uint(port), C.uint(device), C.uint(index), C.uint(id)))
}

// hostEnvironment answers adapter queries through the frontend's
// environment callback.
type hostEnvironment struct{}

func (hostEnvironment) SetPixelFormat(format emucore.PixelFormat) bool {
	v := C.enum_retro_pixel_format(pixelFormatID(format))
	return bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_PIXEL_FORMAT, unsafe.Pointer(&v)))
}

func (hostEnvironment) SystemDirectory() (string, bool) {
	return directory(C.RETRO_ENVIRONMENT_GET_SYSTEM_DIRECTORY)
}

func (hostEnvironment) SaveDirectory() (string, bool) {
	return directory(C.RETRO_ENVIRONMENT_GET_SAVE_DIRECTORY)
}

func (hostEnvironment) LogInterface() (adapter.HostLogFunc, bool) {
	if !bool(C.has_log_cb()) {
		return nil, false
	}
	return hostLog, true
}

// SetVariables passes the declarations as a nil-terminated array. The
// frontend copies them before the call returns.
func (hostEnvironment) SetVariables(vars []adapter.Variable) bool {
	arr := make([]C.struct_retro_variable, len(vars)+1)
	for i, v := range vars {
		arr[i].key = C.CString(v.Key)
		arr[i].value = C.CString(v.Value)
	}
	defer func() {
		for _, v := range arr[:len(vars)] {
			C.free(unsafe.Pointer(v.key))
			C.free(unsafe.Pointer(v.value))
		}
	}()
	return bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_VARIABLES, unsafe.Pointer(&arr[0])))
}

func (hostEnvironment) Variable(key string) (string, bool) {
	ck := C.CString(key)
	defer C.free(unsafe.Pointer(ck))

	v := C.struct_retro_variable{key: ck}
	if !bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_VARIABLE, unsafe.Pointer(&v))) || v.value == nil {
		return "", false
	}
	return C.GoString(v.value), true
}

func (hostEnvironment) VariablesUpdated() bool {
	var updated C.bool
	if !bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_GET_VARIABLE_UPDATE, unsafe.Pointer(&updated))) {
		return false
	}
	return bool(updated)
}

func (hostEnvironment) SetGeometry(g adapter.GameGeometry) bool {
	var geo C.struct_retro_game_geometry
	fillGeometry(&geo, g)
	return bool(C.call_environ_cb(C.RETRO_ENVIRONMENT_SET_GEOMETRY, unsafe.Pointer(&geo)))
}

func fillGeometry(dst *C.struct_retro_game_geometry, g adapter.GameGeometry) {
	dst.base_width = C.uint(g.BaseWidth)
	dst.base_height = C.uint(g.BaseHeight)
	dst.max_width = C.uint(g.MaxWidth)
	dst.max_height = C.uint(g.MaxHeight)
	dst.aspect_ratio = C.float(g.AspectRatio)
}

func directory(cmd C.uint) (string, bool) {
	var dir *C.char
	if !bool(C.call_environ_cb(cmd, unsafe.Pointer(&dir))) || dir == nil {
		return "", false
	}
	return C.GoString(dir), true
}

func hostLog(level adapter.HostLogLevel, msg string) {
	cs := C.CString(msg)
	defer C.free(unsafe.Pointer(cs))
	C.call_log_cb(C.enum_retro_log_level(level), cs)
}
