package adapter

import (
	"sync"

	emucore "github.com/user-none/goretro/api"
)

// Environment is the frontend's generic query and negotiation channel.
// Every method reports false when the frontend does not support the
// request.
type Environment interface {
	// SetPixelFormat negotiates the framebuffer format.
	SetPixelFormat(format emucore.PixelFormat) bool

	// SystemDirectory returns the frontend's system (BIOS) directory.
	SystemDirectory() (string, bool)

	// SaveDirectory returns the frontend's save directory.
	SaveDirectory() (string, bool)

	// LogInterface returns the frontend's log callback.
	LogInterface() (HostLogFunc, bool)

	// SetVariables declares the frontend options.
	SetVariables(vars []Variable) bool

	// Variable returns the current value of a declared option.
	Variable(key string) (string, bool)

	// VariablesUpdated reports whether any option changed since the last
	// call.
	VariablesUpdated() bool

	// SetGeometry announces a new base geometry within the maximum
	// reported by SystemAVInfo.
	SetGeometry(g GameGeometry) bool
}

// The environment is process-wide: the frontend installs it before any
// adapter instance exists and queries system info without one.
var environment struct {
	mu      sync.Mutex
	env     Environment
	hostLog HostLogFunc
}

// SetEnvironment installs the frontend environment. A nil value clears it.
func SetEnvironment(env Environment) {
	var hostLog HostLogFunc
	if env != nil {
		if fn, ok := env.LogInterface(); ok {
			hostLog = fn
		}
	}

	environment.mu.Lock()
	environment.env = env
	environment.hostLog = hostLog
	environment.mu.Unlock()
}

// CurrentEnvironment returns the installed environment.
func CurrentEnvironment() (Environment, bool) {
	environment.mu.Lock()
	defer environment.mu.Unlock()
	return environment.env, environment.env != nil
}

// hostLogger returns the frontend log callback, if any.
func hostLogger() (HostLogFunc, bool) {
	environment.mu.Lock()
	defer environment.mu.Unlock()
	return environment.hostLog, environment.hostLog != nil
}

// SystemDirectory returns the frontend's system directory. A missing
// environment or an unsupported query reports false.
func SystemDirectory() (string, bool) {
	env, ok := CurrentEnvironment()
	if !ok {
		return "", false
	}
	dir, ok := env.SystemDirectory()
	if !ok || dir == "" {
		return "", false
	}
	return dir, true
}

// SaveDirectory returns the frontend's save directory.
func SaveDirectory() (string, bool) {
	env, ok := CurrentEnvironment()
	if !ok {
		return "", false
	}
	dir, ok := env.SaveDirectory()
	if !ok || dir == "" {
		return "", false
	}
	return dir, true
}
