package adapter

import emucore "github.com/user-none/goretro/api"

// memoryRegion returns the core's buffer for kind, or nil when the core
// does not expose it.
func (a *Adapter) memoryRegion(kind emucore.MemoryKind) []byte {
	switch kind {
	case emucore.MemorySaveRAM:
		if m, ok := a.core.(emucore.SaveMemoryExposer); ok {
			return m.SaveMemory()
		}
	case emucore.MemoryRTC:
		if m, ok := a.core.(emucore.RTCMemoryExposer); ok {
			return m.RTCMemory()
		}
	case emucore.MemorySystemRAM:
		if m, ok := a.core.(emucore.SystemMemoryExposer); ok {
			return m.SystemMemory()
		}
	case emucore.MemoryVideoRAM:
		if m, ok := a.core.(emucore.VideoMemoryExposer); ok {
			return m.VideoMemory()
		}
	default:
		a.log.Debug("unknown memory kind requested", "kind", uint(kind))
	}
	return nil
}

// MemoryData returns the buffer the core exposes for kind. An empty
// buffer is reported as nil.
func (a *Adapter) MemoryData(kind emucore.MemoryKind) []byte {
	buf := a.memoryRegion(kind)
	if len(buf) == 0 {
		return nil
	}
	return buf
}

// MemorySize returns the size of the buffer the core exposes for kind.
func (a *Adapter) MemorySize(kind emucore.MemoryKind) int {
	return len(a.memoryRegion(kind))
}
