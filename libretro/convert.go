package libretro

import (
	"runtime"
	"unsafe"

	"github.com/user-none/goretro/adapter"
	emucore "github.com/user-none/goretro/api"
)

// Host enum values, as in libretro.h.
const (
	pixelFormat0RGB1555 = 0
	pixelFormatXRGB8888 = 1
	pixelFormatRGB565   = 2

	regionNTSC = 0
	regionPAL  = 1
)

// newGameInfo builds the adapter's game description. data aliases
// frontend memory; a nil pointer or zero size means no data.
func newGameInfo(path string, data unsafe.Pointer, size int, meta string) *adapter.GameInfo {
	info := &adapter.GameInfo{Path: path, Meta: meta}
	if data != nil && size > 0 {
		info.Data = unsafe.Slice((*byte)(data), size)
	}
	return info
}

func pixelFormatID(f emucore.PixelFormat) int {
	switch f {
	case emucore.PixelFormatARGB1555:
		return pixelFormat0RGB1555
	case emucore.PixelFormatARGB8888:
		return pixelFormatXRGB8888
	default:
		return pixelFormatRGB565
	}
}

func hostRegion(r emucore.Region) uint {
	if r == emucore.RegionPAL {
		return regionPAL
	}
	return regionNTSC
}

// regionPins keeps core memory regions handed to the frontend pinned until
// the game is unloaded. Only frontend calls touch it.
type regionPins struct {
	regions map[emucore.MemoryKind]*pinnedRegion
}

type pinnedRegion struct {
	pinner runtime.Pinner
	ptr    *byte
}

func newRegionPins() *regionPins {
	return &regionPins{regions: make(map[emucore.MemoryKind]*pinnedRegion)}
}

// pin pins the first byte of data for kind and returns it. A region that
// moved since the last call has its old memory unpinned.
func (p *regionPins) pin(kind emucore.MemoryKind, data []byte) *byte {
	ptr := &data[0]
	r := p.regions[kind]
	if r == nil {
		r = &pinnedRegion{}
		p.regions[kind] = r
	}
	if r.ptr != ptr {
		r.pinner.Unpin()
		r.pinner.Pin(ptr)
		r.ptr = ptr
	}
	return ptr
}

// pinned reports whether a region of kind is currently pinned.
func (p *regionPins) pinned(kind emucore.MemoryKind) bool {
	r := p.regions[kind]
	return r != nil && r.ptr != nil
}

func (p *regionPins) release() {
	for kind, r := range p.regions {
		r.pinner.Unpin()
		delete(p.regions, kind)
	}
}
