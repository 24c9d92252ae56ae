package emucore

// Region represents a console video timing standard. The numeric values
// match the libretro RETRO_REGION_* identifiers.
type Region int

const (
	RegionNTSC Region = iota
	RegionPAL
)

// String returns the display name of the region.
func (r Region) String() string {
	switch r {
	case RegionNTSC:
		return "NTSC"
	case RegionPAL:
		return "PAL"
	default:
		return "Unknown"
	}
}

// ntscThresholdFPS separates 59.94/60 Hz systems from 50 Hz ones.
const ntscThresholdFPS = 59.0

// RegionForFPS returns NTSC for frame rates above 59 Hz and PAL otherwise.
func RegionForFPS(fps float64) Region {
	if fps > ntscThresholdFPS {
		return RegionNTSC
	}
	return RegionPAL
}
