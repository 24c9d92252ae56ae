package adapter

import emucore "github.com/user-none/goretro/api"

// SystemInfo is the static library description reported to the frontend.
type SystemInfo struct {
	LibraryName     string
	LibraryVersion  string
	ValidExtensions string
	NeedFullPath    bool
	BlockExtract    bool
}

// GameGeometry describes the video dimensions of the loaded game.
type GameGeometry struct {
	BaseWidth   uint
	BaseHeight  uint
	MaxWidth    uint
	MaxHeight   uint
	AspectRatio float32 // 0 lets the frontend derive it from the dimensions
}

// SystemTiming describes the frame and audio rates of the loaded game.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo is the audio/video description reported to the frontend.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// GameInfo is the game description supplied by the frontend. Data aliases
// frontend memory and is only valid during LoadGame.
type GameInfo struct {
	Path string
	Data []byte
	Meta string
}

func systemInfoFrom(d *emucore.CoreDescriptor) SystemInfo {
	return SystemInfo{
		LibraryName:     d.Name(),
		LibraryVersion:  d.Version(),
		ValidExtensions: d.ValidExtensions(),
		NeedFullPath:    d.NeedFullPath(),
		BlockExtract:    d.BlockExtract(),
	}
}

func avInfoFrom(c *emucore.VideoAudioConfig) SystemAVInfo {
	aspect, _ := c.AspectRatioOverride()
	return SystemAVInfo{
		Geometry: GameGeometry{
			BaseWidth:   c.Width(),
			BaseHeight:  c.Height(),
			MaxWidth:    c.MaxWidth(),
			MaxHeight:   c.MaxHeight(),
			AspectRatio: aspect,
		},
		Timing: SystemTiming{
			FPS:        c.FPS(),
			SampleRate: c.SampleRate(),
		},
	}
}
