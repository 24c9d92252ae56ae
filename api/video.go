package emucore

// PixelFormat is a framebuffer encoding negotiated with the frontend. The
// numeric values match RETRO_PIXEL_FORMAT_*.
type PixelFormat int

const (
	PixelFormatARGB1555 PixelFormat = iota
	PixelFormatARGB8888
	PixelFormatRGB565
)

// String returns the name of the pixel format.
func (p PixelFormat) String() string {
	switch p {
	case PixelFormatARGB1555:
		return "ARGB1555"
	case PixelFormatARGB8888:
		return "ARGB8888"
	case PixelFormatRGB565:
		return "RGB565"
	default:
		return "Unknown"
	}
}

// BytesPerPixel returns the size of one pixel in the format.
func (p PixelFormat) BytesPerPixel() int {
	if p == PixelFormatARGB8888 {
		return 4
	}
	return 2
}

// VideoAudioConfig describes the video geometry, timing and audio rate a
// core produces for a loaded game. The maximum dimensions never drop below
// the base dimensions.
type VideoAudioConfig struct {
	width       uint
	height      uint
	maxWidth    uint
	maxHeight   uint
	fps         float64
	sampleRate  float64
	aspectRatio *float32
	pixelFormat PixelFormat
	region      *Region
}

// NewVideoAudioConfig returns an empty configuration using RGB565.
func NewVideoAudioConfig() *VideoAudioConfig {
	return &VideoAudioConfig{pixelFormat: PixelFormatRGB565}
}

// Video sets the base geometry, frame rate and pixel format. The maximum
// geometry grows to cover the new base size.
func (c *VideoAudioConfig) Video(width, height uint, fps float64, format PixelFormat) *VideoAudioConfig {
	c.width = width
	c.height = height
	c.maxWidth = max(c.maxWidth, width)
	c.maxHeight = max(c.maxHeight, height)
	c.fps = fps
	c.pixelFormat = format
	return c
}

// MaxVideoSize grows the maximum geometry without touching the base size.
func (c *VideoAudioConfig) MaxVideoSize(width, height uint) *VideoAudioConfig {
	c.maxWidth = max(c.maxWidth, width)
	c.maxHeight = max(c.maxHeight, height)
	return c
}

// AspectRatio overrides the display aspect ratio.
func (c *VideoAudioConfig) AspectRatio(ratio float32) *VideoAudioConfig {
	c.aspectRatio = &ratio
	return c
}

// Audio sets the output sample rate in Hz.
func (c *VideoAudioConfig) Audio(sampleRate float64) *VideoAudioConfig {
	c.sampleRate = sampleRate
	return c
}

// Region forces the reported region regardless of frame rate.
func (c *VideoAudioConfig) Region(region Region) *VideoAudioConfig {
	c.region = &region
	return c
}

// InferRegion returns the explicit region when one was set, otherwise it
// derives one from the frame rate.
func (c *VideoAudioConfig) InferRegion() Region {
	if c.region != nil {
		return *c.region
	}
	return RegionForFPS(c.fps)
}

func (c *VideoAudioConfig) Width() uint              { return c.width }
func (c *VideoAudioConfig) Height() uint             { return c.height }
func (c *VideoAudioConfig) MaxWidth() uint           { return c.maxWidth }
func (c *VideoAudioConfig) MaxHeight() uint          { return c.maxHeight }
func (c *VideoAudioConfig) FPS() float64             { return c.fps }
func (c *VideoAudioConfig) SampleRate() float64      { return c.sampleRate }
func (c *VideoAudioConfig) PixelFormat() PixelFormat { return c.pixelFormat }

// AspectRatioOverride returns the explicit aspect ratio, if any.
func (c *VideoAudioConfig) AspectRatioOverride() (float32, bool) {
	if c.aspectRatio == nil {
		return 0, false
	}
	return *c.aspectRatio, true
}

// RegionOverride returns the explicit region, if any.
func (c *VideoAudioConfig) RegionOverride() (Region, bool) {
	if c.region == nil {
		return 0, false
	}
	return *c.region, true
}

// FrameSize returns the number of bytes in one base-size frame.
func (c *VideoAudioConfig) FrameSize() int {
	return int(c.width) * int(c.height) * c.pixelFormat.BytesPerPixel()
}

// DisplayAspectRatio computes the display aspect ratio from the pixel
// dimensions and the pixel aspect ratio.
func DisplayAspectRatio(width, height int, par float64) float64 {
	if height == 0 {
		return 0
	}
	return float64(width) / float64(height) * par
}
