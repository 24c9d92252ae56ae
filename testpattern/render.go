package testpattern

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	emucore "github.com/user-none/goretro/api"
)

const (
	ScreenWidth  = 320
	ScreenHeight = 240

	bannerHeight = 4*lineHeight + 6
	lineHeight   = 13
	padHeight    = 12
)

var barColors = []color.RGBA{
	{0xC0, 0xC0, 0xC0, 0xFF}, // white
	{0xC0, 0xC0, 0x00, 0xFF}, // yellow
	{0x00, 0xC0, 0xC0, 0xFF}, // cyan
	{0x00, 0xC0, 0x00, 0xFF}, // green
	{0xC0, 0x00, 0xC0, 0xFF}, // magenta
	{0xC0, 0x00, 0x00, 0xFF}, // red
	{0x00, 0x00, 0xC0, 0xFF}, // blue
	{0x10, 0x10, 0x10, 0xFF}, // black
}

var (
	bannerBG  = image.NewUniform(color.RGBA{0x00, 0x00, 0x00, 0xFF})
	padIdle   = image.NewUniform(color.RGBA{0x30, 0x30, 0x30, 0xFF})
	padActive = image.NewUniform(color.RGBA{0xFF, 0xFF, 0xFF, 0xFF})
)

// status is the text shown in the banner.
type status struct {
	name   string
	crc    uint32
	region emucore.Region
	frame  uint64
	tone   float64
	muted  bool
}

func (s status) lines() []string {
	name := s.name
	if name == "" {
		name = "(no game)"
	}
	audio := fmt.Sprintf("%.1f Hz", s.tone)
	if s.muted {
		audio = "muted"
	}
	return []string{
		name,
		fmt.Sprintf("CRC32 %08X  %s", s.crc, s.region),
		fmt.Sprintf("frame %d", s.frame),
		"tone " + audio,
	}
}

// renderer draws the pattern into an RGBA image and converts it to the
// frontend's XRGB8888 framebuffer.
type renderer struct {
	img *image.RGBA
	fb  []byte
}

func newRenderer() *renderer {
	return &renderer{
		img: image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
		fb:  make([]byte, ScreenWidth*ScreenHeight*4),
	}
}

// draw renders one frame of the given height, at most ScreenHeight.
// offset scrolls the bars horizontally and buttons is the joypad state as a
// bit per emucore.JoypadButton.
func (r *renderer) draw(offset int, buttons uint16, st status, height int) []byte {
	barWidth := ScreenWidth / len(barColors)
	for x := 0; x < ScreenWidth; x++ {
		pos := ((x+offset)%ScreenWidth + ScreenWidth) % ScreenWidth
		c := barColors[pos/barWidth%len(barColors)]
		for y := bannerHeight; y < height-padHeight; y++ {
			r.img.SetRGBA(x, y, c)
		}
	}

	draw.Draw(r.img, image.Rect(0, 0, ScreenWidth, bannerHeight), bannerBG, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.White,
		Face: basicfont.Face7x13,
	}
	for i, line := range st.lines() {
		d.Dot = fixed.P(4, (i+1)*lineHeight)
		d.DrawString(line)
	}

	padWidth := ScreenWidth / 16
	for b := 0; b < 16; b++ {
		src := padIdle
		if buttons&(1<<b) != 0 {
			src = padActive
		}
		rect := image.Rect(b*padWidth+1, height-padHeight+1, (b+1)*padWidth-1, height-1)
		draw.Draw(r.img, image.Rect(b*padWidth, height-padHeight, (b+1)*padWidth, height), bannerBG, image.Point{}, draw.Src)
		draw.Draw(r.img, rect, src, image.Point{}, draw.Src)
	}

	convertRGBAToXRGB8888(r.img.Pix, r.fb, ScreenWidth*height)
	return r.fb[:ScreenWidth*height*4]
}

// convertRGBAToXRGB8888 converts RGBA pixels to XRGB8888 format.
func convertRGBAToXRGB8888(src, dst []byte, pixels int) {
	for i := 0; i < pixels; i++ {
		srcIdx := i * 4
		dstIdx := i * 4
		dst[dstIdx+0] = src[srcIdx+2] // B
		dst[dstIdx+1] = src[srcIdx+1] // G
		dst[dstIdx+2] = src[srcIdx+0] // R
		dst[dstIdx+3] = 0xFF          // X
	}
}
