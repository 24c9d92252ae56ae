package testpattern

import (
	"strconv"

	emucore "github.com/user-none/goretro/api"
)

// Option keys.
const (
	optionLines  = "lines"
	optionScroll = "scroll"
)

// Visible line counts offered to the frontend.
const (
	linesFull     = ScreenHeight
	linesOverscan = 224
)

var options = []emucore.CoreOption{
	{
		Key:     optionLines,
		Label:   "Visible lines",
		Type:    emucore.CoreOptionSelect,
		Default: strconv.Itoa(linesFull),
		Values:  []string{strconv.Itoa(linesFull), strconv.Itoa(linesOverscan)},
	},
	{
		Key:     optionScroll,
		Label:   "Scroll speed",
		Type:    emucore.CoreOptionSelect,
		Default: strconv.Itoa(scrollStep),
		Values:  []string{"1", "2", "4", "8"},
	},
}

// SetOption applies a frontend option. Unknown keys and values are logged
// and ignored.
func (c *Core) SetOption(key, value string) {
	n, err := strconv.Atoi(value)
	switch {
	case err != nil:
	case key == optionLines && (n == linesFull || n == linesOverscan):
		c.lines = uint(n)
		c.log.Debug("visible lines", "lines", n)
		return
	case key == optionScroll && n > 0:
		c.scroll = n
		return
	}
	c.log.Warn("ignoring option", "key", key, "value", value)
}

// SetRegion replaces the region shown in the banner.
func (c *Core) SetRegion(region emucore.Region) {
	c.region = region
}
