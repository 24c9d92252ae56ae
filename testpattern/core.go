package testpattern

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"log/slog"
	"os"

	"github.com/user-none/goretro/adapter"
	emucore "github.com/user-none/goretro/api"
	"github.com/user-none/goretro/config"
	"github.com/user-none/goretro/rdb"
	"github.com/user-none/goretro/romloader"
)

const (
	SampleRate = 48000
	fpsNTSC    = 60.0
	fpsPAL     = 50.0

	saveRAMSize   = 64
	systemRAMSize = 2048

	scrollStep = 2
)

// Save RAM layout.
const (
	sramMagic    = 0 // 4 bytes, "TPAT"
	sramLastCRC  = 4 // 4 bytes, CRC32 of the last game loaded
	sramBPresses = 8 // 4 bytes, times B was pressed
)

var sramMagicValue = []byte("TPAT")

// Core draws a scrolling test pattern for whatever ROM it is given. The
// d-pad scrolls and retunes, A mutes, Start resets the tone and B presses
// are counted in save RAM.
type Core struct {
	game   emucore.GameImage
	loaded bool

	name   string
	title  string
	crc    uint32
	region emucore.Region
	fps    float64

	frame   uint64
	offset  int
	buttons uint16

	// Option values. shown is the line count of the current geometry.
	lines  uint
	shown  uint
	scroll int

	tone     *tone
	renderer *renderer

	sram []byte
	wram []byte

	log *slog.Logger
}

// New creates an idle core.
func New() *Core {
	return &Core{
		renderer: newRenderer(),
		sram:     make([]byte, saveRAMSize),
		wram:     make([]byte, systemRAMSize),
		lines:    linesFull,
		scroll:   scrollStep,
		log:      adapter.Logger().With("core", Name),
	}
}

// settings reads the shared config from the frontend's system directory,
// or from its save directory when the system directory has none.
func settings(log *slog.Logger) config.Config {
	for _, lookup := range []func() (string, bool){adapter.SystemDirectory, adapter.SaveDirectory} {
		dir, ok := lookup()
		if !ok {
			continue
		}
		if _, err := os.Stat(config.Path(dir, config.Name)); err != nil {
			continue
		}
		cfg, err := config.Load(dir, config.Name)
		if err != nil {
			log.Warn("using default settings", "err", err)
		}
		return cfg
	}
	return config.Default()
}

// LoadGame resolves the ROM, picks a region and reports the AV config.
// A game with neither path nor data boots the pattern without a ROM.
func (c *Core) LoadGame(game emucore.GameImage) emucore.LoadResult {
	cfg := settings(c.log)

	var rom []byte
	name := ""
	if !game.IsEmpty() {
		loader := romloader.New(romExtensions, cfg.Content.MaxROMSize)
		data, n, err := loader.LoadGame(game)
		if err != nil {
			return emucore.LoadFailed(game, fmt.Errorf("load rom: %w", err))
		}
		rom, name = data, n
	}

	c.game = game
	c.loaded = true
	c.name = name
	c.crc = crc32.ChecksumIEEE(rom)

	avc := emucore.NewVideoAudioConfig()
	region, explicit := emucore.RegionNTSC, false
	c.title = ""
	if g := c.lookupGame(cfg.Content.Database, rom); g != nil {
		region, explicit = g.Region()
		c.title = rdb.GetDisplayName(g.Name)
	}
	c.region = region
	c.fps = fpsNTSC
	if region == emucore.RegionPAL {
		c.fps = fpsPAL
	}
	c.shown = c.lines
	avc.Video(ScreenWidth, c.shown, c.fps, emucore.PixelFormatARGB8888).
		MaxVideoSize(ScreenWidth, ScreenHeight).
		AspectRatio(float32(emucore.DisplayAspectRatio(ScreenWidth, int(c.shown), 1.0))).
		Audio(SampleRate)
	if explicit {
		avc.Region(region)
	}

	c.tone = newTone(SampleRate, c.fps)
	c.resetState()
	c.prepareSaveRAM()

	c.log.Info("pattern ready", "rom", name, "size", len(rom), "crc", fmt.Sprintf("%08X", c.crc), "region", region)
	return emucore.LoadSucceeded(avc)
}

// lookupGame finds rom in the configured game database by CRC32, then by
// MD5. It returns nil without a database or a match.
func (c *Core) lookupGame(path string, rom []byte) *rdb.Game {
	if path == "" || rom == nil {
		return nil
	}
	db, err := rdb.LoadRDB(path)
	if err != nil {
		c.log.Warn("game database unavailable", "path", path, "err", err)
		return nil
	}
	c.log.Debug("game database loaded", "path", path, "games", db.GameCount())

	if g := db.FindROM(rom); g != nil {
		c.log.Debug("game database match", "name", g.Name, "md5", db.GetMD5ByCRC32(c.crc))
		return g
	}
	sum := md5.Sum(rom)
	if g := db.FindByMD5(hex.EncodeToString(sum[:])); g != nil {
		c.log.Debug("game database match by md5", "name", g.Name)
		return g
	}
	return nil
}

// prepareSaveRAM formats save RAM the frontend has not restored yet and
// records the loaded game.
func (c *Core) prepareSaveRAM() {
	if string(c.sram[sramMagic:sramMagic+4]) != string(sramMagicValue) {
		clear(c.sram)
		copy(c.sram[sramMagic:], sramMagicValue)
	}
	binary.LittleEndian.PutUint32(c.sram[sramLastCRC:], c.crc)
}

// RunFrame reads the joypad, draws the pattern and produces one frame of
// audio.
func (c *Core) RunFrame(f emucore.Frame) {
	if !c.loaded {
		return
	}

	prev := c.buttons
	c.buttons = 0
	for b := emucore.JoypadA; b <= emucore.JoypadR3; b++ {
		if f.IsJoypadButtonPressed(0, b) {
			c.buttons |= 1 << b
		}
	}
	pressed := c.buttons &^ prev
	c.handleInput(pressed)

	c.wram[c.frame%systemRAMSize] = byte(c.buttons)

	if c.lines != c.shown {
		f.SetVideoSize(ScreenWidth, c.lines)
		c.shown = c.lines
	}

	name := c.name
	if c.title != "" {
		name = c.title
	}
	st := status{
		name:   name,
		crc:    c.crc,
		region: c.region,
		frame:  c.frame,
		tone:   c.tone.freq,
		muted:  c.tone.muted,
	}
	f.UploadVideoFrame(c.renderer.draw(c.offset, c.buttons, st, int(c.shown)))
	f.UploadAudioFrame(c.tone.next())
	c.frame++
}

func (c *Core) handleInput(pressed uint16) {
	held := c.buttons
	if held&(1<<emucore.JoypadLeft) != 0 {
		c.offset -= c.scroll
	}
	if held&(1<<emucore.JoypadRight) != 0 {
		c.offset += c.scroll
	}
	if pressed&(1<<emucore.JoypadUp) != 0 {
		c.tone.shift(1)
	}
	if pressed&(1<<emucore.JoypadDown) != 0 {
		c.tone.shift(-1)
	}
	if pressed&(1<<emucore.JoypadA) != 0 {
		c.tone.muted = !c.tone.muted
	}
	if pressed&(1<<emucore.JoypadStart) != 0 {
		c.tone.reset()
	}
	if pressed&(1<<emucore.JoypadB) != 0 {
		n := binary.LittleEndian.Uint32(c.sram[sramBPresses:])
		binary.LittleEndian.PutUint32(c.sram[sramBPresses:], n+1)
	}
}

// Reset restarts the pattern without reloading the game.
func (c *Core) Reset() {
	if !c.loaded {
		return
	}
	c.resetState()
	c.log.Debug("pattern reset")
}

func (c *Core) resetState() {
	c.frame = 0
	c.offset = 0
	c.buttons = 0
	c.tone.reset()
	clear(c.wram)
}

// UnloadGame returns the game view received by LoadGame.
func (c *Core) UnloadGame() emucore.GameImage {
	game := c.game
	c.game = emucore.GameImage{}
	c.loaded = false
	c.name = ""
	c.title = ""
	c.crc = 0
	c.tone = nil
	return game
}

// SaveMemory exposes battery-backed save RAM.
func (c *Core) SaveMemory() []byte { return c.sram }

// SystemMemory exposes the input history ring.
func (c *Core) SystemMemory() []byte { return c.wram }

// VideoMemory exposes the last rendered framebuffer.
func (c *Core) VideoMemory() []byte { return c.renderer.fb }

// SavedBPresses returns the B press counter kept in save RAM.
func (c *Core) SavedBPresses() uint32 {
	return binary.LittleEndian.Uint32(c.sram[sramBPresses:])
}
