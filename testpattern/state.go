package testpattern

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	stateVersion = 1

	// stateOverhead bounds the encoded size of everything in a snapshot
	// except the RAM images.
	stateOverhead = 256
)

var errNotLoaded = errors.New("no game loaded")

// snapshot is the save state of a loaded core.
type snapshot struct {
	Version int     `msgpack:"v"`
	CRC     uint32  `msgpack:"crc"`
	Frame   uint64  `msgpack:"frame"`
	Offset  int     `msgpack:"offset"`
	Buttons uint16  `msgpack:"buttons"`
	Freq    float64 `msgpack:"freq"`
	Phase   float64 `msgpack:"phase"`
	Surplus float64 `msgpack:"surplus"`
	Muted   bool    `msgpack:"muted"`
	SRAM    []byte  `msgpack:"sram"`
	WRAM    []byte  `msgpack:"wram"`
}

// SerializeSize returns the fixed size of a save state.
func (c *Core) SerializeSize() int {
	return stateOverhead + saveRAMSize + systemRAMSize
}

// Serialize writes the core state into dst, zero padded.
func (c *Core) Serialize(dst []byte) bool {
	data, err := c.marshalState()
	if err != nil {
		c.log.Warn("serialize failed", "err", err)
		return false
	}
	if len(data) > len(dst) {
		c.log.Warn("serialize buffer too small", "need", len(data), "have", len(dst))
		return false
	}
	copy(dst, data)
	clear(dst[len(data):])
	return true
}

// Unserialize restores a state written by Serialize for the same game.
func (c *Core) Unserialize(src []byte) bool {
	if err := c.unmarshalState(src); err != nil {
		c.log.Warn("unserialize failed", "err", err)
		return false
	}
	return true
}

func (c *Core) marshalState() ([]byte, error) {
	if !c.loaded {
		return nil, errNotLoaded
	}
	return msgpack.Marshal(&snapshot{
		Version: stateVersion,
		CRC:     c.crc,
		Frame:   c.frame,
		Offset:  c.offset,
		Buttons: c.buttons,
		Freq:    c.tone.freq,
		Phase:   c.tone.phase,
		Surplus: c.tone.surplus,
		Muted:   c.tone.muted,
		SRAM:    c.sram,
		WRAM:    c.wram,
	})
}

func (c *Core) unmarshalState(src []byte) error {
	if !c.loaded {
		return errNotLoaded
	}

	// Decode a single value; the zero padding after it is ignored.
	var s snapshot
	if err := msgpack.NewDecoder(bytes.NewReader(src)).Decode(&s); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	switch {
	case s.Version != stateVersion:
		return fmt.Errorf("state version %d, want %d", s.Version, stateVersion)
	case s.CRC != c.crc:
		return fmt.Errorf("state is for game %08X, loaded %08X", s.CRC, c.crc)
	case len(s.SRAM) != saveRAMSize || len(s.WRAM) != systemRAMSize:
		return fmt.Errorf("state RAM sizes %d/%d do not match", len(s.SRAM), len(s.WRAM))
	}

	c.frame = s.Frame
	c.offset = s.Offset
	c.buttons = s.Buttons
	c.tone.freq = s.Freq
	c.tone.phase = s.Phase
	c.tone.surplus = s.Surplus
	c.tone.muted = s.Muted
	// Copy in place; the frontend holds pointers to both regions.
	copy(c.sram, s.SRAM)
	copy(c.wram, s.WRAM)
	return nil
}
