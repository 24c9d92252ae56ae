package adapter

import emucore "github.com/user-none/goretro/api"

// Input device types.
const (
	DeviceNone   = 0
	DeviceJoypad = 1
)

// Joypad device IDs as defined by RETRO_DEVICE_ID_JOYPAD_*.
const (
	JoypadIDB      = 0
	JoypadIDY      = 1
	JoypadIDSelect = 2
	JoypadIDStart  = 3
	JoypadIDUp     = 4
	JoypadIDDown   = 5
	JoypadIDLeft   = 6
	JoypadIDRight  = 7
	JoypadIDA      = 8
	JoypadIDX      = 9
	JoypadIDL      = 10
	JoypadIDR      = 11
	JoypadIDL2     = 12
	JoypadIDR2     = 13
	JoypadIDL3     = 14
	JoypadIDR3     = 15
)

var joypadIDs = map[emucore.JoypadButton]uint{
	emucore.JoypadA:      JoypadIDA,
	emucore.JoypadB:      JoypadIDB,
	emucore.JoypadX:      JoypadIDX,
	emucore.JoypadY:      JoypadIDY,
	emucore.JoypadSelect: JoypadIDSelect,
	emucore.JoypadStart:  JoypadIDStart,
	emucore.JoypadUp:     JoypadIDUp,
	emucore.JoypadDown:   JoypadIDDown,
	emucore.JoypadLeft:   JoypadIDLeft,
	emucore.JoypadRight:  JoypadIDRight,
	emucore.JoypadL1:     JoypadIDL,
	emucore.JoypadL2:     JoypadIDL2,
	emucore.JoypadL3:     JoypadIDL3,
	emucore.JoypadR1:     JoypadIDR,
	emucore.JoypadR2:     JoypadIDR2,
	emucore.JoypadR3:     JoypadIDR3,
}

// JoypadDeviceID maps a RetroPad button to its frontend device ID.
func JoypadDeviceID(button emucore.JoypadButton) (uint, bool) {
	id, ok := joypadIDs[button]
	return id, ok
}
