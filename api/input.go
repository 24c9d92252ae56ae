package emucore

// JoypadButton identifies a button on the standard RetroPad.
type JoypadButton int

const (
	JoypadA JoypadButton = iota
	JoypadB
	JoypadX
	JoypadY
	JoypadSelect
	JoypadStart
	JoypadUp
	JoypadDown
	JoypadLeft
	JoypadRight
	JoypadL1
	JoypadL2
	JoypadL3
	JoypadR1
	JoypadR2
	JoypadR3
)

var joypadNames = [...]string{
	JoypadA:      "A",
	JoypadB:      "B",
	JoypadX:      "X",
	JoypadY:      "Y",
	JoypadSelect: "Select",
	JoypadStart:  "Start",
	JoypadUp:     "Up",
	JoypadDown:   "Down",
	JoypadLeft:   "Left",
	JoypadRight:  "Right",
	JoypadL1:     "L1",
	JoypadL2:     "L2",
	JoypadL3:     "L3",
	JoypadR1:     "R1",
	JoypadR2:     "R2",
	JoypadR3:     "R3",
}

func (b JoypadButton) String() string {
	if b < 0 || int(b) >= len(joypadNames) {
		return "Unknown"
	}
	return joypadNames[b]
}
