package stage2

import (
	"eos/src/boot/termproto"
	"eos/src/hardware/bcm2835"
)

// ClearScreen uses VT100 commands to clear the screen and move the cursor
// to 0,0.
func ClearScreen(u *bcm2835.UART) {
	u.WriteByte(termproto.ESC)
	u.WriteString(termproto.ClearScreen)
	u.WriteByte(termproto.ESC)
	u.WriteString(termproto.CursorHome)
}
