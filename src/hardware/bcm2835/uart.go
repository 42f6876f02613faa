package bcm2835

import (
	"github.com/usbarmory/tamago/bits"

	"eos/src/hardware/mmio"
)

//
// UART0 is the PL011. Stage 2 uses it polled: no interrupts, no timeouts,
// and it trusts the firmware to have set up baud rate and pins.
//

//offsets from the uart0 base
const (
	UARTData = 0x00
	UARTFlag = 0x18
)

//flag register bits
const (
	FlagReceiveFIFOEmpty = 4
	FlagTransmitFIFOFull = 5
)

type UART struct {
	bus  mmio.Bus
	base uintptr
}

func NewUART(bus mmio.Bus, base uintptr) *UART {
	return &UART{bus: bus, base: base}
}

func (u *UART) Base() uintptr { return u.base }

func (u *UART) flag(bit int) bool {
	fr := u.bus.Get32(u.base + UARTFlag)
	return bits.IsSet(&fr, bit)
}

//
// Writing a byte over serial.  Blocking.
//
func (u *UART) WriteByte(c byte) error {
	// wait until we can send
	for u.flag(FlagTransmitFIFOFull) {
	}
	u.bus.Put32(u.base+UARTData, uint32(c))
	return nil
}

//
// Reading a byte from serial. Blocking.
//
func (u *UART) ReadByte() (byte, error) {
	for u.flag(FlagReceiveFIFOEmpty) {
	}
	return byte(u.bus.Get32(u.base + UARTData)), nil
}

//
// Put a whole string out to serial. Blocking.
//
func (u *UART) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		u.WriteByte(s[i])
	}
}

// WriteCR sends a CR and (secretly) an LF.
func (u *UART) WriteCR() {
	u.WriteByte('\r')
	u.WriteByte('\n')
}

func (u *UART) WriteLine(s string) {
	u.WriteString(s)
	u.WriteCR()
}
