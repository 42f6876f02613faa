package bcm2835

import (
	"eos/src/hardware/mmio"
	"eos/src/hardware/rpi"
)

// Peripherals is the set of blocks stage 2 drives, all placed relative to
// the peripheral base of one board.
type Peripherals struct {
	GPIO  *GPIO
	UART0 *UART
}

func New(bus mmio.Bus, board rpi.Board) *Peripherals {
	return &Peripherals{
		GPIO:  NewGPIO(bus, board.GPIOBase()),
		UART0: NewUART(bus, board.UART0Base()),
	}
}
