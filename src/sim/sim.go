// Package sim has host side models of the peripherals stage 2 talks to.
// They are mapped into an mmio.Space at the same addresses the board uses,
// so the code under test cannot tell it is not on hardware.
package sim

import (
	"io"

	"eos/src/hardware/bcm2835"
	"eos/src/hardware/mmio"
	"eos/src/hardware/rpi"
)

type Board struct {
	Board rpi.Board
	Space *mmio.Space
	UART0 *UART0
	GPIO  *GPIO
}

// NewBoard maps a UART0 and a GPIO model for board into space. Transmitted
// bytes are copied to out (which may be nil).
func NewBoard(space *mmio.Space, board rpi.Board, out io.Writer) *Board {
	u := NewUART0(out)
	uart := board.UART0Base()
	space.Map(uart+bcm2835.UARTData, u.DataRegister())
	space.Map(uart+bcm2835.UARTFlag, u.FlagRegister())

	g := NewGPIO()
	gpio := board.GPIOBase()
	space.Map(gpio+bcm2835.GPSET0, g.SetRegister())
	space.Map(gpio+bcm2835.GPCLR0, g.ClearRegister())
	space.Map(gpio+bcm2835.GPLEV0, g.LevelRegister())

	return &Board{Board: board, Space: space, UART0: u, GPIO: g}
}
