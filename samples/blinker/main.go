//go:build tinygo && rpi

package main

import (
	"eos/src/boot/stage2"
	arm64 "eos/src/hardware/arm-cortex-a53"
	"eos/src/hardware/bcm2835"
	"eos/src/hardware/mmio"
	"eos/src/hardware/rpi"
)

const periodInSpins = stage2.DefaultDelay / 5

// Just the LEDs, quicker than stage 2 and without the serial line, for
// checking the wiring of a new LED board.
func main() {
	entry := arm64.ReadEntryState()
	board, err := rpi.Identify(entry.BoardID)
	if err != nil {
		arm64.WFEHalter{}.Halt()
	}
	gpio := bcm2835.NewGPIO(mmio.Volatile{}, board.GPIOBase())
	stage2.ConfigureLEDs(gpio)
	bl := &stage2.Blinker{Out: gpio, Delay: stage2.SpinDelay(periodInSpins)}
	bl.Run()
}
