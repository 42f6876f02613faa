//go:build tinygo && rpi

package main

import (
	"eos/src/boot/stage2"
	arm64 "eos/src/hardware/arm-cortex-a53"
	"eos/src/hardware/bcm2835"
	"eos/src/hardware/mmio"
	"eos/src/hardware/rpi"
)

const prompt = "eos> "

func main() {
	entry := arm64.ReadEntryState()
	board, err := rpi.Identify(entry.BoardID)
	if err != nil {
		arm64.WFEHalter{}.Halt()
	}
	uart := bcm2835.New(mmio.Volatile{}, board).UART0
	stage2.ClearScreen(uart)
	uart.WriteLine(stage2.Banner)
	uart.WriteString(prompt)

	//polled, so nothing to do but wait for the next character
	for {
		ch, _ := uart.ReadByte()
		if ch != 13 {
			uart.WriteByte(ch) //echo it back, so typist can see it
			continue
		}
		uart.WriteCR()
		uart.WriteString(prompt)
	}
}
