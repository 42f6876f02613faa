//go:build tinygo && rpi

package main

import (
	"eos/src/boot/stage2"
	arm64 "eos/src/hardware/arm-cortex-a53"
	"eos/src/hardware/mmio"
)

//
// The boot image puts the stack at arm64.InitialStackPointer before any Go
// runs, so the first thing we do here is take the readings stage 2 needs.
// Execution never comes back out of Stage2; the halt below is for the
// day the blink loop learns to stop.
//
func main() {
	entry := arm64.ReadEntryState()
	stage2.Stage2(entry, stage2.Machine{
		Bus:    mmio.Volatile{},
		Delay:  stage2.SpinDelay(stage2.DefaultDelay),
		Halter: arm64.WFEHalter{},
	})
	arm64.WFEHalter{}.Halt()
}
