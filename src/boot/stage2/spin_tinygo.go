//go:build tinygo && rpi

package stage2

import (
	arm64 "eos/src/hardware/arm-cortex-a53"
)

func spin() { arm64.Nop() }
