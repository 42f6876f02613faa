// Package mmio is the one narrow door to memory mapped hardware. Everything
// above it (GPIO, UART, the stage 2 sequencer) only sees a Bus, so the same
// code runs against real registers on the board and against a Space on the
// host.
package mmio

// Bus does 32 bit register accesses at absolute physical addresses.
type Bus interface {
	Get32(addr uintptr) uint32
	Put32(addr uintptr, v uint32)
}
