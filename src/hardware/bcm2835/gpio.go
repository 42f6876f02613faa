package bcm2835

import (
	"github.com/usbarmory/tamago/bits"

	"eos/src/hardware/mmio"
)

//offsets from the gpio base
const (
	GPFSEL0 = 0x00 //function select, 10 pins per register, 3 bits per pin
	GPFSEL1 = 0x04
	GPSET0  = 0x1C //write only
	GPSET1  = 0x20
	GPCLR0  = 0x28 //write only
	GPCLR1  = 0x2C
	GPLEV0  = 0x34
	GPLEV1  = 0x38
)

const GPIOPins = 54 //54 pins on RPI
const pinsPerFuncSelect = 10
const funcSelectMask = 0x7

type GPIOMode uint32 //3 bits wide
const GPIOInput GPIOMode = 0
const GPIOOutput GPIOMode = 1
const GPIOAltFunc5 GPIOMode = 2
const GPIOAltFunc4 GPIOMode = 3
const GPIOAltFunc0 GPIOMode = 4
const GPIOAltFunc1 GPIOMode = 5
const GPIOAltFunc2 GPIOMode = 6
const GPIOAltFunc3 GPIOMode = 7

// GPIO drives the first bank (pins 0-31) of the gpio block. Stage 2 never
// needs the second bank.
type GPIO struct {
	bus  mmio.Bus
	base uintptr
}

func NewGPIO(bus mmio.Bus, base uintptr) *GPIO {
	return &GPIO{bus: bus, base: base}
}

func (g *GPIO) Base() uintptr { return g.base }

// FuncSelectRegister is the absolute address of the function select
// register holding pin.
func (g *GPIO) FuncSelectRegister(pin uint8) uintptr {
	return g.base + GPFSEL0 + uintptr(pin/pinsPerFuncSelect)*4
}

// FuncSelect sets the mode of pin with a read-modify-write that leaves
// the other nine fields of the register alone. Returns false for a pin
// that does not exist.
func (g *GPIO) FuncSelect(pin uint8, mode GPIOMode) bool {
	if pin >= GPIOPins {
		return false
	}
	reg := g.FuncSelectRegister(pin)
	v := g.bus.Get32(reg)
	bits.SetN(&v, int(pin%pinsPerFuncSelect)*3, funcSelectMask, uint32(mode))
	g.bus.Put32(reg, v)
	return true
}

// Mode reads back the function of pin.
func (g *GPIO) Mode(pin uint8) GPIOMode {
	v := g.bus.Get32(g.FuncSelectRegister(pin))
	return GPIOMode(bits.Get(&v, int(pin%pinsPerFuncSelect)*3, funcSelectMask))
}

// Set drives the pins in mask high. Zero bits are a no-op in hardware, so
// this is a plain write, never a read-modify-write.
func (g *GPIO) Set(mask uint32) {
	g.bus.Put32(g.base+GPSET0, mask)
}

// Clear drives the pins in mask low.
func (g *GPIO) Clear(mask uint32) {
	g.bus.Put32(g.base+GPCLR0, mask)
}

func (g *GPIO) Level() uint32 {
	return g.bus.Get32(g.base + GPLEV0)
}
