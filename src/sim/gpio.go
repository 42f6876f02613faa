package sim

import (
	"sync"

	"eos/src/hardware/mmio"
)

// GPIO models bank 0 of the output side of the gpio block: GPSET0 and
// GPCLR0 are write only and move the level seen in GPLEV0. Function select
// registers are left to the plain cells of the space.
type GPIO struct {
	mu       sync.Mutex
	level    uint32
	onChange func(level uint32)
}

func NewGPIO() *GPIO { return &GPIO{} }

// OnChange is called (outside the model's lock) after every set or clear.
func (g *GPIO) OnChange(f func(level uint32)) {
	g.mu.Lock()
	g.onChange = f
	g.mu.Unlock()
}

func (g *GPIO) Level() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.level
}

func (g *GPIO) SetRegister() mmio.Register   { return gpioWriteOnly{g, true} }
func (g *GPIO) ClearRegister() mmio.Register { return gpioWriteOnly{g, false} }
func (g *GPIO) LevelRegister() mmio.Register { return gpioLevel{g} }

type gpioWriteOnly struct {
	g   *GPIO
	set bool
}

func (r gpioWriteOnly) Read() uint32 { return 0 }

func (r gpioWriteOnly) Write(v uint32) {
	g := r.g
	g.mu.Lock()
	if r.set {
		g.level |= v
	} else {
		g.level &^= v
	}
	level, f := g.level, g.onChange
	g.mu.Unlock()
	if f != nil {
		f(level)
	}
}

type gpioLevel struct{ g *GPIO }

func (r gpioLevel) Read() uint32   { return r.g.Level() }
func (r gpioLevel) Write(v uint32) {}
