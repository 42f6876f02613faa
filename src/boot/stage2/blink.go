package stage2

import (
	"eos/src/hardware/bcm2835"
)

//LED wiring on the EOS board
const (
	GreenPin  = 2
	OrangePin = 3
	RedPin    = 16
)

// Outputs is a bank of pins driven through separate set and clear
// registers.
type Outputs interface {
	Set(mask uint32)
	Clear(mask uint32)
}

// Phase is one step of the blink cycle. The LEDs are wired active low, so
// the pin in Clear is the one that lights up.
type Phase struct {
	Name  string
	Set   uint32
	Clear uint32
}

var Phases = [3]Phase{
	{Name: "green", Set: 0x00010008, Clear: 0x00000004},
	{Name: "orange", Set: 0x00010004, Clear: 0x00000008},
	{Name: "red", Set: 0x0000000C, Clear: 0x00010000},
}

// ConfigureLEDs makes the three LED pins outputs.
func ConfigureLEDs(g *bcm2835.GPIO) {
	g.FuncSelect(GreenPin, bcm2835.GPIOOutput)
	g.FuncSelect(OrangePin, bcm2835.GPIOOutput)
	g.FuncSelect(RedPin, bcm2835.GPIOOutput)
}

///////////////////////////////////////////////////////////////////////
// Blinker cycles through Phases. Each phase is a set write, a clear
// write and a delay, in that order. Nothing can interrupt it.
///////////////////////////////////////////////////////////////////////
type Blinker struct {
	Out     Outputs
	Delay   Delayer
	Cycles  int //full cycles to run, 0 runs for ever
	OnPhase func(cycle int, p Phase)
}

func (b *Blinker) Run() {
	for n := 0; b.Cycles <= 0 || n < b.Cycles; n++ {
		for _, p := range Phases {
			b.Out.Set(p.Set)
			b.Out.Clear(p.Clear)
			if b.OnPhase != nil {
				b.OnPhase(n, p)
			}
			b.Delay.Delay()
		}
	}
}
