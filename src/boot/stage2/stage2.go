// Package stage2 is the first Go code to run on the board. It works out
// which Raspberry Pi it is on, says hello on UART0 and then blinks three
// LEDs for ever. If the board is not one it knows it stops dead: without a
// peripheral base there is no UART to complain on.
package stage2

import (
	"fmt"

	arm64 "eos/src/hardware/arm-cortex-a53"
	"eos/src/hardware/bcm2835"
	"eos/src/hardware/mmio"
	"eos/src/hardware/rpi"
)

const Banner = "EOS 1.2 (c) 2020-2021 by Elmer Hoeksema"

type State int

const (
	StateInit State = iota
	StateHalt
	StateBoardReady
	StateBanner
	StateBlink
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateHalt:
		return "halt"
	case StateBoardReady:
		return "board ready"
	case StateBanner:
		return "banner"
	case StateBlink:
		return "blink"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Halter stops the machine. On hardware Halt never returns.
type Halter interface {
	Halt()
}

// Transition is handed to Machine.Observe on every state change.
type Transition struct {
	State State
	Entry arm64.EntryState
	Board rpi.Board //zero until the board is known
}

// Machine is everything stage 2 needs from the outside world.
type Machine struct {
	Bus    mmio.Bus
	Delay  Delayer //nil means SpinDelay(DefaultDelay)
	Halter Halter

	BlinkCycles int //0 blinks for ever
	Observe     func(Transition)
}

func (m *Machine) enter(s State, entry arm64.EntryState, board rpi.Board) {
	if m.Observe != nil {
		m.Observe(Transition{State: s, Entry: entry, Board: board})
	}
}

func (m *Machine) halt(entry arm64.EntryState, board rpi.Board) {
	m.enter(StateHalt, entry, board)
	if m.Halter != nil {
		m.Halter.Halt()
	}
}

// Stage2 runs the whole bring-up. On hardware it does not return. The
// returned state is always StateHalt; the board is zero when the
// identifier was not recognized.
func Stage2(entry arm64.EntryState, m Machine) (rpi.Board, State) {
	m.enter(StateInit, entry, rpi.Board{})

	board, err := rpi.Identify(entry.BoardID)
	if err != nil {
		m.halt(entry, rpi.Board{})
		return rpi.Board{}, StateHalt
	}
	m.enter(StateBoardReady, entry, board)
	p := bcm2835.New(m.Bus, board)

	m.enter(StateBanner, entry, board)
	ClearScreen(p.UART0)
	p.UART0.WriteLine(Banner)

	m.enter(StateBlink, entry, board)
	delay := m.Delay
	if delay == nil {
		delay = SpinDelay(DefaultDelay)
	}
	ConfigureLEDs(p.GPIO)
	blinker := &Blinker{Out: p.GPIO, Delay: delay, Cycles: m.BlinkCycles}
	blinker.Run()

	// only reachable when the blink loop is bounded
	m.halt(entry, board)
	return board, StateHalt
}
