package stage2

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"eos/src/boot/termproto"
	arm64 "eos/src/hardware/arm-cortex-a53"
	"eos/src/hardware/bcm2835"
	"eos/src/hardware/mmio"
	"eos/src/hardware/rpi"
	"eos/src/sim"
)

type countingHalter struct{ n int }

func (h *countingHalter) Halt() { h.n++ }

type countingDelay struct{ n int }

func (d *countingDelay) Delay() { d.n++ }

func entryFor(id rpi.BoardID) arm64.EntryState {
	return arm64.EntryState{BoardID: id, ExceptionLevel: 2, StackPointer: arm64.InitialStackPointer}
}

// simRun boots stage 2 on a simulated board for one blink cycle.
func simRun(t *testing.T, id rpi.BoardID) (*sim.Board, *bytes.Buffer, []Transition) {
	t.Helper()
	board, err := rpi.Identify(id)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	b := sim.NewBoard(mmio.NewSpace(), board, &out)
	var seen []Transition
	got, st := Stage2(entryFor(id), Machine{
		Bus:         b.Space,
		Delay:       NoDelay,
		Halter:      &countingHalter{},
		BlinkCycles: 1,
		Observe:     func(tr Transition) { seen = append(seen, tr) },
	})
	if st != StateHalt {
		t.Fatalf("expected to end in halt, got %s", st)
	}
	if got.PeripheralBase != board.PeripheralBase {
		t.Fatalf("expected base 0x%08X, got 0x%08X", board.PeripheralBase, got.PeripheralBase)
	}
	return b, &out, seen
}

func TestUnrecognizedBoardHaltsSilently(t *testing.T) {
	for _, id := range []rpi.BoardID{0, 0x0D04, 0x0C07, 0x0D0B, 0xFFF} {
		s := mmio.NewSpace()
		h := &countingHalter{}
		var states []State
		board, st := Stage2(entryFor(id), Machine{
			Bus:     s,
			Delay:   NoDelay,
			Halter:  h,
			Observe: func(tr Transition) { states = append(states, tr.State) },
		})
		if st != StateHalt {
			t.Errorf("0x%04X: expected halt, got %s", uint32(id), st)
		}
		if board.PeripheralBase != 0 {
			t.Errorf("0x%04X: expected no base, got 0x%08X", uint32(id), board.PeripheralBase)
		}
		if h.n != 1 {
			t.Errorf("0x%04X: expected one halt, got %d", uint32(id), h.n)
		}
		if len(s.Trace()) != 0 {
			t.Errorf("0x%04X: expected no register access:\n%s", uint32(id), spew.Sdump(s.Trace()))
		}
		if len(states) != 2 || states[0] != StateInit || states[1] != StateHalt {
			t.Errorf("0x%04X: expected init -> halt, got %v", uint32(id), states)
		}
	}
}

func TestPeripheralBasePerBoard(t *testing.T) {
	checkBase(t, rpi.Pi3ID, 0x3F000000)
	checkBase(t, rpi.Pi4ID, 0xFE000000)
}

func TestStateSequence(t *testing.T) {
	_, _, seen := simRun(t, rpi.Pi3ID)
	want := []State{StateInit, StateBoardReady, StateBanner, StateBlink, StateHalt}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %s", want, spew.Sdump(seen))
	}
	for i, s := range want {
		if seen[i].State != s {
			t.Errorf("transition %d: expected %s but got %s", i, s, seen[i].State)
		}
		if seen[i].Entry.ExceptionLevel != 2 {
			t.Errorf("transition %d: exception level not carried through", i)
		}
	}
	if seen[0].Board.PeripheralBase != 0 {
		t.Errorf("board must not be known at init")
	}
	if seen[1].Board.ID != rpi.Pi3ID {
		t.Errorf("expected pi3 at board ready, got %v", seen[1].Board)
	}
}

func TestSerialOutputIsExact(t *testing.T) {
	for _, id := range []rpi.BoardID{rpi.Pi3ID, rpi.Pi4ID} {
		b, out, _ := simRun(t, id)
		want := append(termproto.ClearAndHome(), Banner+"\r\n"...)
		if !bytes.Equal(out.Bytes(), want) {
			t.Errorf("%s: expected %q but got %q", id, want, out.Bytes())
		}
		if !bytes.Equal(out.Bytes()[:7], []byte{0x1B, '[', '2', 'J', 0x1B, '[', 'H'}) {
			t.Errorf("%s: terminal clear is not the 7 byte sequence: % X", id, out.Bytes()[:7])
		}
		if v := b.UART0.Violations(); len(v) != 0 {
			t.Errorf("%s: uart violations: %v", id, v)
		}
	}
}

func TestTransmitWaitsWhenFIFOFull(t *testing.T) {
	board, _ := rpi.Identify(rpi.Pi4ID)
	var out bytes.Buffer
	b := sim.NewBoard(mmio.NewSpace(), board, &out)
	b.UART0.TXBusy(1000)
	Stage2(entryFor(rpi.Pi4ID), Machine{Bus: b.Space, Delay: NoDelay, BlinkCycles: 1})
	if v := b.UART0.Violations(); len(v) != 0 {
		t.Errorf("uart violations: %v", v)
	}
	if out.String() != string(termproto.ClearAndHome())+Banner+"\r\n" {
		t.Errorf("output damaged while fifo was full: %q", out.String())
	}
}

func TestLEDConfigurationPreservesOtherPins(t *testing.T) {
	board, _ := rpi.Identify(rpi.Pi3ID)
	s := mmio.NewSpace()
	sim.NewBoard(s, board, nil)
	fsel0 := board.GPIOBase() + bcm2835.GPFSEL0
	fsel1 := board.GPIOBase() + bcm2835.GPFSEL1
	const before0, before1 = 0xA5A5A5A5, 0x5A5A5A5A
	s.Poke(fsel0, before0)
	s.Poke(fsel1, before1)

	g := bcm2835.NewGPIO(s, board.GPIOBase())
	ConfigureLEDs(g)

	for _, pin := range []uint8{GreenPin, OrangePin, RedPin} {
		if m := g.Mode(pin); m != bcm2835.GPIOOutput {
			t.Errorf("pin %d: expected output, got mode %d", pin, m)
		}
	}
	// fields for pins 2 and 3 are bits 6-11 of GPFSEL0, pin 16 is bits 18-20 of GPFSEL1
	const keep0, keep1 = ^uint32(0x00000FC0), ^uint32(0x001C0000)
	if got := s.Peek(fsel0); got&keep0 != before0&keep0 {
		t.Errorf("GPFSEL0 other fields changed: 0x%08X -> 0x%08X", uint32(before0), got)
	}
	if got := s.Peek(fsel1); got&keep1 != before1&keep1 {
		t.Errorf("GPFSEL1 other fields changed: 0x%08X -> 0x%08X", uint32(before1), got)
	}
}

func TestOneBlinkCycleWritesExactMasks(t *testing.T) {
	b, _, _ := simRun(t, rpi.Pi4ID)
	gpio := b.Board.GPIOBase()
	writes := b.Space.Writes(gpio+bcm2835.GPSET0, gpio+bcm2835.GPCLR0)
	want := []mmio.Access{
		{Op: mmio.Write, Addr: gpio + bcm2835.GPSET0, Value: 0x00010008},
		{Op: mmio.Write, Addr: gpio + bcm2835.GPCLR0, Value: 0x00000004},
		{Op: mmio.Write, Addr: gpio + bcm2835.GPSET0, Value: 0x00010004},
		{Op: mmio.Write, Addr: gpio + bcm2835.GPCLR0, Value: 0x00000008},
		{Op: mmio.Write, Addr: gpio + bcm2835.GPSET0, Value: 0x0000000C},
		{Op: mmio.Write, Addr: gpio + bcm2835.GPCLR0, Value: 0x00010000},
	}
	if len(writes) != len(want) {
		t.Fatalf("expected %d set/clear writes, got:\n%s", len(want), spew.Sdump(writes))
	}
	for i := range want {
		if writes[i] != want[i] {
			t.Errorf("write %d: expected %s but got %s", i, want[i], writes[i])
		}
	}
	// red was lit last: its pin is low, the other two are high
	if lvl := b.GPIO.Level(); lvl != 1<<GreenPin|1<<OrangePin {
		t.Errorf("expected level 0x0000000C after a cycle, got 0x%08X", lvl)
	}
}

func TestPhasesMatchPinWiring(t *testing.T) {
	all := uint32(1<<GreenPin | 1<<OrangePin | 1<<RedPin)
	lit := []uint32{1 << GreenPin, 1 << OrangePin, 1 << RedPin}
	for i, p := range Phases {
		if p.Set&p.Clear != 0 {
			t.Errorf("phase %s sets and clears the same pin", p.Name)
		}
		if p.Clear != lit[i] {
			t.Errorf("phase %s: expected to light 0x%08X, clears 0x%08X", p.Name, lit[i], p.Clear)
		}
		if p.Set|p.Clear != all {
			t.Errorf("phase %s must drive all three pins", p.Name)
		}
	}
}

func TestBlinkerPhaseOrderAndDelay(t *testing.T) {
	s := mmio.NewSpace()
	g := bcm2835.NewGPIO(s, rpi.Pi3PeripheralBase+rpi.GPIOOffset)
	d := &countingDelay{}
	var names []string
	bl := &Blinker{Out: g, Delay: d, Cycles: 2, OnPhase: func(_ int, p Phase) { names = append(names, p.Name) }}
	bl.Run()
	want := []string{"green", "orange", "red", "green", "orange", "red"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("phase %d: expected %s got %s", i, want[i], names[i])
		}
	}
	if d.n != 6 {
		t.Errorf("expected one delay per phase (6), got %d", d.n)
	}
}

func TestSpinDelayCounts(t *testing.T) {
	before := spins
	SpinDelay(1000).Delay()
	if spins-before != 1000 {
		t.Errorf("expected 1000 spins, got %d", spins-before)
	}
}

func checkBase(t *testing.T, id rpi.BoardID, base uintptr) {
	t.Helper()
	b, _, _ := simRun(t, id)
	if b.Board.PeripheralBase != base {
		t.Errorf("%s: expected 0x%08X but got 0x%08X", id, base, b.Board.PeripheralBase)
	}
	// every gpio and uart access lands inside this board's peripheral window
	for _, a := range b.Space.Trace() {
		if a.Addr < base || a.Addr >= base+0x01000000 {
			t.Errorf("%s: access outside peripheral window: %s", id, a)
		}
	}
}
