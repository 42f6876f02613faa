package sim

import (
	"bytes"
	"testing"

	"eos/src/hardware/bcm2835"
	"eos/src/hardware/mmio"
	"eos/src/hardware/rpi"
)

func newPi3(t *testing.T) (*Board, *bytes.Buffer) {
	t.Helper()
	board, err := rpi.Identify(rpi.Pi3ID)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	return NewBoard(mmio.NewSpace(), board, &out), &out
}

func TestGPIOSetClearMoveLevel(t *testing.T) {
	b, _ := newPi3(t)
	gpio := b.Board.GPIOBase()
	var changes []uint32
	b.GPIO.OnChange(func(l uint32) { changes = append(changes, l) })

	b.Space.Put32(gpio+bcm2835.GPSET0, 0x00010008)
	b.Space.Put32(gpio+bcm2835.GPCLR0, 0x00000008)
	if v := b.Space.Get32(gpio + bcm2835.GPLEV0); v != 0x00010000 {
		t.Errorf("expected level 0x00010000, got 0x%08X", v)
	}
	if v := b.Space.Get32(gpio + bcm2835.GPSET0); v != 0 {
		t.Errorf("set register is write only, read 0x%08X", v)
	}
	if len(changes) != 2 || changes[0] != 0x00010008 || changes[1] != 0x00010000 {
		t.Errorf("unexpected change callbacks %v", changes)
	}
}

func TestUARTFlags(t *testing.T) {
	b, out := newPi3(t)
	fr := b.Board.UART0Base() + bcm2835.UARTFlag
	dr := b.Board.UART0Base() + bcm2835.UARTData

	if v := b.Space.Get32(fr); v != 1<<bcm2835.FlagReceiveFIFOEmpty {
		t.Errorf("idle uart: expected only RXFE, got 0x%02X", v)
	}
	b.UART0.Feed('a')
	b.UART0.TXBusy(1)
	if v := b.Space.Get32(fr); v != 1<<bcm2835.FlagTransmitFIFOFull {
		t.Errorf("expected only TXFF, got 0x%02X", v)
	}
	if v := b.Space.Get32(fr); v != 0 {
		t.Errorf("expected both fifos ready, got 0x%02X", v)
	}
	b.Space.Put32(dr, 'b')
	if out.String() != "b" || string(b.UART0.Sent()) != "b" {
		t.Errorf("expected b sent, got %q", out.String())
	}
	if v := b.Space.Get32(dr); v != 'a' {
		t.Errorf("expected a received, got %q", rune(v))
	}
	if len(b.UART0.Violations()) != 0 {
		t.Errorf("unexpected violations %v", b.UART0.Violations())
	}
	b.Space.Get32(dr)
	if len(b.UART0.Violations()) != 1 {
		t.Errorf("expected a violation for reading an empty fifo")
	}
}
