// Package periphgpio drives the blink phases on a Raspberry Pi that is
// running Linux, through periph.io instead of raw registers. Bit n of a
// mask is the pin numbered n, as in GPSET0/GPCLR0.
package periphgpio

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

var ErrUnknownPin = errors.New("unknown_pin")

// Bank maps a set/clear bit mask onto individual pins. Like the hardware
// registers it never reports failure per write; the first error is kept
// and returned by Err.
type Bank struct {
	pins map[int]gpio.PinOut
	err  error
}

func NewBank(pins ...gpio.PinOut) (*Bank, error) {
	b := &Bank{pins: make(map[int]gpio.PinOut, len(pins))}
	for _, p := range pins {
		n := p.Number()
		if n < 0 || n > 31 {
			return nil, fmt.Errorf("pin %s: number %d is outside bank 0", p, n)
		}
		if _, dup := b.pins[n]; dup {
			return nil, fmt.Errorf("pin %s: number %d given twice", p, n)
		}
		b.pins[n] = p
	}
	return b, nil
}

// Lookup builds a bank from the registered pins GPIO<n>.
func Lookup(numbers ...int) (*Bank, error) {
	pins := make([]gpio.PinOut, 0, len(numbers))
	for _, n := range numbers {
		p := gpioreg.ByName(fmt.Sprintf("GPIO%d", n))
		if p == nil {
			return nil, fmt.Errorf("GPIO%d: %w", n, ErrUnknownPin)
		}
		pins = append(pins, p)
	}
	return NewBank(pins...)
}

func (b *Bank) Set(mask uint32)   { b.drive(mask, gpio.High) }
func (b *Bank) Clear(mask uint32) { b.drive(mask, gpio.Low) }

func (b *Bank) drive(mask uint32, l gpio.Level) {
	for n := 0; n < 32; n++ {
		if mask&(1<<uint(n)) == 0 {
			continue
		}
		p, ok := b.pins[n]
		if !ok {
			b.fail(fmt.Errorf("bit %d: %w", n, ErrUnknownPin))
			continue
		}
		if err := p.Out(l); err != nil {
			b.fail(fmt.Errorf("%s: %w", p, err))
		}
	}
}

func (b *Bank) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err is the first error any write ran into.
func (b *Bank) Err() error { return b.err }
