package sim

import (
	"fmt"
	"io"
	"sync"

	"github.com/usbarmory/tamago/bits"

	"eos/src/hardware/bcm2835"
	"eos/src/hardware/mmio"
)

///////////////////////////////////////////////////////////////////////
// UART0 models the data and flag registers of a PL011. The transmit
// FIFO can be held full for a number of flag reads to check that writers
// poll, and every protocol breach (data write while full, data read while
// empty) is remembered.
///////////////////////////////////////////////////////////////////////
type UART0 struct {
	mu         sync.Mutex
	out        io.Writer
	sent       []byte
	rx         []byte
	txBusy     int
	violations []string
}

func NewUART0(out io.Writer) *UART0 {
	return &UART0{out: out}
}

// TXBusy keeps the transmit FIFO full for the next n flag register reads.
func (u *UART0) TXBusy(n int) {
	u.mu.Lock()
	u.txBusy = n
	u.mu.Unlock()
}

// Feed queues bytes for the receive side.
func (u *UART0) Feed(b ...byte) {
	u.mu.Lock()
	u.rx = append(u.rx, b...)
	u.mu.Unlock()
}

// Pending is the number of received bytes not yet read.
func (u *UART0) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.rx)
}

// Sent returns every byte written to the data register.
func (u *UART0) Sent() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]byte(nil), u.sent...)
}

func (u *UART0) Violations() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.violations...)
}

func (u *UART0) DataRegister() mmio.Register { return uartData{u} }
func (u *UART0) FlagRegister() mmio.Register { return uartFlag{u} }

type uartData struct{ u *UART0 }

func (d uartData) Read() uint32 {
	u := d.u
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.rx) == 0 {
		u.violations = append(u.violations, "data read with receive fifo empty")
		return 0
	}
	c := u.rx[0]
	u.rx = u.rx[1:]
	return uint32(c)
}

func (d uartData) Write(v uint32) {
	u := d.u
	u.mu.Lock()
	if u.txBusy > 0 {
		u.violations = append(u.violations, fmt.Sprintf("data write 0x%02X with transmit fifo full", v&0xFF))
		u.mu.Unlock()
		return
	}
	c := byte(v)
	u.sent = append(u.sent, c)
	out := u.out
	u.mu.Unlock()
	if out != nil {
		out.Write([]byte{c})
	}
}

type uartFlag struct{ u *UART0 }

// Read reports the fifo state. A full transmit fifo drains by one on every
// read, which stands in for the line shifting bytes out.
func (f uartFlag) Read() uint32 {
	u := f.u
	u.mu.Lock()
	defer u.mu.Unlock()
	var fr uint32
	if u.txBusy > 0 {
		bits.Set(&fr, bcm2835.FlagTransmitFIFOFull)
		u.txBusy--
	}
	if len(u.rx) == 0 {
		bits.Set(&fr, bcm2835.FlagReceiveFIFOEmpty)
	}
	return fr
}

func (f uartFlag) Write(uint32) {}
