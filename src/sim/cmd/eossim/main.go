package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tty "github.com/mattn/go-tty"
	"golang.org/x/term"

	"eos/src/boot/stage2"
	arm64 "eos/src/hardware/arm-cortex-a53"
	"eos/src/hardware/mmio"
	"eos/src/hardware/rpi"
	"eos/src/sim"
)

var helpFlag = flag.Bool("h", false, "get usage info")
var boardFlag = flag.String("board", "pi3", "board to pretend to be: pi3, pi4 or a MIDR part number like 0xd03")
var elFlag = flag.Uint("el", 2, "exception level reported at entry")
var cyclesFlag = flag.Int("cycles", 0, "blink cycles to run before halting (0 runs until you quit)")
var periodFlag = flag.Duration("period", 500*time.Millisecond, "wall clock time per blink phase")
var spinFlag = flag.Uint("spin", 0, "use a busy wait of this many iterations per phase instead of -period")
var verbose = flag.Int("v", 0, "verbosity level: 0 terse (default), 1 show every state transition")

///////////////////////////////////////////////////////////////////////
// console is where the simulated serial line and the LED panel end up.
// With a real terminal we go raw (so keys reach the simulated UART as
// they are typed) and colour the LEDs; otherwise it is plain stdout.
///////////////////////////////////////////////////////////////////////
type console struct {
	tty     *tty.TTY
	term    *term.Terminal
	out     io.Writer
	restore func() error
	quit    chan struct{}
}

func openConsole() *console {
	c := &console{out: os.Stdout, quit: make(chan struct{})}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return c
	}
	t, err := tty.Open()
	if err != nil {
		log.Printf("no terminal (%v), keyboard input disabled", err)
		return c
	}
	c.tty = t
	c.restore = t.MustRaw()
	c.term = term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{t.Input(), t.Output()}, "")
	c.out = t.Output()
	return c
}

func (c *console) close() {
	if c.tty == nil {
		return
	}
	if c.restore != nil {
		c.restore()
	}
	c.tty.Close()
}

// logWriter is where log output should go; the terminal fixes up line
// endings while we are raw.
func (c *console) logWriter() io.Writer {
	if c.term != nil {
		return c.term
	}
	return os.Stderr
}

// keys forwards typed characters to the receive side of uart until ^C or
// ^D, which closes quit.
func (c *console) keys(uart *sim.UART0) {
	if c.tty == nil {
		return
	}
	for {
		r, err := c.tty.ReadRune()
		if err != nil {
			log.Printf("keyboard: %v", err)
			close(c.quit)
			return
		}
		switch {
		case r == 3 || r == 4:
			close(c.quit)
			return
		case r < 0x80:
			uart.Feed(byte(r))
		}
	}
}

func (c *console) leds(level uint32) {
	var e *term.EscapeCodes
	if c.term != nil {
		e = c.term.Escape
	}
	line := "leds:" +
		led(e, "green", level, stage2.GreenPin) +
		led(e, "orange", level, stage2.OrangePin) +
		led(e, "red", level, stage2.RedPin)
	if c.term != nil {
		fmt.Fprintf(c.term, "%s\n", line)
		return
	}
	fmt.Fprintln(c.out, line)
}

// the LEDs are active low
func led(e *term.EscapeCodes, name string, level uint32, pin uint) string {
	on := level&(1<<pin) == 0
	if e == nil {
		if on {
			return " [" + name + "]"
		}
		return " " + name
	}
	if !on {
		return " " + name
	}
	var colour []byte
	switch name {
	case "green":
		colour = e.Green
	case "orange":
		colour = e.Yellow
	default:
		colour = e.Red
	}
	return " " + string(colour) + name + string(e.Reset)
}

// waitHalter stands in for wfe: it parks until the user quits, or returns
// at once when there is nobody to quit.
type waitHalter struct{ quit chan struct{} }

func (h waitHalter) Halt() {
	if h.quit == nil {
		return
	}
	<-h.quit
}

///////////////////////////////////////////////////////////////////////
// main
///////////////////////////////////////////////////////////////////////
func main() {
	flag.Parse()
	if *helpFlag {
		usage()
	}
	id, err := rpi.ParseBoard(*boardFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}
	entry := arm64.EntryState{BoardID: id, ExceptionLevel: uint32(*elFlag), StackPointer: arm64.InitialStackPointer}

	con := openConsole()
	defer con.close()
	log.SetOutput(con.logWriter())

	space := mmio.NewSpace()
	var uart *sim.UART0
	board, known := rpi.Boards[id]
	if known {
		b := sim.NewBoard(space, board, con.out)
		b.GPIO.OnChange(con.leds)
		uart = b.UART0
	} else {
		uart = sim.NewUART0(nil)
	}
	go con.keys(uart)

	var delay stage2.Delayer = stage2.SleepDelay(*periodFlag)
	if *spinFlag > 0 {
		delay = stage2.SpinDelay(*spinFlag)
	}
	halter := waitHalter{}
	if con.tty != nil {
		halter.quit = con.quit
	}

	m := stage2.Machine{
		Bus:         space,
		Delay:       delay,
		Halter:      halter,
		BlinkCycles: *cyclesFlag,
		Observe: func(tr stage2.Transition) {
			if *verbose > 0 || tr.State == stage2.StateHalt {
				log.Printf("@@@ %s (%s)", tr.State, tr.Entry)
			}
		},
	}
	if *cyclesFlag == 0 && con.tty != nil {
		// blink for ever really means until the user quits
		go func() {
			<-con.quit
			con.close()
			os.Exit(0)
		}()
	}
	if *verbose > 0 {
		log.Printf("@@@ booting %s", id)
	}
	got, _ := stage2.Stage2(entry, m)
	if got.PeripheralBase == 0 {
		log.Printf("board 0x%04X not recognized, stage 2 halted without output", uint32(id))
	} else if *verbose > 0 {
		log.Printf("@@@ %d register accesses, %d bytes sent", len(space.Trace()), len(uart.Sent()))
	}
	if v := uart.Violations(); len(v) > 0 {
		log.Printf("uart protocol violations: %v", v)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: eossim [flags]\n")
	flag.PrintDefaults()
	os.Exit(1)
}
