package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tty "github.com/mattn/go-tty"

	"eos/src/boot/termproto"
)

var helpFlag = flag.Bool("h", false, "get usage info")
var verbose = flag.Int("v", 0, "verbosity level: 0 terse (default), 1 show unknown escapes, 2 show every byte")
var expectFlag = flag.String("expect", "", "exit 0 as soon as a line with exactly this text arrives")

///////////////////////////////////////////////////////////////////////
// main
///////////////////////////////////////////////////////////////////////
func main() {
	flag.Parse()
	if *helpFlag || flag.NArg() != 1 {
		usage()
	}
	dev, err := tty.OpenDevice(flag.Arg(0))
	if err != nil {
		log.Fatalf("unable to open %s: %v", flag.Arg(0), err)
	}
	defer dev.Close()
	restore := dev.MustRaw()
	defer restore()

	if err := monitor(dev.Input(), *expectFlag); err != nil {
		log.Fatalf("%v", err)
	}
}

// monitor reads the board's output until EOF (or the expected line) and
// logs what the board did to the screen.
func monitor(in io.Reader, expect string) error {
	var d termproto.Decoder
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}
		if n == 0 {
			log.Printf("retrying failed read (size zero)")
			continue
		}
		if *verbose > 1 {
			log.Printf("byte 0x%02X", buf[0])
		}
		e, ok := d.Feed(buf[0])
		if !ok {
			continue
		}
		switch e.Type {
		case termproto.EventClear:
			log.Printf("screen cleared")
		case termproto.EventHome:
			log.Printf("cursor home")
		case termproto.EventLine:
			log.Printf("line: %s", e.Text)
			if expect != "" && e.Text == expect {
				return nil
			}
		case termproto.EventUnknownEscape:
			if *verbose > 0 {
				log.Printf("unknown escape ESC%q", e.Text)
			}
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: eosterm [-v n] [-expect text] <serial device>\n")
	flag.PrintDefaults()
	os.Exit(1)
}
