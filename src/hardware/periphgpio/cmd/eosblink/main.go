package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"periph.io/x/host/v3"

	"eos/src/boot/stage2"
	"eos/src/hardware/periphgpio"
)

var helpFlag = flag.Bool("h", false, "get usage info")
var cyclesFlag = flag.Int("cycles", 0, "blink cycles to run (0 runs for ever)")
var periodFlag = flag.Duration("period", 500*time.Millisecond, "time each phase stays lit")
var verbose = flag.Int("v", 0, "verbosity level: 0 terse (default), 1 log every phase")

// eosblink runs the stage 2 blink cycle on the same LED board, wired to a
// Pi that booted Linux instead of EOS.
func main() {
	flag.Parse()
	if *helpFlag {
		fmt.Fprintf(os.Stderr, "usage: eosblink [flags]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if _, err := host.Init(); err != nil {
		log.Fatalf("unable to initialize periph host drivers: %v", err)
	}
	bank, err := periphgpio.Lookup(stage2.GreenPin, stage2.OrangePin, stage2.RedPin)
	if err != nil {
		log.Fatalf("%v", err)
	}
	bl := &stage2.Blinker{
		Out:    bank,
		Delay:  stage2.SleepDelay(*periodFlag),
		Cycles: *cyclesFlag,
		OnPhase: func(cycle int, p stage2.Phase) {
			if *verbose > 0 {
				log.Printf("cycle %d: %s", cycle, p.Name)
			}
		},
	}
	bl.Run()
	// all three off
	bank.Set(1<<stage2.GreenPin | 1<<stage2.OrangePin | 1<<stage2.RedPin)
	if err := bank.Err(); err != nil {
		log.Fatalf("%v", err)
	}
}
