package stage2

import "time"

// DefaultDelay is the number of empty spins between blink phases. It is
// not calibrated to anything.
const DefaultDelay = 5000000

type Delayer interface {
	Delay()
}

// SpinDelay busy waits for the given number of iterations.
type SpinDelay uint32

func (d SpinDelay) Delay() {
	for i := uint32(0); i < uint32(d); i++ {
		spin()
	}
}

// SleepDelay gives up the cpu for a wall clock duration. Only useful where
// there is an OS underneath.
type SleepDelay time.Duration

func (d SleepDelay) Delay() { time.Sleep(time.Duration(d)) }

type noDelay struct{}

func (noDelay) Delay() {}

// NoDelay returns at once.
var NoDelay Delayer = noDelay{}
