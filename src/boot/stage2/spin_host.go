//go:build !(tinygo && rpi)

package stage2

var spins uint64

func spin() { spins++ }
