//go:build tinygo && rpi

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

// Volatile is the bus on real hardware. Addresses are physical; the MMU is
// off at stage 2.
type Volatile struct{}

func (Volatile) Get32(addr uintptr) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (Volatile) Put32(addr uintptr, v uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}
