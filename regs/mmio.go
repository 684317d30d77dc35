//go:build lpc178x

package regs

import (
	"runtime/volatile"
	"unsafe"
)

type mmio struct{}

func (mmio) Load32(addr uintptr) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (mmio) Store32(addr uintptr, v uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}

// MMIO is the physical peripheral bus.
var MMIO Bus = mmio{}
