//go:build lpc178x

package hal

import "lpc178x-hal/regs"

// Take returns the peripherals of the running chip. It succeeds once.
func Take() (*Peripherals, error) { return New(regs.MMIO) }
