//go:build lpc178x

// Command clock brings PLL0 up to 120 MHz from a 12 MHz crystal.
package main

import "lpc178x-hal/hal"

func main() {
	p, err := hal.Take()
	if err != nil {
		println("[Fail]", err.Error())
		halt()
	}
	if _, err := p.Clock.Enable(120_000_000, 12_000_000); err != nil {
		println("[Fail]", err.Error())
		halt()
	}
	println("[OK]")
	halt()
}

func halt() {
	for {
	}
}
