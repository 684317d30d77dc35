//go:build lpc178x

// Command timer waits out a three second countdown on TIMER0.
package main

import (
	"context"
	"time"

	"lpc178x-hal/hal"
	"lpc178x-hal/x/nb"
)

func main() {
	p, err := hal.Take()
	if err != nil {
		fail(err)
	}
	clk, err := p.Clock.Enable(96_000_000, 12_000_000)
	if err != nil {
		fail(err)
	}
	t, err := p.Timer[0].Enable(clk)
	if err != nil {
		fail(err)
	}
	if err := t.Start(3 * time.Second); err != nil {
		fail(err)
	}
	if err := nb.Retry(context.Background(), time.Millisecond, t.Wait); err != nil {
		fail(err)
	}
	println("[OK]")
	for {
	}
}

func fail(err error) {
	println("[Fail]", err.Error())
	for {
	}
}
