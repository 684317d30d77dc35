//go:build lpc178x

// Command serial loops one byte through UART0 (P0.2 wired to P0.3).
package main

import (
	"context"

	"lpc178x-hal/hal"
	"lpc178x-hal/x/nb"
)

const probe = '!'

func main() {
	ctx := context.Background()
	p, err := hal.Take()
	if err != nil {
		fail(err)
	}
	if _, err := p.Clock.Enable(120_000_000, 12_000_000); err != nil {
		fail(err)
	}
	pins, err := p.GPIO[0].Split()
	if err != nil {
		fail(err)
	}
	u, err := p.UART[0].Enable(pins[3], pins[2])
	if err != nil {
		fail(err)
	}

	if err := nb.Block(ctx, func() error { return u.WriteByte(probe) }); err != nil {
		fail(err)
	}
	if err := nb.Block(ctx, u.Flush); err != nil {
		fail(err)
	}
	got, err := nb.ReadByte(ctx, u.ReadByte)
	if err != nil {
		fail(err)
	}
	if got != probe {
		println("[Fail] read back", got)
		halt()
	}
	println("[OK]")
	halt()
}

func fail(err error) {
	println("[Fail]", err.Error())
	halt()
}

func halt() {
	for {
	}
}
