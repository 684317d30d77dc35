package hal

import (
	"lpc178x-hal/clock"
	"lpc178x-hal/errcode"
	"lpc178x-hal/gpio"
	"lpc178x-hal/pac"
	"lpc178x-hal/uart"
	"lpc178x-hal/x/conv"
)

// System is what Boot leaves running.
type System struct {
	Clock   *clock.Enabled
	Console *uart.Serial // nil without a console

	// Pins holds every GPIO pin not taken by the console; console pins
	// are nil.
	Pins [pac.NumPorts]gpio.Pins
}

// Boot validates cfg, brings the clock up, splits every GPIO port and, if
// configured, enables the console UART. Every config and ownership check
// runs before the first register write, so a rejected boot leaves p as it
// was. The clock and the GPIO ports of p are consumed.
func Boot(p *Peripherals, cfg Config) (*System, error) {
	const op = "hal.boot"
	if p == nil {
		return nil, errcode.New(errcode.InvalidParams, op, "nil peripherals")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cc := cfg.Console
	var rx, tx gpio.ID
	if cc.Enabled {
		var err error
		if rx, tx, err = cc.resolve(cfg.CPUHz, len(p.UART), len(p.GPIO)); err != nil {
			return nil, err
		}
	}
	if err := p.owned(cc); err != nil {
		return nil, err
	}

	clk, err := p.Clock.Enable(cfg.CPUHz, cfg.CrystalHz)
	if err != nil {
		return nil, err
	}
	sys := &System{Clock: clk}
	for n, port := range p.GPIO {
		if sys.Pins[n], err = port.Split(); err != nil {
			return nil, err
		}
	}

	if cc.Enabled {
		u, err := p.UART[cc.UART].EnableBaud(clk, cc.Baud, sys.Pins[rx.Port][rx.Pin], sys.Pins[tx.Port][tx.Pin])
		if err != nil {
			return nil, err
		}
		sys.Pins[rx.Port][rx.Pin] = nil
		sys.Pins[tx.Port][tx.Pin] = nil
		sys.Console = uart.NewSerial(u, cc.RingSize)
		println("[hal] console", cc.UART.String(), "rx", rx.String(), "tx", tx.String(), "baud", cc.Baud)
	}

	println("[hal] boot chip=" + cfg.Chip + " cclk=" + conv.U32(clk.Frequency()))
	return sys, nil
}

// owned checks that every handle Boot consumes is still held by p.
func (p *Peripherals) owned(cc ConsoleConfig) error {
	if err := p.Clock.Check(); err != nil {
		return err
	}
	for _, port := range p.GPIO {
		if err := port.CheckSplit(); err != nil {
			return err
		}
	}
	if cc.Enabled {
		return p.UART[cc.UART].Check()
	}
	return nil
}

// Pin returns the handle of id from the split ports, or nil if it was taken.
func (s *System) Pin(id gpio.ID) *gpio.Pin {
	if !id.Valid() {
		return nil
	}
	return s.Pins[id.Port][id.Pin]
}
