// Package hal hands out the LPC178x peripherals exactly once per register
// bus and runs the board bring-up described by a Config.
package hal

import (
	"reflect"

	"lpc178x-hal/clock"
	"lpc178x-hal/errcode"
	"lpc178x-hal/gpio"
	"lpc178x-hal/pac"
	"lpc178x-hal/regs"
	"lpc178x-hal/timer"
	"lpc178x-hal/typestate"
	"lpc178x-hal/uart"
)

// Peripherals owns every handle of one chip. Fields are moved out by the
// application; each is a Disabled (or unsplit) handle to start with.
type Peripherals struct {
	Clock *clock.Disabled
	GPIO  [pac.NumPorts]*gpio.Port
	UART  [uart.NumInstances]*uart.Disabled
	Timer [timer.NumInstances]*timer.Disabled

	bus regs.Bus
}

// taken is keyed by the Bus value, so buses must be comparable.
var taken typestate.Claims[regs.Bus]

// New returns the peripherals of bus. A second call for the same bus fails
// with AlreadyTaken. bus must be comparable (a pointer or a plain struct).
func New(bus regs.Bus) (*Peripherals, error) {
	if bus == nil {
		return nil, errcode.New(errcode.InvalidParams, "hal.new", "nil bus")
	}
	if !reflect.TypeOf(bus).Comparable() {
		return nil, errcode.New(errcode.InvalidParams, "hal.new", "bus type "+reflect.TypeOf(bus).String()+" is not comparable")
	}
	if err := taken.Claim(bus, "hal"); err != nil {
		return nil, err
	}
	p := &Peripherals{Clock: clock.New(bus), bus: bus}
	var err error
	for n := range p.GPIO {
		if p.GPIO[n], err = gpio.NewPort(bus, uint8(n)); err != nil {
			return nil, err
		}
	}
	for n := range p.UART {
		if p.UART[n], err = uart.New(bus, uart.Instance(n)); err != nil {
			return nil, err
		}
	}
	for n := range p.Timer {
		if p.Timer[n], err = timer.New(bus, timer.Instance(n)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Bus returns the register bus the peripherals were taken from.
func (p *Peripherals) Bus() regs.Bus { return p.bus }
