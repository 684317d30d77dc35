package uart

import (
	"golang.org/x/exp/slices"

	"lpc178x-hal/gpio"
)

// Role is the direction a pin plays for a UART.
type Role uint8

const (
	RX Role = iota
	TX
)

func (r Role) String() string {
	if r == RX {
		return "rxd"
	}
	return "txd"
}

type route struct {
	pin  gpio.ID
	inst Instance
	role Role
	fn   gpio.AltFunc
}

// routes lists every pin that can carry a UART signal, with its IOCON FUNC
// code (LPC178x user manual, IOCON pin function tables).
var routes = []route{
	{gpio.ID{Port: 0, Pin: 0}, UART0, TX, 4},
	{gpio.ID{Port: 0, Pin: 0}, UART3, TX, 2},
	{gpio.ID{Port: 0, Pin: 1}, UART0, RX, 4},
	{gpio.ID{Port: 0, Pin: 1}, UART3, RX, 2},
	{gpio.ID{Port: 0, Pin: 2}, UART0, TX, 1},
	{gpio.ID{Port: 0, Pin: 2}, UART3, TX, 2},
	{gpio.ID{Port: 0, Pin: 3}, UART0, RX, 1},
	{gpio.ID{Port: 0, Pin: 3}, UART3, RX, 2},
	{gpio.ID{Port: 0, Pin: 10}, UART2, TX, 1},
	{gpio.ID{Port: 0, Pin: 11}, UART2, RX, 1},
	{gpio.ID{Port: 0, Pin: 15}, UART1, TX, 1},
	{gpio.ID{Port: 0, Pin: 16}, UART1, RX, 1},
	{gpio.ID{Port: 0, Pin: 22}, UART4, TX, 3},
	{gpio.ID{Port: 0, Pin: 25}, UART3, TX, 3},
	{gpio.ID{Port: 0, Pin: 26}, UART3, RX, 3},
	{gpio.ID{Port: 1, Pin: 29}, UART4, TX, 5},
	{gpio.ID{Port: 2, Pin: 0}, UART1, TX, 2},
	{gpio.ID{Port: 2, Pin: 1}, UART1, RX, 2},
	{gpio.ID{Port: 2, Pin: 8}, UART2, TX, 2},
	{gpio.ID{Port: 2, Pin: 9}, UART2, RX, 2},
	{gpio.ID{Port: 2, Pin: 9}, UART4, RX, 3},
	{gpio.ID{Port: 3, Pin: 16}, UART1, TX, 3},
	{gpio.ID{Port: 3, Pin: 17}, UART1, RX, 3},
	{gpio.ID{Port: 4, Pin: 22}, UART2, TX, 2},
	{gpio.ID{Port: 4, Pin: 23}, UART2, RX, 2},
	{gpio.ID{Port: 4, Pin: 28}, UART3, TX, 2},
	{gpio.ID{Port: 4, Pin: 29}, UART3, RX, 2},
	{gpio.ID{Port: 5, Pin: 3}, UART4, RX, 4},
	{gpio.ID{Port: 5, Pin: 4}, UART4, TX, 4},
}

// Route reports the IOCON function that connects pin to inst's role signal,
// or false when the pin cannot carry it.
func Route(pin gpio.ID, inst Instance, role Role) (gpio.AltFunc, bool) {
	i := slices.IndexFunc(routes, func(r route) bool {
		return r.pin == pin && r.inst == inst && r.role == role
	})
	if i < 0 {
		return 0, false
	}
	return routes[i].fn, true
}

// Routes lists the pins that can carry inst's role signal.
func Routes(inst Instance, role Role) []gpio.ID {
	var out []gpio.ID
	for _, r := range routes {
		if r.inst == inst && r.role == role {
			out = append(out, r.pin)
		}
	}
	return out
}
