// Package gpio models exclusive ownership of the LPC178x GPIO pins and the
// binding of a pin to one IOCON alternate function.
package gpio

import (
	"strings"

	"lpc178x-hal/errcode"
	"lpc178x-hal/pac"
	"lpc178x-hal/x/conv"
)

// ID names a physical pin, P<Port>.<Pin>.
type ID struct {
	Port uint8
	Pin  uint8
}

// Valid reports whether the pin is bonded out (ports 0..4 have 32 pins,
// port 5 has 5).
func (id ID) Valid() bool { return id.Pin < pac.PinsOn(id.Port) }

func (id ID) String() string {
	return "P" + conv.U32(uint32(id.Port)) + "." + conv.U32(uint32(id.Pin))
}

func (id ID) bit() uint32 { return 1 << id.Pin }

// ParseID accepts "P1.18" (case-insensitive "p" prefix optional).
func ParseID(s string) (ID, error) {
	const op = "gpio.parse_id"
	t := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "P"), "p")
	port, pin, ok := strings.Cut(t, ".")
	if !ok {
		return ID{}, errcode.New(errcode.UnknownPin, op, "want P<port>.<pin>, got "+s)
	}
	p, ok1 := conv.Atou(port)
	n, ok2 := conv.Atou(pin)
	if !ok1 || !ok2 || p > 0xFF || n > 0xFF {
		return ID{}, errcode.New(errcode.UnknownPin, op, "want P<port>.<pin>, got "+s)
	}
	id := ID{Port: uint8(p), Pin: uint8(n)}
	if !id.Valid() {
		return ID{}, errcode.New(errcode.UnknownPin, op, id.String()+" is not bonded out")
	}
	return id, nil
}

// AltFunc is an IOCON FUNC code; FuncGPIO returns the pin to GPIO.
type AltFunc uint8

const FuncGPIO AltFunc = 0
