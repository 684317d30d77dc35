package pac

import "lpc178x-hal/regs"

// --- GPIO port registers (one window per port, GPIOStride apart) ---
var (
	GPIO_DIR = reg("DIR", 0x00)
	GPIO_PIN = reg("PIN", 0x14)
	GPIO_SET = reg("SET", 0x18)
	GPIO_CLR = reg("CLR", 0x1C)
)

// GPIOPortBase returns the register window of port n.
func GPIOPortBase(port uint8) uintptr { return GPIOBase + uintptr(port)*GPIOStride }

// IOCONPin returns the IOCON register of P<port>.<pin>.
func IOCONPin(port, pin uint8) regs.Reg {
	return regs.Reg{Name: "IOCON", Offset: (uintptr(port)*32 + uintptr(pin)) * 4}
}

// IOCONFunc returns the FUNC field of P<port>.<pin>; 0 is GPIO.
func IOCONFunc(port, pin uint8) regs.Field {
	return field(IOCONPin(port, pin), "FUNC", 0, 3)
}

// Port geometry.
const (
	NumPorts    = 6
	PinsPerPort = 32
	PinsOnPort5 = 5
)

// PinsOn returns the number of bonded pins on port n (0 for invalid ports).
func PinsOn(port uint8) uint8 {
	switch {
	case port < 5:
		return PinsPerPort
	case port == 5:
		return PinsOnPort5
	default:
		return 0
	}
}
