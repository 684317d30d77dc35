// Package pac provides base addresses, register offsets and bitfields of the
// LPC178x/177x blocks used by this HAL. Only what the HAL programs is listed.
package pac

import "lpc178x-hal/regs"

// Base addresses.
const (
	SYSCONBase = 0x400F_C000
	IOCONBase  = 0x4002_C000
	GPIOBase   = 0x2009_8000
	GPIOStride = 0x20

	TIMER0Base = 0x4000_4000
	TIMER1Base = 0x4000_8000
	TIMER2Base = 0x4009_0000
	TIMER3Base = 0x4009_4000

	UART0Base = 0x4000_C000
	UART1Base = 0x4001_0000
	UART2Base = 0x4009_8000
	UART3Base = 0x4009_C000
	UART4Base = 0x400A_4000
)

// TimerBases and UARTBases are indexed by instance number.
var (
	TimerBases = [4]uintptr{TIMER0Base, TIMER1Base, TIMER2Base, TIMER3Base}
	UARTBases  = [5]uintptr{UART0Base, UART1Base, UART2Base, UART3Base, UART4Base}
)

func reg(name string, off uintptr) regs.Reg { return regs.Reg{Name: name, Offset: off} }

func field(r regs.Reg, name string, shift, width uint8) regs.Field {
	return regs.Field{Reg: r, Name: name, Shift: shift, Width: width}
}
