// Package sim is a host-side model of the LPC178x register file used by tests
// and by the lpchal console. It implements regs.Bus, records every store, and
// models just enough hardware behaviour for the HAL's bring-up and polling
// paths: oscillator ready, PLL feed/lock, timer counting with match control,
// UART line status and data registers, and GPIO set/clear/pin.
package sim

import (
	"sync"

	"lpc178x-hal/pac"
)

// Write is one recorded register store.
type Write struct {
	Addr  uintptr
	Value uint32
}

// Board implements regs.Bus.
type Board struct {
	mu sync.Mutex

	mem map[uintptr]uint32
	log []Write

	feedArmed bool

	// UART side state; DLL/DLM share offsets with THR/RBR/IER.
	dll    [5]uint32
	dlm    [5]uint32
	tx     [5][]byte
	rx     [5][]byte
	txHold [5]bool
}

// New returns a board with every register at zero.
func New() *Board {
	return &Board{mem: make(map[uintptr]uint32)}
}

type kind uint8

const (
	kindPlain kind = iota
	kindSyscon
	kindTimer
	kindUART
	kindGPIO
)

func classify(addr uintptr) (k kind, inst int, off uintptr) {
	if addr >= pac.SYSCONBase && addr < pac.SYSCONBase+0x1000 {
		return kindSyscon, 0, addr - pac.SYSCONBase
	}
	for i, b := range pac.TimerBases {
		if addr >= b && addr < b+0x100 {
			return kindTimer, i, addr - b
		}
	}
	for i, b := range pac.UARTBases {
		if addr >= b && addr < b+0x100 {
			return kindUART, i, addr - b
		}
	}
	if addr >= pac.GPIOBase && addr < pac.GPIOBase+pac.NumPorts*pac.GPIOStride {
		return kindGPIO, int((addr - pac.GPIOBase) / pac.GPIOStride), (addr - pac.GPIOBase) % pac.GPIOStride
	}
	return kindPlain, 0, 0
}

// Load32 implements regs.Bus.
func (b *Board) Load32(addr uintptr) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	k, inst, off := classify(addr)
	if k == kindUART {
		return b.uartLoad(inst, off, addr)
	}
	return b.mem[addr]
}

// Store32 implements regs.Bus.
func (b *Board) Store32(addr uintptr, v uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = append(b.log, Write{Addr: addr, Value: v})
	k, inst, off := classify(addr)
	switch k {
	case kindSyscon:
		b.sysconStore(addr, off, v)
	case kindTimer:
		b.timerStore(addr, inst, off, v)
	case kindUART:
		b.uartStore(addr, inst, off, v)
	case kindGPIO:
		b.gpioStore(addr, inst, off, v)
	default:
		b.mem[addr] = v
	}
}

// ---- SYSCON ----

func (b *Board) sysconStore(addr, off uintptr, v uint32) {
	switch off {
	case pac.SCS.Offset:
		if v&pac.SCS_OSCEN.Mask() != 0 {
			v |= pac.SCS_OSCSTAT.Mask()
		} else {
			v &^= pac.SCS_OSCSTAT.Mask()
		}
		b.mem[addr] = v
	case pac.PLL0FEED.Offset:
		switch {
		case v == pac.PLLFeed1:
			b.feedArmed = true
		case v == pac.PLLFeed2 && b.feedArmed:
			b.feedArmed = false
			b.latchPLL()
		default:
			b.feedArmed = false
		}
	default:
		b.mem[addr] = v
	}
}

func (b *Board) latchPLL() {
	base := uintptr(pac.SYSCONBase)
	cfg := b.mem[base+pac.PLL0CFG.Offset]
	con := b.mem[base+pac.PLL0CON.Offset]
	stat := cfg & (pac.PLL0CFG_MSEL.Mask() | pac.PLL0CFG_PSEL.Mask())
	if con&pac.PLL0CON_PLLE.Mask() != 0 {
		stat |= pac.PLL0STAT_PLLE.Mask() | pac.PLL0STAT_PLOCK.Mask()
	}
	b.mem[base+pac.PLL0STAT.Offset] = stat
}

// ---- TIMER ----

func (b *Board) timerStore(addr uintptr, inst int, off uintptr, v uint32) {
	base := pac.TimerBases[inst]
	switch off {
	case pac.TIM_IR.Offset:
		b.mem[addr] &^= v // write 1 to clear
	case pac.TIM_TCR.Offset:
		b.mem[addr] = v
		if v&pac.TIM_TCR_CRST.Mask() != 0 {
			b.mem[base+pac.TIM_TC.Offset] = 0
			b.mem[base+pac.TIM_PC.Offset] = 0
		}
	default:
		b.mem[addr] = v
	}
}

// Advance moves every running timer forward by n counter ticks (TC
// increments; the prescaler is assumed to be dividing the clock already).
func (b *Board) Advance(n uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range pac.TimerBases {
		b.advanceTimer(i, uint64(n))
	}
}

func (b *Board) advanceTimer(inst int, n uint64) {
	base := pac.TimerBases[inst]
	tcr := b.mem[base+pac.TIM_TCR.Offset]
	if tcr&pac.TIM_TCR_CEN.Mask() == 0 || tcr&pac.TIM_TCR_CRST.Mask() != 0 {
		return
	}
	mcr := b.mem[base+pac.TIM_MCR.Offset]
	mr0 := uint64(b.mem[base+pac.TIM_MR0.Offset])
	tc := uint64(b.mem[base+pac.TIM_TC.Offset])
	for n > 0 {
		if tc >= mr0 {
			// Match already behind the counter; free-run.
			tc += n
			break
		}
		step := mr0 - tc
		if n < step {
			tc += n
			break
		}
		n -= step
		tc = mr0
		if mcr&pac.TIM_MCR_MR0I.Mask() != 0 {
			b.mem[base+pac.TIM_IR.Offset] |= pac.TIM_IR_MR0INT.Mask()
		}
		if mcr&pac.TIM_MCR_MR0S.Mask() != 0 {
			b.mem[base+pac.TIM_TCR.Offset] &^= pac.TIM_TCR_CEN.Mask()
			break
		}
		if mcr&pac.TIM_MCR_MR0R.Mask() != 0 {
			tc = 0
			if mr0 == 0 {
				break
			}
		}
	}
	b.mem[base+pac.TIM_TC.Offset] = uint32(tc)
}

// ---- UART ----

func (b *Board) dlab(inst int) bool {
	lcr := b.mem[pac.UARTBases[inst]+pac.U_LCR.Offset]
	return lcr&pac.U_LCR_DLAB.Mask() != 0
}

func (b *Board) uartLoad(inst int, off, addr uintptr) uint32 {
	switch off {
	case pac.U_RBR.Offset:
		if b.dlab(inst) {
			return b.dll[inst]
		}
		if len(b.rx[inst]) == 0 {
			return 0
		}
		c := b.rx[inst][0]
		b.rx[inst] = b.rx[inst][1:]
		return uint32(c)
	case pac.U_DLM.Offset:
		if b.dlab(inst) {
			return b.dlm[inst]
		}
		return b.mem[addr]
	case pac.U_LSR.Offset:
		var lsr uint32
		if len(b.rx[inst]) > 0 {
			lsr |= pac.U_LSR_RDR.Mask()
		}
		if !b.txHold[inst] {
			lsr |= pac.U_LSR_THRE.Mask()
		}
		return lsr
	}
	return b.mem[addr]
}

func (b *Board) uartStore(addr uintptr, inst int, off uintptr, v uint32) {
	switch off {
	case pac.U_THR.Offset:
		if b.dlab(inst) {
			b.dll[inst] = v & 0xFF
			return
		}
		b.tx[inst] = append(b.tx[inst], byte(v))
	case pac.U_DLM.Offset:
		if b.dlab(inst) {
			b.dlm[inst] = v & 0xFF
			return
		}
		b.mem[addr] = v
	default:
		b.mem[addr] = v
	}
}

// ---- GPIO ----

func (b *Board) gpioStore(addr uintptr, port int, off uintptr, v uint32) {
	pin := pac.GPIOPortBase(uint8(port)) + pac.GPIO_PIN.Offset
	switch off {
	case pac.GPIO_SET.Offset:
		b.mem[pin] |= v
	case pac.GPIO_CLR.Offset:
		b.mem[pin] &^= v
	default:
		b.mem[addr] = v
	}
}
