package clock

import (
	"lpc178x-hal/pac"
	"lpc178x-hal/regs"
)

// Gate switches peripheral power through PCONP.
type Gate struct {
	sys regs.Block
}

func NewGate(bus regs.Bus) Gate {
	return Gate{sys: regs.NewBlock(bus, "syscon", pac.SYSCONBase)}
}

func (g Gate) On(bit uint8) {
	g.sys.Modify(pac.PCONP, func(w uint32) uint32 { return w | 1<<bit })
}

func (g Gate) Off(bit uint8) {
	g.sys.Modify(pac.PCONP, func(w uint32) uint32 { return w &^ (1 << bit) })
}

func (g Gate) IsOn(bit uint8) bool { return g.sys.Read(pac.PCONP)&(1<<bit) != 0 }
