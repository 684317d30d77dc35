package gpio

import (
	"lpc178x-hal/errcode"
	"lpc178x-hal/pac"
	"lpc178x-hal/regs"
	"lpc178x-hal/typestate"
	"lpc178x-hal/x/conv"
)

// Port is one GPIO port. Split hands out its pins; the in-use mask tracks
// which of them are live so the port is never split twice.
type Port struct {
	n     uint8
	gpio  regs.Block
	iocon regs.Block
	inUse typestate.Mask
}

// Pins is the result of Port.Split, indexed by pin number.
type Pins []*Pin

// NewPort returns port n on bus.
func NewPort(bus regs.Bus, n uint8) (*Port, error) {
	if n >= pac.NumPorts {
		return nil, errcode.New(errcode.InvalidParams, "gpio.new_port", "no port "+conv.U32(uint32(n)))
	}
	name := "gpio" + conv.U32(uint32(n))
	return &Port{
		n:     n,
		gpio:  regs.NewBlock(bus, name, pac.GPIOPortBase(n)),
		iocon: regs.NewBlock(bus, "iocon", pac.IOCONBase),
	}, nil
}

func (p *Port) Number() uint8 { return p.n }

func (p *Port) all() uint32 { return uint32(1)<<pac.PinsOn(p.n) - 1 }

// CheckSplit fails with OwnershipViolation while any pin from an earlier
// split is still out. It writes nothing.
func (p *Port) CheckSplit() error {
	if p.inUse != 0 {
		return errcode.New(errcode.OwnershipViolation, p.gpio.Name()+".split",
			"pins "+conv.Hex32(uint32(p.inUse))+" still owned")
	}
	return nil
}

// Split returns one Unknown-direction handle per bonded pin. See CheckSplit.
func (p *Port) Split() (Pins, error) {
	if err := p.CheckSplit(); err != nil {
		return nil, err
	}
	if err := p.inUse.ClaimAll(p.all()); err != nil {
		return nil, err
	}
	out := make(Pins, pac.PinsOn(p.n))
	for i := range out {
		id := ID{Port: p.n, Pin: uint8(i)}
		out[i] = &Pin{core{id: id, port: p, tok: typestate.NewToken(id.String())}}
	}
	return out, nil
}

// Reclaim consumes a pin handle and returns the pin to the port. Once every
// pin is back the port can be split again. A pin bound to a peripheral has
// to be released first.
func (p *Port) Reclaim(c Claimable) error {
	if c == nil {
		return errcode.New(errcode.OwnershipViolation, p.gpio.Name()+".reclaim", "nil pin")
	}
	k := c.pin()
	if k.port != p {
		return errcode.New(errcode.InvalidParams, p.gpio.Name()+".reclaim", k.id.String()+" belongs to another port")
	}
	if err := k.tok.Retire(); err != nil {
		return err
	}
	p.inUse.Release(k.id.Pin)
	return nil
}

// Live reports whether pin n is currently handed out.
func (p *Port) Live(n uint8) bool { return p.inUse.Has(n) }

func (p *Port) setDir(id ID, out bool) {
	p.gpio.Modify(pac.GPIO_DIR, func(w uint32) uint32 {
		if out {
			return w | id.bit()
		}
		return w &^ id.bit()
	})
}

func (p *Port) level(id ID) bool { return p.gpio.Read(pac.GPIO_PIN)&id.bit() != 0 }

func (p *Port) drive(id ID, high bool) {
	if high {
		p.gpio.WriteBit(pac.GPIO_SET, id.Pin)
	} else {
		p.gpio.WriteBit(pac.GPIO_CLR, id.Pin)
	}
}
