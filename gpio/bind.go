package gpio

import (
	"lpc178x-hal/errcode"
	"lpc178x-hal/pac"
)

// Claimable is any live GPIO pin handle: *Pin, *Input, *Output or *Erased.
type Claimable interface {
	ID() ID
	pin() *core
}

// CheckLive fails with OwnershipViolation unless c still owns its pin. It
// has no side effects.
func CheckLive(c Claimable) error {
	if c == nil {
		return errcode.New(errcode.OwnershipViolation, "gpio", "nil pin")
	}
	return c.pin().tok.Check()
}

// Bound is a pin handed to a peripheral function through IOCON.
// It is not Claimable; Release it before binding the pin again.
type Bound struct {
	c  core
	fn AltFunc
}

// Bind consumes c and routes the pin to fn.
func Bind(c Claimable, fn AltFunc) (*Bound, error) {
	if err := CheckLive(c); err != nil {
		return nil, err
	}
	k := c.pin()
	f := pac.IOCONFunc(k.id.Port, k.id.Pin)
	if _, err := f.Insert(0, uint32(fn)); err != nil {
		return nil, err
	}
	n, err := k.moved()
	if err != nil {
		return nil, err
	}
	if err := k.port.iocon.Set(f, uint32(fn)); err != nil {
		return nil, err
	}
	return &Bound{c: n, fn: fn}, nil
}

func (b *Bound) ID() ID     { return b.c.id }
func (b *Bound) Live() bool { return b.c.tok.Live() }

// Func returns the selected IOCON function.
func (b *Bound) Func() AltFunc { return b.fn }

// Release returns the pin to GPIO (FUNC 0) as an Unknown-direction handle.
func (b *Bound) Release() (*Pin, error) {
	n, err := b.c.moved()
	if err != nil {
		return nil, err
	}
	if err := b.c.port.iocon.Set(pac.IOCONFunc(b.c.id.Port, b.c.id.Pin), uint32(FuncGPIO)); err != nil {
		return nil, err
	}
	return &Pin{n}, nil
}
