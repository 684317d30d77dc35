package gpio

import "lpc178x-hal/typestate"

// Erased is a pin whose direction is tracked at run time instead of in its
// type. Wrong-direction calls fail with InvalidStateTransition.
type Erased struct {
	core
	dir typestate.State
}

// Direction returns Unknown, Input or Output.
func (p *Erased) Direction() typestate.State { return p.dir }

func (p *Erased) require(op string, want typestate.State) error {
	if err := p.tok.Check(); err != nil {
		return err
	}
	return typestate.Require(p.id.String()+"."+op, p.dir, want)
}

func (p *Erased) IntoInput() (*Erased, error) {
	n, err := p.toInput()
	if err != nil {
		return nil, err
	}
	return &Erased{core: n, dir: typestate.Input{}}, nil
}

func (p *Erased) IntoOutput() (*Erased, error) {
	n, err := p.toOutput()
	if err != nil {
		return nil, err
	}
	return &Erased{core: n, dir: typestate.Output{}}, nil
}

func (p *Erased) Set(high bool) error {
	if err := p.require("set", typestate.Output{}); err != nil {
		return err
	}
	p.port.drive(p.id, high)
	return nil
}

func (p *Erased) SetHigh() error { return p.Set(true) }
func (p *Erased) SetLow() error  { return p.Set(false) }

func (p *Erased) Toggle() error {
	if err := p.require("toggle", typestate.Output{}); err != nil {
		return err
	}
	p.port.drive(p.id, !p.port.level(p.id))
	return nil
}

func (p *Erased) IsHigh() (bool, error) {
	if err := p.require("is_high", typestate.Input{}); err != nil {
		return false, err
	}
	return p.port.level(p.id), nil
}

func (p *Erased) IsLow() (bool, error) {
	h, err := p.IsHigh()
	return !h, err
}
