package gpio

import "lpc178x-hal/typestate"

type core struct {
	id   ID
	port *Port
	tok  *typestate.Token
}

func (c *core) pin() *core { return c }

// ID returns the physical pin.
func (c *core) ID() ID { return c.id }

// Live reports whether this handle still owns the pin.
func (c *core) Live() bool { return c.tok.Live() }

// moved consumes c and returns a core for the next handle.
func (c *core) moved() (core, error) {
	tok, err := c.tok.Move()
	if err != nil {
		return core{}, err
	}
	return core{id: c.id, port: c.port, tok: tok}, nil
}

func (c *core) toInput() (core, error) {
	n, err := c.moved()
	if err != nil {
		return core{}, err
	}
	c.port.setDir(c.id, false)
	return n, nil
}

func (c *core) toOutput() (core, error) {
	n, err := c.moved()
	if err != nil {
		return core{}, err
	}
	c.port.setDir(c.id, true)
	return n, nil
}

func (c *core) erase(dir typestate.State) (*Erased, error) {
	n, err := c.moved()
	if err != nil {
		return nil, err
	}
	return &Erased{core: n, dir: dir}, nil
}

// Pin is a pin whose direction has not been chosen.
type Pin struct{ core }

// Input is a pin configured as an input.
type Input struct{ core }

// Output is a pin configured as an output.
type Output struct{ core }

func (*Pin) State() typestate.State    { return typestate.Unknown{} }
func (*Input) State() typestate.State  { return typestate.Input{} }
func (*Output) State() typestate.State { return typestate.Output{} }

func (p *Pin) IntoInput() (*Input, error) {
	n, err := p.toInput()
	if err != nil {
		return nil, err
	}
	return &Input{n}, nil
}

func (p *Pin) IntoOutput() (*Output, error) {
	n, err := p.toOutput()
	if err != nil {
		return nil, err
	}
	return &Output{n}, nil
}

func (p *Pin) Erase() (*Erased, error) { return p.erase(typestate.Unknown{}) }

func (p *Input) IntoInput() (*Input, error) {
	n, err := p.toInput()
	if err != nil {
		return nil, err
	}
	return &Input{n}, nil
}

func (p *Input) IntoOutput() (*Output, error) {
	n, err := p.toOutput()
	if err != nil {
		return nil, err
	}
	return &Output{n}, nil
}

func (p *Input) Erase() (*Erased, error) { return p.erase(typestate.Input{}) }

// IsHigh samples the pin.
func (p *Input) IsHigh() (bool, error) {
	if err := p.tok.Check(); err != nil {
		return false, err
	}
	return p.port.level(p.id), nil
}

func (p *Input) IsLow() (bool, error) {
	h, err := p.IsHigh()
	return !h, err
}

func (p *Output) IntoInput() (*Input, error) {
	n, err := p.toInput()
	if err != nil {
		return nil, err
	}
	return &Input{n}, nil
}

func (p *Output) IntoOutput() (*Output, error) {
	n, err := p.toOutput()
	if err != nil {
		return nil, err
	}
	return &Output{n}, nil
}

func (p *Output) Erase() (*Erased, error) { return p.erase(typestate.Output{}) }

func (p *Output) Set(high bool) error {
	if err := p.tok.Check(); err != nil {
		return err
	}
	p.port.drive(p.id, high)
	return nil
}

func (p *Output) SetHigh() error { return p.Set(true) }
func (p *Output) SetLow() error  { return p.Set(false) }

// Toggle inverts the driven level.
func (p *Output) Toggle() error {
	if err := p.tok.Check(); err != nil {
		return err
	}
	p.port.drive(p.id, !p.port.level(p.id))
	return nil
}
