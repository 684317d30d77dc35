// Package uart configures the LPC178x UART0..UART4 for 8N1 polled operation.
//
// A UART is enabled from a Disabled handle plus two GPIO pins that can carry
// its RXD and TXD signals. Every check (ownership, routing, divisor search)
// runs before the first register write, so a rejected enable leaves the
// hardware untouched. The enabled handle never blocks: data operations
// return errcode.WouldBlock until the line status allows them.
package uart

import (
	"lpc178x-hal/clock"
	"lpc178x-hal/errcode"
	"lpc178x-hal/gpio"
	"lpc178x-hal/pac"
	"lpc178x-hal/regs"
	"lpc178x-hal/typestate"
	"lpc178x-hal/x/conv"
)

// Instance selects UART0..UART4.
type Instance uint8

const (
	UART0 Instance = iota
	UART1
	UART2
	UART3
	UART4

	NumInstances = 5
)

func (n Instance) String() string { return "uart" + conv.U32(uint32(n)) }

// Disabled is an unpowered UART.
type Disabled struct {
	n    Instance
	blk  regs.Block
	gate clock.Gate
	tok  *typestate.Token
}

// Enabled is a powered UART with its pins bound.
type Enabled struct {
	n    Instance
	blk  regs.Block
	gate clock.Gate
	tok  *typestate.Token
	rx   *gpio.Bound
	tx   *gpio.Bound
	div  Divisors
}

// New returns the handle of UART n on bus.
func New(bus regs.Bus, n Instance) (*Disabled, error) {
	if n >= NumInstances {
		return nil, errcode.New(errcode.InvalidParams, "uart.new", "no "+n.String())
	}
	return &Disabled{
		n:    n,
		blk:  regs.NewBlock(bus, n.String(), pac.UARTBases[n]),
		gate: clock.NewGate(bus),
		tok:  typestate.NewToken(n.String()),
	}, nil
}

func (d *Disabled) Instance() Instance   { return d.n }
func (*Disabled) State() typestate.State { return typestate.Disabled{} }
func (e *Enabled) Instance() Instance    { return e.n }
func (*Enabled) State() typestate.State  { return typestate.Enabled{} }

// Check fails with OwnershipViolation once the handle has been enabled. It
// writes nothing.
func (d *Disabled) Check() error { return d.tok.Check() }

// Enable powers the UART with FixedDivisors.
func (d *Disabled) Enable(rx, tx gpio.Claimable) (*Enabled, error) {
	return d.enable(func() (Divisors, error) { return FixedDivisors, nil }, rx, tx)
}

// EnableBaud powers the UART with divisors derived for baud from clk.
func (d *Disabled) EnableBaud(clk *clock.Enabled, baud uint32, rx, tx gpio.Claimable) (*Enabled, error) {
	return d.enable(func() (Divisors, error) {
		if clk == nil {
			return Divisors{}, errcode.New(errcode.InvalidParams, d.n.String()+".enable", "nil clock")
		}
		return ComputeDivisors(clk.Frequency(), baud)
	}, rx, tx)
}

func (d *Disabled) enable(divisors func() (Divisors, error), rx, tx gpio.Claimable) (*Enabled, error) {
	op := d.n.String() + ".enable"

	if err := d.tok.Check(); err != nil {
		return nil, err
	}
	if err := gpio.CheckLive(rx); err != nil {
		return nil, err
	}
	if err := gpio.CheckLive(tx); err != nil {
		return nil, err
	}

	rxFn, ok := Route(rx.ID(), d.n, RX)
	if !ok {
		return nil, errcode.New(errcode.InvalidPinRouting, op, rx.ID().String()+" cannot carry "+d.n.String()+" "+RX.String())
	}
	txFn, ok := Route(tx.ID(), d.n, TX)
	if !ok {
		return nil, errcode.New(errcode.InvalidPinRouting, op, tx.ID().String()+" cannot carry "+d.n.String()+" "+TX.String())
	}

	div, err := divisors()
	if err != nil {
		return nil, err
	}
	w, err := compose(div)
	if err != nil {
		return nil, err
	}

	tok, err := d.tok.Move()
	if err != nil {
		return nil, err
	}
	rxB, err := gpio.Bind(rx, rxFn)
	if err != nil {
		return nil, err
	}
	txB, err := gpio.Bind(tx, txFn)
	if err != nil {
		return nil, err
	}

	d.gate.On(pac.PCONPUART[d.n])
	b := d.blk
	b.Write(pac.U_FCR, w.fcr)
	b.Write(pac.U_LCR, w.lcr|pac.U_LCR_DLAB.Mask())
	b.Write(pac.U_DLM, w.dlm)
	b.Write(pac.U_DLL, w.dll)
	b.Write(pac.U_FDR, w.fdr)
	b.Write(pac.U_LCR, w.lcr)

	return &Enabled{n: d.n, blk: d.blk, gate: d.gate, tok: tok, rx: rxB, tx: txB, div: div}, nil
}

type setup struct{ fcr, lcr, dlm, dll, fdr uint32 }

func compose(div Divisors) (s setup, err error) {
	if s.fcr, err = regs.Compose(pac.U_FCR_FIFOEN.On()); err != nil {
		return setup{}, err
	}
	if s.lcr, err = regs.Compose(pac.U_LCR_WLS.Val(pac.WLS8Bit)); err != nil {
		return setup{}, err
	}
	if s.dlm, err = regs.Compose(pac.U_DLM_DLM.Val(uint32(div.DLM))); err != nil {
		return setup{}, err
	}
	if s.dll, err = regs.Compose(pac.U_DLL_DLL.Val(uint32(div.DLL))); err != nil {
		return setup{}, err
	}
	s.fdr, err = regs.Compose(
		pac.U_FDR_DIVADDVAL.Val(uint32(div.DivAddVal)),
		pac.U_FDR_MULVAL.Val(uint32(div.MulVal)),
	)
	if err != nil {
		return setup{}, err
	}
	return s, nil
}

// Divisors returns the programmed baud setting.
func (e *Enabled) Divisors() Divisors { return e.div }

// Pins returns the bound RXD and TXD pins.
func (e *Enabled) Pins() (rx, tx gpio.ID) { return e.rx.ID(), e.tx.ID() }

// WriteByte loads c into the transmit holding register, or returns
// WouldBlock while it is still occupied.
func (e *Enabled) WriteByte(c byte) error {
	if err := e.tok.Check(); err != nil {
		return err
	}
	if !e.blk.IsSet(pac.U_LSR_THRE) {
		return errcode.WouldBlock
	}
	return e.blk.WriteFields(pac.U_THR, pac.U_THR_THR.Val(uint32(c)))
}

// Flush returns WouldBlock until the transmit holding register is empty.
func (e *Enabled) Flush() error {
	if err := e.tok.Check(); err != nil {
		return err
	}
	if !e.blk.IsSet(pac.U_LSR_THRE) {
		return errcode.WouldBlock
	}
	return nil
}

// ReadByte returns the next received byte, or WouldBlock if none is waiting.
func (e *Enabled) ReadByte() (byte, error) {
	if err := e.tok.Check(); err != nil {
		return 0, err
	}
	if !e.blk.IsSet(pac.U_LSR_RDR) {
		return 0, errcode.WouldBlock
	}
	return byte(pac.U_RBR_RBR.Extract(e.blk.Read(pac.U_RBR))), nil
}

// Release powers the UART down and returns its handle and both pins, back
// in GPIO mode.
func (e *Enabled) Release() (*Disabled, *gpio.Pin, *gpio.Pin, error) {
	tok, err := e.tok.Move()
	if err != nil {
		return nil, nil, nil, err
	}
	rx, err := e.rx.Release()
	if err != nil {
		return nil, nil, nil, err
	}
	tx, err := e.tx.Release()
	if err != nil {
		return nil, nil, nil, err
	}
	e.gate.Off(pac.PCONPUART[e.n])
	return &Disabled{n: e.n, blk: e.blk, gate: e.gate, tok: tok}, rx, tx, nil
}
