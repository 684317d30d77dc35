// Package timer runs TIMER0..TIMER3 as microsecond countdowns on match
// register 0.
package timer

import (
	"math"
	"time"

	"lpc178x-hal/clock"
	"lpc178x-hal/errcode"
	"lpc178x-hal/pac"
	"lpc178x-hal/regs"
	"lpc178x-hal/typestate"
	"lpc178x-hal/x/conv"
	"lpc178x-hal/x/mathx"
)

// Instance selects TIMER0..TIMER3.
type Instance uint8

const (
	TIMER0 Instance = iota
	TIMER1
	TIMER2
	TIMER3

	NumInstances = 4
)

func (n Instance) String() string { return "timer" + conv.U32(uint32(n)) }

// CountDown is the operation set shared by both modes.
type CountDown interface {
	Start(d time.Duration) error
	Wait() error
	Cancel() error
	Ticks() uint32
}

var (
	_ CountDown = (*NonPeriodic)(nil)
	_ CountDown = (*Periodic)(nil)
)

// Disabled is an unclocked timer.
type Disabled struct {
	n    Instance
	blk  regs.Block
	gate clock.Gate
	tok  *typestate.Token
}

// New returns the handle of timer n on bus.
func New(bus regs.Bus, n Instance) (*Disabled, error) {
	if n >= NumInstances {
		return nil, errcode.New(errcode.InvalidParams, "timer.new", "no "+n.String())
	}
	return &Disabled{
		n:    n,
		blk:  regs.NewBlock(bus, n.String(), pac.TimerBases[n]),
		gate: clock.NewGate(bus),
		tok:  typestate.NewToken(n.String()),
	}, nil
}

func (d *Disabled) Instance() Instance   { return d.n }
func (*Disabled) State() typestate.State { return typestate.Disabled{} }

// Enable powers the timer with a one-microsecond tick from clk and returns
// it in one-shot mode.
func (d *Disabled) Enable(clk *clock.Enabled) (*NonPeriodic, error) {
	if err := d.tok.Check(); err != nil {
		return nil, err
	}
	if clk == nil {
		return nil, errcode.New(errcode.InvalidParams, d.n.String()+".enable", "nil clock")
	}
	mcr, err := matchControl(pac.TIM_MCR_MR0S)
	if err != nil {
		return nil, err
	}
	pr, err := regs.Compose(pac.TIM_PR_PM.Val(clk.Frequency() / 1_000_000))
	if err != nil {
		return nil, err
	}
	tok, err := d.tok.Move()
	if err != nil {
		return nil, err
	}
	d.gate.On(pac.PCONPTimer[d.n])
	d.blk.Write(pac.TIM_PR, pr)
	d.blk.Write(pac.TIM_MCR, mcr)
	return &NonPeriodic{countdown{n: d.n, blk: d.blk, tok: tok}}, nil
}

// matchControl is "interrupt on MR0" plus the stop or reset action.
func matchControl(action regs.Field) (uint32, error) {
	return regs.Compose(pac.TIM_MCR_MR0I.On(), action.On())
}

type countdown struct {
	n   Instance
	blk regs.Block
	tok *typestate.Token
}

func (c *countdown) Instance() Instance { return c.n }

// Start resets the counter and runs it until d has elapsed. d is rounded up
// to whole microseconds and must fit in 32 bits of them.
func (c *countdown) Start(d time.Duration) error {
	if err := c.tok.Check(); err != nil {
		return err
	}
	if d < 0 {
		return errcode.New(errcode.InvalidDuration, c.n.String()+".start", "negative duration")
	}
	us := mathx.CeilDiv(uint64(d), uint64(time.Microsecond))
	if us > math.MaxUint32 {
		return errcode.New(errcode.InvalidDuration, c.n.String()+".start", d.String()+" exceeds 32-bit microseconds")
	}
	mr0, err := regs.Compose(pac.TIM_MR0_MATCH.Val(uint32(us)))
	if err != nil {
		return err
	}
	c.blk.WriteBit(pac.TIM_TCR, pac.TIM_TCR_CRST.Shift)
	c.blk.Write(pac.TIM_MR0, mr0)
	c.blk.WriteBit(pac.TIM_TCR, pac.TIM_TCR_CEN.Shift)
	return nil
}

// Wait returns nil once per match and WouldBlock in between.
func (c *countdown) Wait() error {
	if err := c.tok.Check(); err != nil {
		return err
	}
	if !c.blk.IsSet(pac.TIM_IR_MR0INT) {
		return errcode.WouldBlock
	}
	c.blk.WriteBit(pac.TIM_IR, pac.TIM_IR_MR0INT.Shift)
	return nil
}

// Cancel stops and resets a running countdown; NotStarted if it is idle.
func (c *countdown) Cancel() error {
	if err := c.tok.Check(); err != nil {
		return err
	}
	if !c.blk.IsSet(pac.TIM_TCR_CEN) {
		return errcode.New(errcode.NotStarted, c.n.String()+".cancel", "counter is not running")
	}
	c.blk.WriteBit(pac.TIM_TCR, pac.TIM_TCR_CRST.Shift)
	return nil
}

// Ticks returns the counter, in microseconds since Start.
func (c *countdown) Ticks() uint32 { return c.blk.Read(pac.TIM_TC) }

func (c *countdown) into(action regs.Field) (countdown, error) {
	mcr, err := matchControl(action)
	if err != nil {
		return countdown{}, err
	}
	tok, err := c.tok.Move()
	if err != nil {
		return countdown{}, err
	}
	c.blk.Write(pac.TIM_MCR, mcr)
	return countdown{n: c.n, blk: c.blk, tok: tok}, nil
}

// NonPeriodic stops at the match.
type NonPeriodic struct{ countdown }

// Periodic restarts from zero at every match.
type Periodic struct{ countdown }

func (*NonPeriodic) State() typestate.State { return typestate.NonPeriodic{} }
func (*Periodic) State() typestate.State    { return typestate.Periodic{} }

// Periodic marks a countdown that repeats without being restarted.
func (*Periodic) Periodic() {}

func (t *NonPeriodic) IntoPeriodic() (*Periodic, error) {
	c, err := t.into(pac.TIM_MCR_MR0R)
	if err != nil {
		return nil, err
	}
	return &Periodic{c}, nil
}

func (t *Periodic) IntoNonPeriodic() (*NonPeriodic, error) {
	c, err := t.into(pac.TIM_MCR_MR0S)
	if err != nil {
		return nil, err
	}
	return &NonPeriodic{c}, nil
}
