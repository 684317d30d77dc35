package clock

import (
	"lpc178x-hal/pac"
	"lpc178x-hal/regs"
	"lpc178x-hal/typestate"
)

// Disabled is the clock before bring-up. Enable consumes it.
type Disabled struct {
	sys regs.Block
	tok *typestate.Token
}

// Enabled is the running core clock. It is never disabled; timers and UARTs
// borrow it to read the CPU frequency.
type Enabled struct {
	pll PLL
}

// New returns the clock handle for the SYSCON block on bus.
func New(bus regs.Bus) *Disabled {
	return &Disabled{
		sys: regs.NewBlock(bus, "syscon", pac.SYSCONBase),
		tok: typestate.NewToken("clock"),
	}
}

func (*Disabled) State() typestate.State { return typestate.Disabled{} }
func (*Enabled) State() typestate.State  { return typestate.Enabled{} }

// Check fails with OwnershipViolation once the clock has been enabled. It
// writes nothing.
func (d *Disabled) Check() error { return d.tok.Check() }

// Enable plans PLL0 for targetHz from a crystalHz main oscillator and runs the
// bring-up sequence. Nothing is written unless the plan is valid.
//
// The oscillator and PLL lock waits do not time out: a board without a working
// crystal hangs here. Bring-up runs once, at boot.
func (d *Disabled) Enable(targetHz, crystalHz uint32) (*Enabled, error) {
	if err := d.tok.Check(); err != nil {
		return nil, err
	}
	pll, err := Plan(targetHz, crystalHz)
	if err != nil {
		return nil, err
	}
	w, err := sequence(pll)
	if err != nil {
		return nil, err
	}
	if err := d.tok.Retire(); err != nil {
		return nil, err
	}

	s := d.sys
	s.Write(pac.SCS, s.Read(pac.SCS)|w.scs)
	for !s.IsSet(pac.SCS_OSCSTAT) {
	}
	s.Write(pac.CLKSRCSEL, w.clksrc)

	s.Write(pac.PLL0CFG, w.cfg)
	s.Write(pac.PLL0CON, w.con)
	s.Write(pac.PLL0FEED, w.feed[0])
	s.Write(pac.PLL0FEED, w.feed[1])
	for !s.IsSet(pac.PLL0STAT_PLOCK) {
	}

	s.Write(pac.CCLKSEL, w.cclk)
	s.Write(pac.PCLKSEL, w.pclk)
	s.Write(pac.PBOOST, w.boost)
	s.Write(pac.FLASHCFG, pac.FLASHCFGValue)

	println("[clock] pll0 locked m=", pll.Multiplier(), " psel=", pll.P, " cclk=", pll.CPUHz)
	return &Enabled{pll: pll}, nil
}

// Frequency returns the core clock in Hz.
func (e *Enabled) Frequency() uint32 { return e.pll.CPUHz }

// PLL returns the configuration that produced the core clock.
func (e *Enabled) PLL() PLL { return e.pll }

type words struct {
	scs, clksrc, cfg, con, cclk, pclk, boost uint32
	feed                                     [2]uint32
}

// Crystals above this need the high-range oscillator (OSCRANGE=1).
const lowRangeMaxHz = 20_000_000

// sequence composes every bring-up word so a bad field fails before the
// first store.
func sequence(p PLL) (w words, err error) {
	var oscRange uint32
	if p.CPUHz/p.Multiplier() > lowRangeMaxHz {
		oscRange = 1
	}
	steps := []struct {
		dst  *uint32
		vals []regs.FieldValue
	}{
		{&w.scs, []regs.FieldValue{pac.SCS_OSCRANGE.Val(oscRange), pac.SCS_OSCEN.On()}},
		{&w.clksrc, []regs.FieldValue{pac.CLKSRCSEL_CLKSRC.On()}},
		{&w.cfg, []regs.FieldValue{pac.PLL0CFG_MSEL.Val(uint32(p.M)), pac.PLL0CFG_PSEL.Val(uint32(p.P))}},
		{&w.con, []regs.FieldValue{pac.PLL0CON_PLLE.On()}},
		{&w.feed[0], []regs.FieldValue{pac.PLL0FEED_PLLFEED.Val(pac.PLLFeed1)}},
		{&w.feed[1], []regs.FieldValue{pac.PLL0FEED_PLLFEED.Val(pac.PLLFeed2)}},
		{&w.cclk, []regs.FieldValue{pac.CCLKSEL_CCLKDIV.Val(1), pac.CCLKSEL_CCLKSEL.On()}},
		{&w.pclk, []regs.FieldValue{pac.PCLKSEL_PCLKDIV.Val(1)}},
		{&w.boost, []regs.FieldValue{pac.PBOOST_BOOST.Val(pac.BoostMax)}},
	}
	for _, st := range steps {
		if *st.dst, err = regs.Compose(st.vals...); err != nil {
			return words{}, err
		}
	}
	return w, nil
}
