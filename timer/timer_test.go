package timer

import (
	"errors"
	"testing"
	"time"

	"lpc178x-hal/clock"
	"lpc178x-hal/errcode"
	"lpc178x-hal/internal/sim"
	"lpc178x-hal/pac"
)

func enabled(t *testing.T, n Instance) (*sim.Board, *NonPeriodic) {
	t.Helper()
	b := sim.New()
	clk, err := clock.New(b).Enable(96_000_000, 12_000_000)
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(b, n)
	if err != nil {
		t.Fatal(err)
	}
	tm, err := d.Enable(clk)
	if err != nil {
		t.Fatal(err)
	}
	return b, tm
}

func TestEnableProgramsTickAndMatch(t *testing.T) {
	b, _ := enabled(t, TIMER2)
	base := pac.TimerBases[2]
	if pr := b.Peek(base + pac.TIM_PR.Offset); pr != 96 {
		t.Fatalf("PR=%d", pr)
	}
	if mcr := b.Peek(base + pac.TIM_MCR.Offset); mcr != 0b101 {
		t.Fatalf("MCR=%#b", mcr)
	}
	if !clock.NewGate(b).IsOn(pac.PCTIM2) {
		t.Fatalf("TIMER2 not powered")
	}
}

func TestEnableGuards(t *testing.T) {
	b := sim.New()
	clk, _ := clock.New(b).Enable(96_000_000, 12_000_000)
	d, _ := New(b, TIMER0)
	if _, err := d.Enable(nil); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("nil clock: %v", err)
	}
	if _, err := d.Enable(clk); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Enable(clk); !errors.Is(err, errcode.OwnershipViolation) {
		t.Fatalf("second enable: %v", err)
	}
	if _, err := New(b, NumInstances); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("timer4: %v", err)
	}
}

func TestOneShotReadyExactlyOnce(t *testing.T) {
	b, tm := enabled(t, TIMER0)
	if err := tm.Start(3 * time.Second); err != nil {
		t.Fatal(err)
	}
	if mr0 := b.Peek(pac.TimerBases[0] + pac.TIM_MR0.Offset); mr0 != 3_000_000 {
		t.Fatalf("MR0=%d", mr0)
	}
	b.Advance(2_999_999)
	if err := tm.Wait(); err != errcode.WouldBlock {
		t.Fatalf("early wait: %v", err)
	}
	b.Advance(2)
	if err := tm.Wait(); err != nil {
		t.Fatalf("wait after expiry: %v", err)
	}
	if err := tm.Wait(); err != errcode.WouldBlock {
		t.Fatalf("second wait: %v", err)
	}
	if tm.Ticks() != 3_000_000 {
		t.Fatalf("ticks %d", tm.Ticks())
	}
	// Stopped at the match, so there is nothing to cancel.
	if err := tm.Cancel(); !errors.Is(err, errcode.NotStarted) {
		t.Fatalf("cancel after expiry: %v", err)
	}
}

func TestStartRoundsUpAndValidates(t *testing.T) {
	b, tm := enabled(t, TIMER1)
	mr0 := pac.TimerBases[1] + pac.TIM_MR0.Offset
	if err := tm.Start(1500 * time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	if v := b.Peek(mr0); v != 2 {
		t.Fatalf("MR0=%d", v)
	}
	b.ResetLog()
	for _, d := range []time.Duration{-time.Microsecond, (1<<32 + 1) * time.Microsecond} {
		if err := tm.Start(d); !errors.Is(err, errcode.InvalidDuration) {
			t.Fatalf("Start(%v): %v", d, err)
		}
	}
	if n := len(b.Writes()); n != 0 {
		t.Fatalf("%d writes after rejected starts", n)
	}
	if err := tm.Start((1<<32 - 1) * time.Microsecond); err != nil {
		t.Fatalf("max duration: %v", err)
	}
}

func TestCancel(t *testing.T) {
	b, tm := enabled(t, TIMER3)
	if err := tm.Cancel(); !errors.Is(err, errcode.NotStarted) {
		t.Fatalf("cancel before start: %v", err)
	}
	_ = tm.Start(time.Millisecond)
	b.Advance(400)
	if err := tm.Cancel(); err != nil {
		t.Fatal(err)
	}
	if tm.Ticks() != 0 {
		t.Fatalf("ticks %d after cancel", tm.Ticks())
	}
	b.Advance(1000)
	if err := tm.Wait(); err != errcode.WouldBlock {
		t.Fatalf("cancelled timer fired: %v", err)
	}
}

func TestPeriodicRearms(t *testing.T) {
	b, one := enabled(t, TIMER0)
	per, err := one.IntoPeriodic()
	if err != nil {
		t.Fatal(err)
	}
	if mcr := b.Peek(pac.TimerBases[0] + pac.TIM_MCR.Offset); mcr != 0b011 {
		t.Fatalf("MCR=%#b", mcr)
	}
	var cd CountDown = per
	if err := cd.Start(10 * time.Microsecond); err != nil {
		t.Fatal(err)
	}
	b.Advance(25)
	if cd.Ticks() != 5 {
		t.Fatalf("ticks %d", cd.Ticks())
	}
	if err := cd.Wait(); err != nil {
		t.Fatalf("first period: %v", err)
	}
	if err := cd.Wait(); err != errcode.WouldBlock {
		t.Fatalf("flag not cleared: %v", err)
	}
	b.Advance(5)
	if err := cd.Wait(); err != nil {
		t.Fatalf("next period: %v", err)
	}

	back, err := per.IntoNonPeriodic()
	if err != nil {
		t.Fatal(err)
	}
	if mcr := b.Peek(pac.TimerBases[0] + pac.TIM_MCR.Offset); mcr != 0b101 {
		t.Fatalf("MCR=%#b", mcr)
	}
	if back.Instance() != TIMER0 {
		t.Fatalf("instance %v", back.Instance())
	}
}

func TestConsumedModesReject(t *testing.T) {
	_, one := enabled(t, TIMER0)
	per, _ := one.IntoPeriodic()
	_, _ = per.IntoNonPeriodic()

	for name, op := range map[string]func() error{
		"one.Start":           func() error { return one.Start(time.Second) },
		"one.Wait":            one.Wait,
		"one.Cancel":          one.Cancel,
		"one.IntoPeriodic":    func() error { _, err := one.IntoPeriodic(); return err },
		"per.Start":           func() error { return per.Start(time.Second) },
		"per.Wait":            per.Wait,
		"per.IntoNonPeriodic": func() error { _, err := per.IntoNonPeriodic(); return err },
	} {
		if err := op(); !errors.Is(err, errcode.OwnershipViolation) {
			t.Fatalf("%s: %v", name, err)
		}
	}
}
