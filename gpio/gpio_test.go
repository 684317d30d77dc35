package gpio

import (
	"errors"
	"testing"

	"lpc178x-hal/errcode"
	"lpc178x-hal/internal/sim"
	"lpc178x-hal/pac"
	"lpc178x-hal/typestate"
)

func newPort(t *testing.T, n uint8) (*sim.Board, *Port) {
	t.Helper()
	b := sim.New()
	p, err := NewPort(b, n)
	if err != nil {
		t.Fatalf("NewPort(%d): %v", n, err)
	}
	return b, p
}

func TestParseID(t *testing.T) {
	ok := map[string]ID{
		"P1.18": {1, 18},
		"p0.0":  {0, 0},
		"2.9":   {2, 9},
		"P5.4":  {5, 4},
	}
	for s, want := range ok {
		got, err := ParseID(s)
		if err != nil || got != want {
			t.Fatalf("ParseID(%q) = %v, %v", s, got, err)
		}
		if s[0] == 'P' && got.String() != s {
			t.Fatalf("String() = %q, want %q", got.String(), s)
		}
	}
	for _, s := range []string{"", "P1", "P1.", "Px.1", "P5.5", "P6.0", "P0.32", "P1.-1"} {
		if _, err := ParseID(s); !errors.Is(err, errcode.UnknownPin) {
			t.Fatalf("ParseID(%q) err=%v", s, err)
		}
	}
}

func TestSplitHandsOutEveryPinOnce(t *testing.T) {
	_, p := newPort(t, 5)
	pins, err := p.Split()
	if err != nil {
		t.Fatal(err)
	}
	if len(pins) != pac.PinsOnPort5 {
		t.Fatalf("port 5 split into %d pins", len(pins))
	}
	for i, pin := range pins {
		if pin.ID() != (ID{5, uint8(i)}) || !p.Live(uint8(i)) {
			t.Fatalf("pin %d: %v live=%v", i, pin.ID(), p.Live(uint8(i)))
		}
	}
	if _, err := p.Split(); !errors.Is(err, errcode.OwnershipViolation) {
		t.Fatalf("second split: %v", err)
	}

	// Returning every pin makes the port splittable again.
	for i, pin := range pins {
		if err := p.CheckSplit(); !errors.Is(err, errcode.OwnershipViolation) {
			t.Fatalf("CheckSplit with %d pins out: %v", len(pins)-i, err)
		}
		if err := p.Reclaim(pin); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.CheckSplit(); err != nil {
		t.Fatalf("CheckSplit after reclaim: %v", err)
	}
	if _, err := p.Split(); err != nil {
		t.Fatalf("split after reclaim: %v", err)
	}
	if err := p.Reclaim(pins[0]); !errors.Is(err, errcode.OwnershipViolation) {
		t.Fatalf("reclaim of a consumed handle: %v", err)
	}
}

func TestReclaimRejectsForeignPin(t *testing.T) {
	b := sim.New()
	p0, _ := NewPort(b, 0)
	p1, _ := NewPort(b, 1)
	pins, _ := p1.Split()
	if err := p0.Reclaim(pins[3]); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("foreign reclaim: %v", err)
	}
	if !pins[3].Live() {
		t.Fatalf("foreign reclaim consumed the pin")
	}
	if _, err := NewPort(b, pac.NumPorts); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("port 6: %v", err)
	}
}

func TestDirectionAndLevels(t *testing.T) {
	b, p := newPort(t, 1)
	pins, _ := p.Split()
	dir := pac.GPIOPortBase(1) + pac.GPIO_DIR.Offset

	out, err := pins[18].IntoOutput()
	if err != nil {
		t.Fatal(err)
	}
	if b.Peek(dir) != 1<<18 {
		t.Fatalf("DIR=%#x", b.Peek(dir))
	}
	if err := out.SetHigh(); err != nil {
		t.Fatal(err)
	}
	if err := out.Toggle(); err != nil {
		t.Fatal(err)
	}
	set := b.WritesTo(pac.GPIOPortBase(1) + pac.GPIO_SET.Offset)
	clr := b.WritesTo(pac.GPIOPortBase(1) + pac.GPIO_CLR.Offset)
	if len(set) != 1 || set[0] != 1<<18 || len(clr) != 1 || clr[0] != 1<<18 {
		t.Fatalf("SET=%v CLR=%v", set, clr)
	}

	in, err := out.IntoInput()
	if err != nil {
		t.Fatal(err)
	}
	if b.Peek(dir) != 0 {
		t.Fatalf("DIR=%#x after IntoInput", b.Peek(dir))
	}
	b.DrivePin(1, 18, true)
	if h, err := in.IsHigh(); err != nil || !h {
		t.Fatalf("IsHigh = %v, %v", h, err)
	}
	b.DrivePin(1, 18, false)
	if l, err := in.IsLow(); err != nil || !l {
		t.Fatalf("IsLow = %v, %v", l, err)
	}
	if in.State() != (typestate.Input{}) {
		t.Fatalf("state %v", in.State())
	}
}

func TestConsumedHandlesRejectEverything(t *testing.T) {
	_, p := newPort(t, 2)
	pins, _ := p.Split()

	pin := pins[0]
	out, _ := pin.IntoOutput()
	in, _ := out.IntoInput()
	er, _ := in.Erase()
	b, _ := Bind(er, 2)

	ops := map[string]func() error{
		"pin.IntoInput":  func() error { _, err := pin.IntoInput(); return err },
		"pin.IntoOutput": func() error { _, err := pin.IntoOutput(); return err },
		"pin.Erase":      func() error { _, err := pin.Erase(); return err },
		"out.SetHigh":    out.SetHigh,
		"out.SetLow":     out.SetLow,
		"out.Toggle":     out.Toggle,
		"out.IntoInput":  func() error { _, err := out.IntoInput(); return err },
		"in.IsHigh":      func() error { _, err := in.IsHigh(); return err },
		"in.IntoOutput":  func() error { _, err := in.IntoOutput(); return err },
		"in.Erase":       func() error { _, err := in.Erase(); return err },
		"erased.Set":     func() error { return er.Set(true) },
		"erased.Into":    func() error { _, err := er.IntoOutput(); return err },
		"bind.again":     func() error { _, err := Bind(in, 1); return err },
		"check.live":     func() error { return CheckLive(out) },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, errcode.OwnershipViolation) {
			t.Fatalf("%s: %v", name, err)
		}
	}

	released, err := b.Release()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Release(); !errors.Is(err, errcode.OwnershipViolation) {
		t.Fatalf("double release: %v", err)
	}
	if err := CheckLive(released); err != nil {
		t.Fatalf("released pin not live: %v", err)
	}
}

func TestErasedDirectionGuards(t *testing.T) {
	b, p := newPort(t, 0)
	pins, _ := p.Split()

	unk, _ := pins[4].Erase()
	if unk.Direction() != (typestate.Unknown{}) {
		t.Fatalf("direction %v", unk.Direction())
	}
	if err := unk.SetHigh(); !errors.Is(err, errcode.InvalidStateTransition) {
		t.Fatalf("set on unknown: %v", err)
	}
	if _, err := unk.IsHigh(); !errors.Is(err, errcode.InvalidStateTransition) {
		t.Fatalf("read on unknown: %v", err)
	}

	out, err := unk.IntoOutput()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := out.IsLow(); !errors.Is(err, errcode.InvalidStateTransition) {
		t.Fatalf("read on output: %v", err)
	}
	if err := out.SetHigh(); err != nil {
		t.Fatal(err)
	}
	if b.Peek(pac.GPIOPortBase(0)+pac.GPIO_PIN.Offset) != 1<<4 {
		t.Fatalf("erased output did not drive")
	}

	in, err := out.IntoInput()
	if err != nil {
		t.Fatal(err)
	}
	if err := in.Toggle(); !errors.Is(err, errcode.InvalidStateTransition) {
		t.Fatalf("toggle on input: %v", err)
	}
	if h, err := in.IsHigh(); err != nil || !h {
		t.Fatalf("IsHigh = %v, %v", h, err)
	}
}

func TestBindWritesIOCON(t *testing.T) {
	b, p := newPort(t, 0)
	pins, _ := p.Split()
	iocon := uintptr(pac.IOCONBase) + pac.IOCONPin(0, 2).Offset
	b.Poke(iocon, 0x30) // mode bits survive

	bound, err := Bind(pins[2], 1)
	if err != nil {
		t.Fatal(err)
	}
	if b.Peek(iocon) != 0x31 || bound.Func() != 1 || bound.ID() != (ID{0, 2}) {
		t.Fatalf("IOCON=%#x func=%d", b.Peek(iocon), bound.Func())
	}
	pin, err := bound.Release()
	if err != nil {
		t.Fatal(err)
	}
	if b.Peek(iocon) != 0x30 || pin.ID() != (ID{0, 2}) {
		t.Fatalf("IOCON=%#x after release", b.Peek(iocon))
	}

	b.ResetLog()
	if _, err := Bind(pin, 8); !errors.Is(err, errcode.FieldOverflow) {
		t.Fatalf("func 8: %v", err)
	}
	if !pin.Live() || len(b.Writes()) != 0 {
		t.Fatalf("overflowing bind had side effects")
	}
}
