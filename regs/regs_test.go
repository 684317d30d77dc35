package regs

import (
	"errors"
	"testing"

	"lpc178x-hal/errcode"
)

type mapBus struct {
	mem    map[uintptr]uint32
	stores int
}

func newMapBus() *mapBus { return &mapBus{mem: map[uintptr]uint32{}} }

func (m *mapBus) Load32(a uintptr) uint32     { return m.mem[a] }
func (m *mapBus) Store32(a uintptr, v uint32) { m.mem[a] = v; m.stores++ }

var (
	cfg  = Reg{Name: "CFG", Offset: 0x84}
	msel = Field{Reg: cfg, Name: "MSEL", Shift: 0, Width: 5}
	psel = Field{Reg: cfg, Name: "PSEL", Shift: 5, Width: 2}
	stat = Reg{Name: "STAT", Offset: 0x88}
	lock = Field{Reg: stat, Name: "PLOCK", Shift: 10, Width: 1}
)

func TestFieldInsertExtract(t *testing.T) {
	w, err := msel.Insert(0xFFFF_FFFF, 9)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if w != 0xFFFF_FFE9 {
		t.Fatalf("Insert = %#x", w)
	}
	if msel.Extract(w) != 9 || psel.Extract(w) != 3 {
		t.Fatalf("Extract mismatch: msel=%d psel=%d", msel.Extract(w), psel.Extract(w))
	}
	if psel.Mask() != 0x60 {
		t.Fatalf("Mask = %#x", psel.Mask())
	}
}

func TestFieldOverflowIsRejected(t *testing.T) {
	_, err := msel.Insert(0, 32)
	if !errors.Is(err, errcode.FieldOverflow) {
		t.Fatalf("want field_overflow, got %v", err)
	}
}

func TestBlockWriteFieldsComposesOnce(t *testing.T) {
	bus := newMapBus()
	b := NewBlock(bus, "SYSCON", 0x400F_C000)
	if err := b.WriteFields(cfg, msel.Val(9), psel.Val(1)); err != nil {
		t.Fatalf("WriteFields: %v", err)
	}
	if bus.stores != 1 {
		t.Fatalf("stores = %d, want 1", bus.stores)
	}
	if got := bus.mem[0x400F_C084]; got != 9|1<<5 {
		t.Fatalf("CFG = %#x", got)
	}
	if b.Get(psel) != 1 {
		t.Fatalf("Get(PSEL) = %d", b.Get(psel))
	}
}

func TestBlockRejectsBeforeWriting(t *testing.T) {
	bus := newMapBus()
	b := NewBlock(bus, "SYSCON", 0)
	if err := b.WriteFields(cfg, msel.Val(40), psel.Val(0)); err == nil {
		t.Fatalf("expected overflow")
	}
	if err := b.WriteFields(cfg, lock.On()); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("want invalid_params for foreign field, got %v", err)
	}
	if err := b.Set(psel, 4); err == nil {
		t.Fatalf("expected overflow")
	}
	if bus.stores != 0 {
		t.Fatalf("stores = %d, want 0", bus.stores)
	}
}

func TestBlockModifyAndBits(t *testing.T) {
	bus := newMapBus()
	b := NewBlock(bus, "GPIO0", 0x2009_8000)
	b.Modify(Reg{Name: "DIR", Offset: 0}, func(v uint32) uint32 { return v | 1<<18 })
	if bus.mem[0x2009_8000] != 1<<18 {
		t.Fatalf("DIR = %#x", bus.mem[0x2009_8000])
	}
	b.WriteBit(stat, 10)
	if !b.IsSet(lock) {
		t.Fatalf("PLOCK not observed")
	}
	if err := b.Set(psel, 2); err != nil || b.Read(cfg) != 2<<5 {
		t.Fatalf("Set: %v cfg=%#x", err, b.Read(cfg))
	}
}
