// Package regs is the validated accessor boundary between peripheral code and
// memory-mapped registers. Peripherals see a Block and named Fields; raw
// addresses never leave this package's callers' register maps.
package regs

import (
	"lpc178x-hal/errcode"
	"lpc178x-hal/x/conv"
	"lpc178x-hal/x/mathx"
)

// Bus is the word-access contract of the peripheral-access layer.
// On hardware it is volatile MMIO; on the host it is a simulator.
// Implementations must be comparable: the peripherals handle is claimed
// once per Bus value.
type Bus interface {
	Load32(addr uintptr) uint32
	Store32(addr uintptr, v uint32)
}

// Reg is a 32-bit register at Offset from its block base.
type Reg struct {
	Name   string
	Offset uintptr
}

// Field is a bit-field of Width bits starting at Shift inside Reg.
type Field struct {
	Reg   Reg
	Name  string
	Shift uint8
	Width uint8
}

// Mask returns the in-place mask of the field.
func (f Field) Mask() uint32 { return mathx.Mask(f.Width) << f.Shift }

// Fits reports whether v can be stored in the field.
func (f Field) Fits(v uint32) bool { return mathx.FitsBits(v, f.Width) }

// Extract returns the field value from a register word.
func (f Field) Extract(word uint32) uint32 { return (word & f.Mask()) >> f.Shift }

// Insert returns word with the field replaced by v, or FieldOverflow.
func (f Field) Insert(word, v uint32) (uint32, error) {
	if !f.Fits(v) {
		return word, errcode.New(errcode.FieldOverflow, f.qualified(),
			"value "+conv.U32(v)+" exceeds "+conv.U32(uint32(f.Width))+" bits")
	}
	return word&^f.Mask() | v<<f.Shift, nil
}

// Val pairs the field with a value for WriteFields.
func (f Field) Val(v uint32) FieldValue { return FieldValue{Field: f, Value: v} }

// On is Val(1), for single-bit flags.
func (f Field) On() FieldValue { return f.Val(1) }

func (f Field) qualified() string { return f.Reg.Name + "." + f.Name }

// FieldValue is one field assignment of a composed register write.
type FieldValue struct {
	Field Field
	Value uint32
}

// Compose builds a register word from zero, validating every assignment
// before anything is returned.
func Compose(vals ...FieldValue) (uint32, error) {
	var w uint32
	for _, fv := range vals {
		var err error
		if w, err = fv.Field.Insert(w, fv.Value); err != nil {
			return 0, err
		}
	}
	return w, nil
}

// Block is one peripheral instance's register window.
type Block struct {
	bus  Bus
	name string
	base uintptr
}

// NewBlock binds a register window at base on bus.
func NewBlock(bus Bus, name string, base uintptr) Block {
	return Block{bus: bus, name: name, base: base}
}

func (b Block) Name() string       { return b.name }
func (b Block) Base() uintptr      { return b.base }
func (b Block) Addr(r Reg) uintptr { return b.base + r.Offset }

func (b Block) Read(r Reg) uint32     { return b.bus.Load32(b.Addr(r)) }
func (b Block) Write(r Reg, v uint32) { b.bus.Store32(b.Addr(r), v) }

// Modify performs a read-modify-write of r.
func (b Block) Modify(r Reg, fn func(uint32) uint32) { b.Write(r, fn(b.Read(r))) }

// Get reads one field.
func (b Block) Get(f Field) uint32 { return f.Extract(b.Read(f.Reg)) }

// IsSet reports whether a (single-bit) field is non-zero.
func (b Block) IsSet(f Field) bool { return b.Get(f) != 0 }

// Set read-modify-writes one field; nothing is written on overflow.
func (b Block) Set(f Field, v uint32) error {
	w, err := f.Insert(b.Read(f.Reg), v)
	if err != nil {
		return err
	}
	b.Write(f.Reg, w)
	return nil
}

// WriteFields composes r from zero with the given fields and writes it once.
// Fields must belong to r; nothing is written if any value overflows.
func (b Block) WriteFields(r Reg, vals ...FieldValue) error {
	for _, fv := range vals {
		if fv.Field.Reg != r {
			return errcode.New(errcode.InvalidParams, b.name+"."+r.Name, "field "+fv.Field.qualified()+" belongs to another register")
		}
	}
	w, err := Compose(vals...)
	if err != nil {
		return err
	}
	b.Write(r, w)
	return nil
}

// WriteBit writes a word with only bit n set (SET/CLR/W1C style registers).
func (b Block) WriteBit(r Reg, n uint8) { b.Write(r, uint32(1)<<n) }
