package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// Abs for signed integers and floats.
func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// FitsBits reports whether v is representable in an unsigned field of width bits.
func FitsBits[T constraints.Integer](v T, width uint8) bool {
	if v < 0 {
		return false
	}
	if width >= 64 {
		return true
	}
	return uint64(v) < uint64(1)<<width
}

// Mask returns the low-aligned bit mask for a field of width bits.
func Mask(width uint8) uint32 {
	if width >= 32 {
		return 0xFFFF_FFFF
	}
	return uint32(1)<<width - 1
}
