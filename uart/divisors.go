package uart

import (
	"math"

	"lpc178x-hal/errcode"
	"lpc178x-hal/x/conv"
	"lpc178x-hal/x/mathx"
)

// Divisors is a complete baud setting: the 16-bit divisor latch and the
// fractional divider, baud = cpu / (16 * DL * (1 + DivAddVal/MulVal)).
type Divisors struct {
	DLM       uint8
	DLL       uint8
	MulVal    uint8
	DivAddVal uint8
}

// FixedDivisors is the setting used by Disabled.Enable.
var FixedDivisors = Divisors{DLM: 0, DLL: 34, MulVal: 15, DivAddVal: 8}

// Search bounds of the fractional divider.
const (
	maxDivAdd = 13
	maxMul    = 14
)

// DL returns the divisor latch value.
func (d Divisors) DL() uint16 { return uint16(d.DLM)<<8 | uint16(d.DLL) }

// Baud returns the rate d produces from a cpuHz peripheral clock.
func (d Divisors) Baud(cpuHz uint32) float64 {
	if d.DL() == 0 || d.MulVal == 0 {
		return 0
	}
	fr := 1 + float64(d.DivAddVal)/float64(d.MulVal)
	return float64(cpuHz) / (16 * float64(d.DL()) * fr)
}

// Deviation returns the relative error of the realised rate against baud.
func (d Divisors) Deviation(cpuHz, baud uint32) float64 {
	if baud == 0 {
		return math.Inf(1)
	}
	return mathx.Abs(d.Baud(cpuHz)-float64(baud)) / float64(baud)
}

// ComputeDivisors searches the fractional divider for baud at cpuHz.
//
// The latch is sized for a fractional ratio of 1.5; the search then picks the
// (DivAddVal, MulVal) pair whose 1 + DivAddVal/MulVal is closest to the ratio
// that latch leaves. Rates whose latch would be 0 or exceed 16 bits are
// rejected with BaudUnrepresentable rather than truncated.
func ComputeDivisors(cpuHz, baud uint32) (Divisors, error) {
	const op = "uart.compute_divisors"
	if cpuHz == 0 || baud == 0 {
		return Divisors{}, errcode.New(errcode.BaudUnrepresentable, op, "clock and baud must be non-zero")
	}
	dl := uint64(float64(cpuHz) / (16 * 1.5 * float64(baud)))
	if dl == 0 || dl > 0xFFFF {
		return Divisors{}, errcode.New(errcode.BaudUnrepresentable, op,
			conv.U32(baud)+" baud needs divisor latch "+conv.U32(uint32(min(dl, math.MaxUint32)))+" at "+conv.U32(cpuHz)+" Hz")
	}
	f := float64(cpuHz) / (16 * float64(dl) * float64(baud))
	mul, div := bestFraction(f)
	return Divisors{
		DLM:       uint8(dl >> 8),
		DLL:       uint8(dl),
		MulVal:    mul,
		DivAddVal: div,
	}, nil
}

// bestFraction returns the (mul, div) minimising |f - (1 + div/mul)|.
// Ties keep the earlier candidate; (2, 1) stands until something beats it.
func bestFraction(f float64) (mul, div uint8) {
	mul, div = 2, 1
	best := math.MaxFloat64
	for d := uint8(0); d <= maxDivAdd; d++ {
		for m := uint8(1); m <= maxMul; m++ {
			e := mathx.Abs(f - (1 + float64(d)/float64(m)))
			if e < best {
				best, mul, div = e, m, d
			}
		}
	}
	return mul, div
}
