// Package clock brings the LPC178x core clock up from the main oscillator
// through PLL0 and gates peripheral power.
package clock

import (
	"lpc178x-hal/errcode"
	"lpc178x-hal/pac"
	"lpc178x-hal/x/conv"
	"lpc178x-hal/x/mathx"
)

// PLL0 current-controlled oscillator range.
const (
	FCCOMin = 156_000_000
	FCCOMax = 320_000_000

	MaxPSel = 2 // PSEL codes 0..2 (P = 1, 2, 4)
)

// PLL is a validated PLL0 configuration.
type PLL struct {
	M     uint8  // MSEL: multiplier minus one
	P     uint8  // PSEL: log2 of the post divider
	FCCO  uint32 // oscillator frequency, Hz
	CPUHz uint32 // resulting core clock, Hz
}

// Multiplier returns the integer ratio CPUHz/crystal.
func (p PLL) Multiplier() uint32 { return uint32(p.M) + 1 }

// Plan derives the PLL0 settings for targetHz from crystalHz. It touches no
// hardware.
//
// The target must be an exact multiple of the crystal with M = ratio-1 both
// within 8 bits and within the MSEL field. The post divider is the smallest
// PSEL that puts FCCO = target*2*2^PSEL inside [FCCOMin, FCCOMax].
func Plan(targetHz, crystalHz uint32) (PLL, error) {
	const op = "clock.plan"
	if targetHz == 0 || crystalHz == 0 {
		return PLL{}, errcode.New(errcode.InvalidFrequencyRatio, op, "frequencies must be non-zero")
	}
	if targetHz%crystalHz != 0 {
		return PLL{}, errcode.New(errcode.InvalidFrequencyRatio, op,
			conv.U32(targetHz)+" Hz is not a multiple of "+conv.U32(crystalHz)+" Hz")
	}
	m := targetHz/crystalHz - 1
	if !mathx.FitsBits(m, 8) {
		return PLL{}, errcode.New(errcode.InvalidFrequencyRatio, op, "multiplier "+conv.U32(m+1)+" exceeds 8 bits")
	}
	if _, err := pac.PLL0CFG_MSEL.Insert(0, m); err != nil {
		return PLL{}, errcode.Wrap(errcode.InvalidFrequencyRatio, op, err)
	}
	for p := uint8(0); p <= MaxPSel; p++ {
		fcco := uint64(targetHz) * 2 * uint64(mathx.Pow2(p))
		if mathx.Between[uint64](fcco, FCCOMin, FCCOMax) {
			return PLL{M: uint8(m), P: p, FCCO: uint32(fcco), CPUHz: targetHz}, nil
		}
	}
	return PLL{}, errcode.New(errcode.UnreachableFrequency, op,
		"no post divider puts FCCO in range for "+conv.U32(targetHz)+" Hz")
}
