package mathx

// CeilDiv returns ceil(a/b) for positive integers.
// For non-positive inputs, behaviour is implementation-defined; keep to positives for firmware maths.
func CeilDiv[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Pow2 returns 2^n as a uint32; n is expected to be small (register exponents).
func Pow2(n uint8) uint32 { return uint32(1) << n }
