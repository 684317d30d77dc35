package conv

// Utoa writes base-10 representation of n into buf and returns the used slice.
// buf should be length >= 20 for uint64.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
	} else {
		for n > 0 && i > 0 {
			i--
			buf[i] = byte('0' + (n % 10))
			n /= 10
		}
	}
	return buf[i:]
}

// U32 formats n in base 10 without fmt/strconv (TinyGo-friendly).
func U32(n uint32) string {
	var b [10]byte
	return string(Utoa(b[:], uint64(n)))
}

// Atou parses a non-empty run of ASCII digits; ok is false on anything else
// or on overflow of 32 bits.
func Atou(s string) (n uint32, ok bool) {
	if s == "" {
		return 0, false
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint64(c-'0')
		if v > 0xFFFF_FFFF {
			return 0, false
		}
	}
	return uint32(v), true
}
