package sim

import "lpc178x-hal/pac"

// Writes returns a copy of every store since the last ResetLog.
func (b *Board) Writes() []Write {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Write, len(b.log))
	copy(out, b.log)
	return out
}

// WritesTo returns the values stored at addr, in order.
func (b *Board) WritesTo(addr uintptr) []uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []uint32
	for _, w := range b.log {
		if w.Addr == addr {
			out = append(out, w.Value)
		}
	}
	return out
}

// ResetLog forgets recorded stores; register contents are kept.
func (b *Board) ResetLog() {
	b.mu.Lock()
	b.log = b.log[:0]
	b.mu.Unlock()
}

// Peek reads the backing word at addr without side effects.
func (b *Board) Peek(addr uintptr) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mem[addr]
}

// Poke sets the backing word at addr without logging or side effects.
func (b *Board) Poke(addr uintptr, v uint32) {
	b.mu.Lock()
	b.mem[addr] = v
	b.mu.Unlock()
}

// Divisor returns the latched DLM:DLL pair of UART n.
func (b *Board) Divisor(n int) (dlm, dll uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dlm[n], b.dll[n]
}

// TX returns the bytes UART n has transmitted so far.
func (b *Board) TX(n int) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.tx[n]...)
}

// TakeTX returns and clears the bytes UART n has transmitted.
func (b *Board) TakeTX(n int) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.tx[n]
	b.tx[n] = nil
	return out
}

// InjectRX queues bytes on UART n's receiver.
func (b *Board) InjectRX(n int, p ...byte) {
	b.mu.Lock()
	b.rx[n] = append(b.rx[n], p...)
	b.mu.Unlock()
}

// HoldTX keeps UART n's holding register full (THRE clear) while hold is set.
func (b *Board) HoldTX(n int, hold bool) {
	b.mu.Lock()
	b.txHold[n] = hold
	b.mu.Unlock()
}

// DrivePin forces the sampled level of P<port>.<pin>.
func (b *Board) DrivePin(port, pin uint8, high bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	addr := pac.GPIOPortBase(port) + pac.GPIO_PIN.Offset
	if high {
		b.mem[addr] |= 1 << pin
	} else {
		b.mem[addr] &^= 1 << pin
	}
}
