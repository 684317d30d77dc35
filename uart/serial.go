package uart

import (
	"context"

	"tinygo.org/x/drivers"

	"lpc178x-hal/errcode"
	"lpc178x-hal/x/nb"
	"lpc178x-hal/x/ring"
)

var _ drivers.UART = (*Serial)(nil)

// Serial adapts an Enabled UART to the io and tinygo drivers interfaces.
// Received bytes are staged in a ring between polls; writes spin on the
// transmit holding register under the serial's context.
type Serial struct {
	u   *Enabled
	rx  *ring.Ring
	ctx context.Context
}

// NewSerial wraps u with a receive ring of ringSize bytes (a power of two).
func NewSerial(u *Enabled, ringSize int) *Serial {
	return &Serial{u: u, rx: ring.New(ringSize), ctx: context.Background()}
}

// WithContext returns a view of s whose blocking calls end with ctx. The
// receive ring is shared.
func (s *Serial) WithContext(ctx context.Context) *Serial {
	c := *s
	c.ctx = ctx
	return &c
}

// UART returns the wrapped handle.
func (s *Serial) UART() *Enabled { return s.u }

// poll drains the receiver into the ring until either runs dry.
func (s *Serial) poll() error {
	for s.rx.Space() > 0 {
		c, err := s.u.ReadByte()
		if errcode.IsWouldBlock(err) {
			return nil
		}
		if err != nil {
			return err
		}
		s.rx.Put(c)
	}
	return nil
}

// Buffered returns the number of received bytes ready to Read. It has no
// error result; a consumed UART surfaces as an error from the next Read.
func (s *Serial) Buffered() int {
	_ = s.poll()
	return s.rx.Available()
}

// Read copies buffered bytes into p without waiting for more.
func (s *Serial) Read(p []byte) (int, error) {
	if err := s.poll(); err != nil {
		return 0, err
	}
	return s.rx.ReadInto(p), nil
}

// ReadByte waits for one byte.
func (s *Serial) ReadByte() (byte, error) {
	var one [1]byte
	err := nb.Block(s.ctx, func() error {
		n, err := s.Read(one[:])
		if err != nil {
			return err
		}
		if n == 0 {
			return errcode.WouldBlock
		}
		return nil
	})
	return one[0], err
}

// WriteByte waits for room and sends c.
func (s *Serial) WriteByte(c byte) error {
	return nb.Block(s.ctx, func() error { return s.u.WriteByte(c) })
}

func (s *Serial) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := s.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

func (s *Serial) WriteString(str string) (int, error) {
	for i := 0; i < len(str); i++ {
		if err := s.WriteByte(str[i]); err != nil {
			return i, err
		}
	}
	return len(str), nil
}

// Flush waits until the last byte has left the holding register.
func (s *Serial) Flush() error { return nb.Block(s.ctx, s.u.Flush) }
