package typestate

import (
	"sync"

	"lpc178x-hal/errcode"
	"lpc178x-hal/x/conv"
)

// Claims is a registry of exclusively owned keys.
type Claims[K comparable] struct {
	mu    sync.Mutex
	owner map[K]string
}

// Claim records owner for key; a second claim fails with AlreadyTaken.
func (c *Claims[K]) Claim(key K, owner string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner == nil {
		c.owner = make(map[K]string)
	}
	if cur, ok := c.owner[key]; ok {
		return errcode.New(errcode.AlreadyTaken, owner, "held by "+cur)
	}
	c.owner[key] = owner
	return nil
}

// Release drops key if owner holds it.
func (c *Claims[K]) Release(key K, owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.owner[key]; ok && cur == owner {
		delete(c.owner, key)
	}
}

// Owner returns the current holder of key.
func (c *Claims[K]) Owner(key K) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.owner[key]
	return o, ok
}

// Mask is a 32-bit in-use bitmap.
type Mask uint32

func (m Mask) Has(bit uint8) bool { return bit < 32 && m&(1<<bit) != 0 }

// Claim marks bit in use; AlreadyTaken if it already was.
func (m *Mask) Claim(bit uint8) error {
	if bit >= 32 {
		return errcode.New(errcode.InvalidParams, "mask.claim", "bit "+conv.U32(uint32(bit))+" out of range")
	}
	if m.Has(bit) {
		return errcode.New(errcode.AlreadyTaken, "mask.claim", "bit "+conv.U32(uint32(bit))+" in use")
	}
	*m |= 1 << bit
	return nil
}

// ClaimAll marks every bit of want in use, or none of them.
func (m *Mask) ClaimAll(want uint32) error {
	if uint32(*m)&want != 0 {
		return errcode.New(errcode.AlreadyTaken, "mask.claim_all", "bits "+conv.Hex32(uint32(*m)&want)+" in use")
	}
	*m |= Mask(want)
	return nil
}

// Release clears bit.
func (m *Mask) Release(bit uint8) {
	if bit < 32 {
		*m &^= 1 << bit
	}
}
