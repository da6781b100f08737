// Package prng contains simple deterministic generators for tests and
// sampling of public values. None of them is suitable for keys.
package prng

import (
	"encoding/binary"
)

// Combo is Marsaglia's COMBO generator: a multiplicative lagged sequence
// combined with a 16-bit multiply-with-carry sequence.
type Combo struct {
	x, y, z  uint32
	block    [4]byte
	reserved int
}

// NewCombo returns a COMBO generator started from seed.
func NewCombo(seed uint32) *Combo {
	c := &Combo{}
	c.Start(seed)

	return c
}

// Start (re)initializes the generator.
func (c *Combo) Start(seed uint32) {
	c.x = 0xF8B7BB93
	c.y = 0xBEE3B54B
	c.z = 0x1F6B7FBD + seed

	if c.z == 0 {
		c.z++
	}

	c.reserved = 0
}

func (c *Combo) step() uint32 {
	r := c.x * c.y
	c.x = c.y
	c.y = r
	c.z = (c.z&0xFFFF)*36969 + (c.z >> 16)

	return r + c.z
}

// Uint32 returns the next 32-bit output.
func (c *Combo) Uint32() uint32 {
	c.reserved = 0

	return c.step()
}

// Read fills p with generator output. It never fails.
func (c *Combo) Read(p []byte) (int, error) {
	n := len(p)

	for len(p) > 0 {
		if c.reserved == 0 {
			binary.LittleEndian.PutUint32(c.block[:], c.step())
			c.reserved = len(c.block)
		}

		k := copy(p, c.block[len(c.block)-c.reserved:])
		c.reserved -= k
		p = p[k:]
	}

	return n, nil
}
