// Package brng implements the STB 34.101.47 pseudorandom generators built
// on belt: brng-ctr and brng-hmac. Both are deterministic io.Readers.
package brng

import (
	"hash"
	"io"

	"github.com/bee2-go/bee2/belt"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/blob"
)

const blockSize = 32

var (
	_ io.Reader = (*CTR)(nil)
	_ io.Reader = (*HMAC)(nil)
)

// CTR is brng-ctr: every 32-octet output block is belt-hash of the key,
// a counter, the input block and a feedback value.
type CTR struct {
	keyed    belt.Hash
	s        [blockSize]byte
	r        [blockSize]byte
	block    [blockSize]byte
	reserved int
}

// NewCTR creates brng-ctr with a 32-octet key and a 32-octet iv.
func NewCTR(key, iv []byte) (*CTR, error) {
	if len(key) != belt.KeySize {
		return nil, errs.Wrap(errs.ErrBadLength, "brng-ctr: key of %d octets", len(key))
	}

	if len(iv) != blockSize {
		return nil, errs.Wrap(errs.ErrBadLength, "brng-ctr: iv of %d octets", len(iv))
	}

	c := &CTR{}
	h := belt.NewHash().(*belt.Hash)
	h.Write(key) //nolint:errcheck
	c.keyed = *h
	h.Reset()

	copy(c.s[:], iv)

	for i := range iv {
		c.r[i] = ^iv[i]
	}

	return c, nil
}

func (c *CTR) next(x []byte) {
	h := c.keyed
	h.Write(c.s[:]) //nolint:errcheck
	h.Write(x)      //nolint:errcheck
	h.Write(c.r[:]) //nolint:errcheck
	h.Sum(c.block[:0])
	h.Reset()

	// s <- s + 1, r <- r ^ y
	for i := range c.s {
		c.s[i]++
		if c.s[i] != 0 {
			break
		}
	}

	blob.Xor2(c.r[:], c.block[:])
}

// Step overwrites buf with output. The current content of buf is mixed
// into the output as additional input.
func (c *CTR) Step(buf []byte) {
	if c.reserved > 0 {
		n := copy(buf, c.block[blockSize-c.reserved:])
		c.reserved -= n
		buf = buf[n:]
	}

	for len(buf) >= blockSize {
		c.next(buf[:blockSize])
		copy(buf, c.block[:])
		buf = buf[blockSize:]
	}

	if len(buf) > 0 {
		var x [blockSize]byte

		copy(x[:], buf)
		c.next(x[:])
		copy(buf, c.block[:])
		c.reserved = blockSize - len(buf)
	}
}

// Read fills p with output. It never fails.
func (c *CTR) Read(p []byte) (int, error) {
	blob.Wipe(p)
	c.Step(p)

	return len(p), nil
}

// Wipe zeroes the state.
func (c *CTR) Wipe() {
	c.keyed.Reset()
	c.s = [blockSize]byte{}
	c.r = [blockSize]byte{}
	c.block = [blockSize]byte{}
	c.reserved = 0
}

// HMAC is brng-hmac: output blocks are HMAC(key, r || iv) with
// r <- HMAC(key, r) between blocks.
type HMAC struct {
	mac      hash.Hash
	iv       []byte
	r        [blockSize]byte
	block    [blockSize]byte
	reserved int
}

// NewHMAC creates brng-hmac. The key and the iv may have any length.
func NewHMAC(key, iv []byte) *HMAC {
	g := &HMAC{
		mac: belt.NewHMAC(key),
		iv:  append([]byte(nil), iv...),
	}

	g.mac.Write(iv) //nolint:errcheck
	g.mac.Sum(g.r[:0])

	return g
}

// Read fills p with output. It never fails.
func (g *HMAC) Read(p []byte) (int, error) {
	n := len(p)

	for len(p) > 0 {
		if g.reserved == 0 {
			g.mac.Reset()
			g.mac.Write(g.r[:]) //nolint:errcheck
			g.mac.Write(g.iv)   //nolint:errcheck
			g.mac.Sum(g.block[:0])

			g.mac.Reset()
			g.mac.Write(g.r[:]) //nolint:errcheck
			g.mac.Sum(g.r[:0])

			g.reserved = blockSize
		}

		k := copy(p, g.block[blockSize-g.reserved:])
		g.reserved -= k
		p = p[k:]
	}

	return n, nil
}

// Wipe zeroes the state.
func (g *HMAC) Wipe() {
	g.mac.Reset()
	blob.Wipe(g.iv)
	g.r = [blockSize]byte{}
	g.block = [blockSize]byte{}
	g.reserved = 0
}
