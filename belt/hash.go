package belt

import (
	"encoding/binary"
	"hash"

	"github.com/bee2-go/bee2/helper/blob"
)

const (
	// HashSize is the size of a belt-hash value in octets.
	HashSize = 32
	// HashBlockSize is the block size of belt-hash in octets.
	HashBlockSize = 32
)

func keyFrom(dst *Key, a, b []byte) {
	for i := 0; i < 4; i++ {
		dst[i] = binary.LittleEndian.Uint32(a[4*i:])
		dst[4+i] = binary.LittleEndian.Uint32(b[4*i:])
	}
}

// Compr is the belt compression function. It maps the 64-octet x onto the
// 32-octet y and, when s is not nil, the 16-octet intermediate value s.
// y and s may not overlap x.
func Compr(y, s, x []byte) {
	var (
		k   Key
		t   [BlockSize]byte
		sum [BlockSize]byte
	)

	x1, x2, x3, x4 := x[:16], x[16:32], x[32:48], x[48:64]

	// S = E_{X1||X2}(X3 ^ X4) ^ X3 ^ X4
	xorBlock(sum[:], x3, x4)
	t = sum
	keyFrom(&k, x1, x2)
	BlockEncr(t[:], &k)
	xorBlock(t[:], t[:], sum[:])

	// Y1 = E_{S||X4}(X1) ^ X1
	keyFrom(&k, t[:], x4)
	copy(y[:16], x1)
	BlockEncr(y[:16], &k)
	xorBlock(y[:16], y[:16], x1)

	// Y2 = E_{~S||X3}(X2) ^ X2
	for i := range sum {
		sum[i] = ^t[i]
	}

	keyFrom(&k, sum[:], x3)
	copy(y[16:32], x2)
	BlockEncr(y[16:32], &k)
	xorBlock(y[16:32], y[16:32], x2)

	if s != nil {
		copy(s, t[:])
	}

	k.Wipe()
	blob.Wipe(t[:])
	blob.Wipe(sum[:])
}

var _ hash.Hash = (*Hash)(nil)

// Hash computes belt-hash.
type Hash struct {
	// x = block || h
	x      [2 * HashBlockSize]byte
	s      [BlockSize]byte
	filled int
	length uint64
}

// NewHash returns a belt-hash instance.
func NewHash() hash.Hash {
	h := &Hash{}
	h.Reset()

	return h
}

func (h *Hash) Size() int      { return HashSize }
func (h *Hash) BlockSize() int { return HashBlockSize }

// Reset sets h to its initial state.
func (h *Hash) Reset() {
	h.x = [2 * HashBlockSize]byte{}
	copy(h.x[HashBlockSize:], H[:HashSize])
	h.s = [BlockSize]byte{}
	h.filled = 0
	h.length = 0
}

func (h *Hash) step() {
	var y [HashSize]byte
	var t [BlockSize]byte

	Compr(y[:], t[:], h.x[:])
	xorBlock(h.s[:], h.s[:], t[:])
	copy(h.x[HashBlockSize:], y[:])
	h.filled = 0
}

// Write absorbs p. It never fails.
func (h *Hash) Write(p []byte) (int, error) {
	n := len(p)
	h.length += uint64(n)

	for len(p) > 0 {
		k := copy(h.x[h.filled:HashBlockSize], p)
		h.filled += k
		p = p[k:]

		if h.filled == HashBlockSize {
			h.step()
		}
	}

	return n, nil
}

// Sum appends the hash value to b without changing the state.
func (h *Hash) Sum(b []byte) []byte {
	d := *h

	if d.filled > 0 {
		for i := d.filled; i < HashBlockSize; i++ {
			d.x[i] = 0
		}

		d.step()
	}

	var (
		x [2 * HashBlockSize]byte
		y [HashSize]byte
	)

	binary.LittleEndian.PutUint64(x[0:], d.length<<3)
	binary.LittleEndian.PutUint64(x[8:], d.length>>61)
	copy(x[16:32], d.s[:])
	copy(x[32:], d.x[HashBlockSize:])
	Compr(y[:], nil, x[:])

	return append(b, y[:]...)
}

// Sum returns belt-hash of data.
func Sum(data []byte) [HashSize]byte {
	var out [HashSize]byte

	h := NewHash()
	h.Write(data) //nolint:errcheck
	h.Sum(out[:0])

	return out
}
