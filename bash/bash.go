// Package bash implements the STB 34.101.77 sponge-based algorithms: the
// step function bash-f, the bash hash family and the programmable
// automaton bash-prg with keyless hashing and authenticated encryption on
// top of it.
package bash

import (
	"encoding/binary"
	"hash"
	"math/bits"

	"github.com/bee2-go/bee2/errs"
)

// StateSize is the size of the bash state in octets.
const StateSize = 192

var perm = [24]int{
	15, 10, 9, 12, 11, 14, 13, 8,
	17, 16, 19, 18, 21, 20, 23, 22,
	6, 3, 0, 5, 2, 7, 4, 1,
}

func sbox(w0, w1, w2 uint64, m1, n1, m2, n2 int) (uint64, uint64, uint64) {
	t0 := bits.RotateLeft64(w0, m1)
	w0 ^= w1 ^ w2
	t1 := w1 ^ bits.RotateLeft64(w0, n1)
	w1 = t0 ^ t1
	w2 ^= bits.RotateLeft64(w2, m2) ^ bits.RotateLeft64(t1, n2)
	t0 = ^w2
	t1 = w0 | w2
	t2 := w0 & w1
	t0 |= w1
	w1 ^= t1
	w2 ^= t2
	w0 ^= t0

	return w0, w1, w2
}

// F applies the bash-f permutation to the state of 24 words.
func F(s *[24]uint64) {
	var t [24]uint64

	c := uint64(0x3BF5080AC8BA94B1)

	for i := 0; i < 24; i++ {
		m1, n1, m2, n2 := 8, 53, 14, 1

		for j := 0; j < 8; j++ {
			s[j], s[8+j], s[16+j] = sbox(s[j], s[8+j], s[16+j], m1, n1, m2, n2)
			m1, n1, m2, n2 = 7*m1%64, 7*n1%64, 7*m2%64, 7*n2%64
		}

		for j := range t {
			t[j] = s[perm[j]]
		}

		*s = t
		s[23] ^= c
		c = c>>1 ^ (-(c & 1) & 0xDC2BE1997FE0D8AE)
	}
}

// FOctets applies bash-f to a 192-octet state stored little-endian.
func FOctets(state []byte) {
	var s [24]uint64

	for i := range s {
		s[i] = binary.LittleEndian.Uint64(state[8*i:])
	}

	F(&s)

	for i := range s {
		binary.LittleEndian.PutUint64(state[8*i:], s[i])
	}
}

func checkLevel(level int) error {
	if level != 128 && level != 192 && level != 256 {
		return errs.Wrap(errs.ErrBadParams, "bash: security level %d", level)
	}

	return nil
}

var _ hash.Hash = (*Hash)(nil)

// Hash computes bash hashes of security level 128, 192 or 256. The hash
// value is twice as long as the level.
type Hash struct {
	level  int
	s      [StateSize]byte
	filled int
}

// New returns a bash hash of the given security level.
func New(level int) (*Hash, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}

	h := &Hash{level: level}
	h.Reset()

	return h, nil
}

// New256 returns bash256 (level 128).
func New256() hash.Hash {
	h, _ := New(128)

	return h
}

// New384 returns bash384 (level 192).
func New384() hash.Hash {
	h, _ := New(192)

	return h
}

// New512 returns bash512 (level 256).
func New512() hash.Hash {
	h, _ := New(256)

	return h
}

func (h *Hash) rate() int { return StateSize - h.level/2 }

func (h *Hash) Size() int      { return h.level / 4 }
func (h *Hash) BlockSize() int { return h.rate() }

// Reset sets h to its initial state.
func (h *Hash) Reset() {
	h.s = [StateSize]byte{}
	binary.LittleEndian.PutUint64(h.s[StateSize-8:], uint64(h.level/4))
	h.filled = 0
}

// Write absorbs p. It never fails.
func (h *Hash) Write(p []byte) (int, error) {
	n := len(p)
	r := h.rate()

	for len(p) > 0 {
		k := copy(h.s[h.filled:r], p)
		h.filled += k
		p = p[k:]

		if h.filled == r {
			FOctets(h.s[:])
			h.filled = 0
		}
	}

	return n, nil
}

// Sum appends the hash value to b without changing the state.
func (h *Hash) Sum(b []byte) []byte {
	s := h.s
	r := h.rate()

	s[h.filled] = 0x40
	for i := h.filled + 1; i < r; i++ {
		s[i] = 0
	}

	FOctets(s[:])

	return append(b, s[:h.Size()]...)
}

// Sum256 returns bash256 of data.
func Sum256(data []byte) [32]byte {
	var out [32]byte

	h := New256()
	h.Write(data) //nolint:errcheck
	h.Sum(out[:0])

	return out
}

// Sum384 returns bash384 of data.
func Sum384(data []byte) [48]byte {
	var out [48]byte

	h := New384()
	h.Write(data) //nolint:errcheck
	h.Sum(out[:0])

	return out
}

// Sum512 returns bash512 of data.
func Sum512(data []byte) [64]byte {
	var out [64]byte

	h := New512()
	h.Write(data) //nolint:errcheck
	h.Sum(out[:0])

	return out
}
