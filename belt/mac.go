package belt

import (
	"encoding/binary"
	"hash"

	"github.com/bee2-go/bee2/helper/blob"
)

// MACSize is the size of a belt MAC in octets.
const MACSize = 8

var _ hash.Hash = (*MAC)(nil)

// MAC computes the belt message authentication code. The last block is
// held back until Sum because a full and a partial final block are
// finished differently.
type MAC struct {
	key    Key
	r      [BlockSize]byte
	s      [BlockSize]byte
	block  [BlockSize]byte
	filled int
}

// NewMAC creates a MAC instance.
func NewMAC(key []byte) (*MAC, error) {
	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	m := &MAC{key: k}
	BlockEncr(m.r[:], &m.key)

	return m, nil
}

func (m *MAC) Size() int      { return MACSize }
func (m *MAC) BlockSize() int { return BlockSize }

// Reset restarts the computation under the same key.
func (m *MAC) Reset() {
	m.s = [BlockSize]byte{}
	m.block = [BlockSize]byte{}
	m.filled = 0
}

// Write absorbs p. It never fails.
func (m *MAC) Write(p []byte) (int, error) {
	n := len(p)

	for len(p) > 0 {
		if m.filled == BlockSize {
			xorBlock(m.s[:], m.s[:], m.block[:])
			BlockEncr(m.s[:], &m.key)
			m.filled = 0
		}

		k := copy(m.block[m.filled:], p)
		m.filled += k
		p = p[k:]
	}

	return n, nil
}

// Sum appends the 8-octet tag to b without changing the state.
func (m *MAC) Sum(b []byte) []byte {
	var (
		s   = m.s
		r   [4]uint32
		phi [BlockSize]byte
	)

	for i := range r {
		r[i] = binary.LittleEndian.Uint32(m.r[4*i:])
	}

	if m.filled == BlockSize {
		putWords(phi[:], r[1], r[2], r[3], r[0]^r[1])
		xorBlock(s[:], s[:], m.block[:])
	} else {
		putWords(phi[:], r[0]^r[3], r[0], r[1], r[2])

		var last [BlockSize]byte
		copy(last[:], m.block[:m.filled])
		last[m.filled] = 0x80
		xorBlock(s[:], s[:], last[:])
	}

	xorBlock(s[:], s[:], phi[:])
	BlockEncr(s[:], &m.key)

	return append(b, s[:MACSize]...)
}

// Wipe zeroes the key and the state.
func (m *MAC) Wipe() {
	m.key.Wipe()
	m.r = [BlockSize]byte{}
	m.Reset()
}

func putWords(dst []byte, a, b, c, d uint32) {
	binary.LittleEndian.PutUint32(dst[0:], a)
	binary.LittleEndian.PutUint32(dst[4:], b)
	binary.LittleEndian.PutUint32(dst[8:], c)
	binary.LittleEndian.PutUint32(dst[12:], d)
}

// ComputeMAC returns the MAC of data under key.
func ComputeMAC(data, key []byte) ([]byte, error) {
	m, err := NewMAC(key)
	if err != nil {
		return nil, err
	}
	defer m.Wipe()

	m.Write(data) //nolint:errcheck

	return m.Sum(nil), nil
}

// VerifyMAC reports whether tag is the MAC of data under key.
func VerifyMAC(tag, data, key []byte) (bool, error) {
	t, err := ComputeMAC(data, key)
	if err != nil {
		return false, err
	}

	return blob.Equal(t, tag), nil
}
