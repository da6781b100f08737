package belt

import (
	"encoding/binary"

	"github.com/bee2-go/bee2/pp"
)

// polyHash accumulates t = (t ^ X_i) * r over GF(2^128), the field used by
// the authenticated modes. Partial blocks are padded with zeros.
type polyHash struct {
	r      [2]uint64
	t      [2]uint64
	prod   [4]uint64
	block  [BlockSize]byte
	filled int
}

func (h *polyHash) init(r []byte) {
	h.r[0] = binary.LittleEndian.Uint64(r)
	h.r[1] = binary.LittleEndian.Uint64(r[8:])
	h.t[0] = binary.LittleEndian.Uint64(H[:])
	h.t[1] = binary.LittleEndian.Uint64(H[8:])
	h.filled = 0
}

func (h *polyHash) absorb(b []byte) {
	h.t[0] ^= binary.LittleEndian.Uint64(b)
	h.t[1] ^= binary.LittleEndian.Uint64(b[8:])
	pp.Mul(h.prod[:], h.t[:], h.r[:], nil)
	pp.RedBelt(h.prod[:])
	h.t[0], h.t[1] = h.prod[0], h.prod[1]
	h.prod = [4]uint64{}
}

func (h *polyHash) write(p []byte) {
	for len(p) > 0 {
		k := copy(h.block[h.filled:], p)
		h.filled += k
		p = p[k:]

		if h.filled == BlockSize {
			h.absorb(h.block[:])
			h.filled = 0
		}
	}
}

// flush absorbs a pending partial block.
func (h *polyHash) flush() {
	if h.filled == 0 {
		return
	}

	for i := h.filled; i < BlockSize; i++ {
		h.block[i] = 0
	}

	h.absorb(h.block[:])
	h.filled = 0
}

func (h *polyHash) sum(dst []byte) {
	binary.LittleEndian.PutUint64(dst, h.t[0])
	binary.LittleEndian.PutUint64(dst[8:], h.t[1])
}

func (h *polyHash) wipe() {
	*h = polyHash{}
}
