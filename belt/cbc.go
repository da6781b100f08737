package belt

import (
	"github.com/bee2-go/bee2/errs"
)

// CBC encrypts in cipher block chaining mode with ciphertext stealing for
// a trailing partial block.
type CBC struct {
	key   Key
	block [BlockSize]byte
}

// NewCBC creates a CBC cipher with the 16-octet initialisation vector iv.
func NewCBC(key, iv []byte) (*CBC, error) {
	if len(iv) != BlockSize {
		return nil, errs.Wrap(errs.ErrBadLength, "cbc: iv of %d octets", len(iv))
	}

	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	c := &CBC{key: k}
	copy(c.block[:], iv)

	return c, nil
}

// Encrypt encrypts buf in place. Successive calls continue the chain as
// long as every call but the last passes a multiple of the block size.
func (m *CBC) Encrypt(buf []byte) error {
	if len(buf) < BlockSize {
		return errs.Wrap(errs.ErrBadLength, "cbc: %d octets", len(buf))
	}

	i := 0
	for ; len(buf)-i >= BlockSize; i += BlockSize {
		blk := buf[i : i+BlockSize]
		xorBlock(blk, blk, m.block[:])
		BlockEncr(blk, &m.key)
		copy(m.block[:], blk)
	}

	if c := len(buf) - i; c > 0 {
		prev := buf[i-BlockSize : i]
		swapTail(prev[:c], buf[i:])

		for j := 0; j < c; j++ {
			prev[j] ^= m.block[j]
		}

		BlockEncr(prev, &m.key)
		copy(m.block[:], prev)
	}

	return nil
}

// Decrypt decrypts buf in place.
func (m *CBC) Decrypt(buf []byte) error {
	if len(buf) < BlockSize {
		return errs.Wrap(errs.ErrBadLength, "cbc: %d octets", len(buf))
	}

	var t [BlockSize]byte

	c := len(buf) % BlockSize
	full := len(buf) - c
	if c > 0 {
		full -= BlockSize
	}

	for i := 0; i < full; i += BlockSize {
		blk := buf[i : i+BlockSize]
		copy(t[:], blk)
		BlockDecr(blk, &m.key)
		xorBlock(blk, blk, m.block[:])
		m.block = t
	}

	if c > 0 {
		last := buf[full : full+BlockSize]
		tail := buf[full+BlockSize:]
		copy(t[:], last)
		// last = (x_n ^ y[:c]) || y[c:] where y is the stolen ciphertext
		BlockDecr(last, &m.key)

		for j := 0; j < c; j++ {
			last[j] ^= tail[j]
		}

		swapTail(last[:c], tail)
		BlockDecr(last, &m.key)
		xorBlock(last, last, m.block[:])
		m.block = t
	}

	return nil
}

// Wipe zeroes the key and the chaining block.
func (m *CBC) Wipe() {
	m.key.Wipe()
	m.block = [BlockSize]byte{}
}

// CBCEncr encrypts src into dst.
func CBCEncr(dst, src, key, iv []byte) error {
	m, err := NewCBC(key, iv)
	if err != nil {
		return err
	}
	defer m.Wipe()

	copy(dst, src)

	return m.Encrypt(dst[:len(src)])
}

// CBCDecr decrypts src into dst.
func CBCDecr(dst, src, key, iv []byte) error {
	m, err := NewCBC(key, iv)
	if err != nil {
		return err
	}
	defer m.Wipe()

	copy(dst, src)

	return m.Decrypt(dst[:len(src)])
}
