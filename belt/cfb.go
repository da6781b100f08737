package belt

import (
	"github.com/bee2-go/bee2/errs"
)

// CFB encrypts in cipher feedback mode. Data may be supplied in pieces of
// any length.
type CFB struct {
	key      Key
	block    [BlockSize]byte
	reserved int
}

// NewCFB creates a CFB cipher with the 16-octet initialisation vector iv.
func NewCFB(key, iv []byte) (*CFB, error) {
	if len(iv) != BlockSize {
		return nil, errs.Wrap(errs.ErrBadLength, "cfb: iv of %d octets", len(iv))
	}

	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	c := &CFB{key: k}
	copy(c.block[:], iv)

	return c, nil
}

// Encrypt encrypts buf in place.
func (m *CFB) Encrypt(buf []byte) {
	for i := range buf {
		if m.reserved == 0 {
			BlockEncr(m.block[:], &m.key)
			m.reserved = BlockSize
		}

		pos := BlockSize - m.reserved
		m.block[pos] ^= buf[i]
		buf[i] = m.block[pos]
		m.reserved--
	}
}

// Decrypt decrypts buf in place.
func (m *CFB) Decrypt(buf []byte) {
	for i := range buf {
		if m.reserved == 0 {
			BlockEncr(m.block[:], &m.key)
			m.reserved = BlockSize
		}

		pos := BlockSize - m.reserved
		y := buf[i]
		buf[i] ^= m.block[pos]
		m.block[pos] = y
		m.reserved--
	}
}

// Wipe zeroes the key and the feedback block.
func (m *CFB) Wipe() {
	m.key.Wipe()
	m.block = [BlockSize]byte{}
	m.reserved = 0
}

// CFBEncr encrypts src into dst.
func CFBEncr(dst, src, key, iv []byte) error {
	m, err := NewCFB(key, iv)
	if err != nil {
		return err
	}
	defer m.Wipe()

	copy(dst, src)
	m.Encrypt(dst[:len(src)])

	return nil
}

// CFBDecr decrypts src into dst.
func CFBDecr(dst, src, key, iv []byte) error {
	m, err := NewCFB(key, iv)
	if err != nil {
		return err
	}
	defer m.Wipe()

	copy(dst, src)
	m.Decrypt(dst[:len(src)])

	return nil
}
