package belt

import (
	"crypto/cipher"

	"github.com/bee2-go/bee2/errs"
)

var _ cipher.Stream = (*CTR)(nil)

// CTR encrypts in counter mode. The counter starts at the encrypted
// initialisation vector and is incremented before every block.
type CTR struct {
	key      Key
	ctr      [BlockSize]byte
	gamma    [BlockSize]byte
	reserved int
}

// NewCTR creates a CTR keystream.
func NewCTR(key, iv []byte) (*CTR, error) {
	if len(iv) != BlockSize {
		return nil, errs.Wrap(errs.ErrBadLength, "ctr: iv of %d octets", len(iv))
	}

	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	c := &CTR{}
	c.start(&k, iv)

	return c, nil
}

func (c *CTR) start(k *Key, iv []byte) {
	c.key = *k
	copy(c.ctr[:], iv)
	BlockEncr(c.ctr[:], &c.key)
	c.reserved = 0
}

// XORKeyStream implements cipher.Stream. Encryption and decryption are
// the same operation.
func (c *CTR) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("belt: output smaller than input")
	}

	for i := range src {
		if c.reserved == 0 {
			incBlock(c.ctr[:])
			c.gamma = c.ctr
			BlockEncr(c.gamma[:], &c.key)
			c.reserved = BlockSize
		}

		dst[i] = src[i] ^ c.gamma[BlockSize-c.reserved]
		c.reserved--
	}
}

// Wipe zeroes the key and the keystream state.
func (c *CTR) Wipe() {
	c.key.Wipe()
	c.ctr = [BlockSize]byte{}
	c.gamma = [BlockSize]byte{}
	c.reserved = 0
}

// CTRCrypt encrypts or decrypts src into dst.
func CTRCrypt(dst, src, key, iv []byte) error {
	c, err := NewCTR(key, iv)
	if err != nil {
		return err
	}
	defer c.Wipe()

	c.XORKeyStream(dst, src)

	return nil
}
