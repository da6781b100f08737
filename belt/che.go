package belt

import (
	"github.com/bee2-go/bee2/errs"
)

// CHE is the belt authenticated encryption mode "counter hash encrypt".
// The counter advances as s <- s*x ^ 1 in GF(2^128) and the encrypted iv
// also serves as the hashing key.
type CHE struct {
	authEnc
}

func cheNext(ctr []byte) {
	mulXBlock(ctr)
	ctr[0] ^= 1
}

// NewCHE starts CHE with the 16-octet iv.
func NewCHE(key, iv []byte) (*CHE, error) {
	if len(iv) != BlockSize {
		return nil, errs.Wrap(errs.ErrBadLength, "che: iv of %d octets", len(iv))
	}

	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	c := &CHE{}
	c.key = k
	c.next = cheNext
	copy(c.ctr[:], iv)
	BlockEncr(c.ctr[:], &c.key)
	c.hash.init(c.ctr[:])

	return c, nil
}

// CHEWrap encrypts x and authenticates it together with i.
func CHEWrap(x, i, key, iv []byte) (y, tag []byte, err error) {
	c, err := NewCHE(key, iv)
	if err != nil {
		return nil, nil, err
	}

	y, tag = wrap(c, x, i)

	return y, tag, nil
}

// CHEUnwrap checks the tag and decrypts y.
func CHEUnwrap(y, i, tag, key, iv []byte) ([]byte, error) {
	c, err := NewCHE(key, iv)
	if err != nil {
		return nil, err
	}

	return unwrap(c, y, i, tag)
}
