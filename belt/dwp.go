package belt

import (
	"github.com/bee2-go/bee2/errs"
)

// DWP is the belt authenticated encryption mode "data wrap and protect":
// CTR encryption combined with a polynomial MAC over GF(2^128).
type DWP struct {
	authEnc
}

// NewDWP starts DWP with the 16-octet iv.
func NewDWP(key, iv []byte) (*DWP, error) {
	if len(iv) != BlockSize {
		return nil, errs.Wrap(errs.ErrBadLength, "dwp: iv of %d octets", len(iv))
	}

	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	d := &DWP{}
	d.key = k
	d.next = incBlock
	copy(d.ctr[:], iv)
	BlockEncr(d.ctr[:], &d.key)

	r := d.ctr
	BlockEncr(r[:], &d.key)
	d.hash.init(r[:])
	r = [BlockSize]byte{}

	return d, nil
}

// DWPWrap encrypts the critical data x and authenticates it together with
// the open data i.
func DWPWrap(x, i, key, iv []byte) (y, tag []byte, err error) {
	d, err := NewDWP(key, iv)
	if err != nil {
		return nil, nil, err
	}

	y, tag = wrap(d, x, i)

	return y, tag, nil
}

// DWPUnwrap checks the tag and decrypts y. Nothing is decrypted when the
// tag does not match.
func DWPUnwrap(y, i, tag, key, iv []byte) ([]byte, error) {
	d, err := NewDWP(key, iv)
	if err != nil {
		return nil, err
	}

	return unwrap(d, y, i, tag)
}
