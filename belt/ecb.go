package belt

import (
	"github.com/bee2-go/bee2/errs"
)

// ECB encrypts in electronic codebook mode. A buffer whose length is not a
// multiple of the block size is finished with ciphertext stealing.
type ECB struct {
	key Key
}

// NewECB creates an ECB cipher.
func NewECB(key []byte) (*ECB, error) {
	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	return &ECB{key: k}, nil
}

// Encrypt encrypts buf in place; buf must hold at least one block.
func (e *ECB) Encrypt(buf []byte) error {
	if len(buf) < BlockSize {
		return errs.Wrap(errs.ErrBadLength, "ecb: %d octets", len(buf))
	}

	i := 0
	for ; len(buf)-i >= BlockSize; i += BlockSize {
		BlockEncr(buf[i:i+BlockSize], &e.key)
	}

	if c := len(buf) - i; c > 0 {
		swapTail(buf[i-BlockSize:i-BlockSize+c], buf[i:])
		BlockEncr(buf[i-BlockSize:i], &e.key)
	}

	return nil
}

// Decrypt decrypts buf in place; buf must hold at least one block.
func (e *ECB) Decrypt(buf []byte) error {
	if len(buf) < BlockSize {
		return errs.Wrap(errs.ErrBadLength, "ecb: %d octets", len(buf))
	}

	c := len(buf) % BlockSize
	full := len(buf) - c
	if c > 0 {
		full -= BlockSize
	}

	for i := 0; i < full; i += BlockSize {
		BlockDecr(buf[i:i+BlockSize], &e.key)
	}

	if c > 0 {
		last := buf[full : full+BlockSize]
		BlockDecr(last, &e.key)
		swapTail(last[:c], buf[full+BlockSize:])
		BlockDecr(last, &e.key)
	}

	return nil
}

// Wipe zeroes the key.
func (e *ECB) Wipe() {
	e.key.Wipe()
}

func swapTail(a, b []byte) {
	for i := range b {
		a[i], b[i] = b[i], a[i]
	}
}

// ECBEncr encrypts src into dst under key.
func ECBEncr(dst, src, key []byte) error {
	e, err := NewECB(key)
	if err != nil {
		return err
	}
	defer e.Wipe()

	copy(dst, src)

	return e.Encrypt(dst[:len(src)])
}

// ECBDecr decrypts src into dst under key.
func ECBDecr(dst, src, key []byte) error {
	e, err := NewECB(key)
	if err != nil {
		return err
	}
	defer e.Wipe()

	copy(dst, src)

	return e.Decrypt(dst[:len(src)])
}
