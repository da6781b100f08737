package belt

import (
	"encoding/binary"

	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/blob"
)

// WBL is the belt wide-block cipher: a buffer of at least 32 octets is
// encrypted as a single block.
type WBL struct {
	key Key
}

// NewWBL creates a wide-block cipher.
func NewWBL(key []byte) (*WBL, error) {
	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	return &WBL{key: k}, nil
}

func roundBlock(e *[BlockSize]byte, s []byte, i int, k *Key) {
	copy(e[:], s)
	BlockEncr(e[:], k)

	var c [BlockSize]byte
	binary.LittleEndian.PutUint64(c[:], uint64(i))
	xorBlock(e[:], e[:], c[:])
}

// Encrypt encrypts buf in place.
func (w *WBL) Encrypt(buf []byte) error {
	l := len(buf)
	if l < 2*BlockSize {
		return errs.Wrap(errs.ErrBadLength, "wbl: %d octets", l)
	}

	n := (l + BlockSize - 1) / BlockSize

	var s, e [BlockSize]byte

	if l%BlockSize == 0 {
		// s is kept as a running sum of the first n-1 blocks
		for j := 0; j < n-1; j++ {
			xorBlock(s[:], s[:], buf[j*BlockSize:])
		}

		for i := 1; i <= 2*n; i++ {
			roundBlock(&e, s[:], i, &w.key)
			last := buf[l-BlockSize:]
			xorBlock(last, last, e[:])

			// next s = s ^ r_1 ^ r_n
			var first [BlockSize]byte
			copy(first[:], buf[:BlockSize])
			copy(buf, buf[BlockSize:])
			copy(buf[l-BlockSize:], s[:])
			xorBlock(s[:], s[:], first[:])
			xorBlock(s[:], s[:], buf[l-2*BlockSize:])
		}

		blob.Wipe(e[:])
		blob.Wipe(s[:])

		return nil
	}

	for i := 1; i <= 2*n; i++ {
		s = [BlockSize]byte{}
		for j := 0; j < n-1; j++ {
			xorBlock(s[:], s[:], buf[j*BlockSize:])
		}

		roundBlock(&e, s[:], i, &w.key)
		last := buf[l-BlockSize:]
		xorBlock(last, last, e[:])
		copy(buf, buf[BlockSize:])
		copy(buf[l-BlockSize:], s[:])
	}

	blob.Wipe(e[:])
	blob.Wipe(s[:])

	return nil
}

// Decrypt decrypts buf in place.
func (w *WBL) Decrypt(buf []byte) error {
	l := len(buf)
	if l < 2*BlockSize {
		return errs.Wrap(errs.ErrBadLength, "wbl: %d octets", l)
	}

	n := (l + BlockSize - 1) / BlockSize

	var s, e [BlockSize]byte

	for i := 2 * n; i >= 1; i-- {
		copy(s[:], buf[l-BlockSize:])
		copy(buf[BlockSize:], buf[:l-BlockSize])

		roundBlock(&e, s[:], i, &w.key)
		last := buf[l-BlockSize:]
		xorBlock(last, last, e[:])

		// r_1 = s ^ r_2 ^ ... ^ r_{n-1}
		copy(buf[:BlockSize], s[:])
		for j := 1; j < n-1; j++ {
			xorBlock(buf[:BlockSize], buf[:BlockSize], buf[j*BlockSize:])
		}
	}

	blob.Wipe(e[:])
	blob.Wipe(s[:])

	return nil
}

// Wipe zeroes the key.
func (w *WBL) Wipe() {
	w.key.Wipe()
}

// WBLEncr encrypts src into dst.
func WBLEncr(dst, src, key []byte) error {
	w, err := NewWBL(key)
	if err != nil {
		return err
	}
	defer w.Wipe()

	copy(dst, src)

	return w.Encrypt(dst[:len(src)])
}

// WBLDecr decrypts src into dst.
func WBLDecr(dst, src, key []byte) error {
	w, err := NewWBL(key)
	if err != nil {
		return err
	}
	defer w.Wipe()

	copy(dst, src)

	return w.Decrypt(dst[:len(src)])
}

// KWPWrap wraps the key x of at least 16 octets under key. header is a
// 16-octet tag checked on unwrap; nil means zeros. The token is 16 octets
// longer than x.
func KWPWrap(x, header, key []byte) ([]byte, error) {
	if len(x) < BlockSize {
		return nil, errs.Wrap(errs.ErrBadLength, "kwp: key of %d octets", len(x))
	}

	if header != nil && len(header) != BlockSize {
		return nil, errs.Wrap(errs.ErrBadLength, "kwp: header of %d octets", len(header))
	}

	w, err := NewWBL(key)
	if err != nil {
		return nil, err
	}
	defer w.Wipe()

	token := make([]byte, len(x)+BlockSize)
	copy(token, x)
	copy(token[len(x):], header)

	if err := w.Encrypt(token); err != nil {
		return nil, err
	}

	return token, nil
}

// KWPUnwrap recovers the key wrapped in token and checks the header.
func KWPUnwrap(token, header, key []byte) ([]byte, error) {
	if len(token) < 2*BlockSize {
		return nil, errs.Wrap(errs.ErrBadLength, "kwp: token of %d octets", len(token))
	}

	if header != nil && len(header) != BlockSize {
		return nil, errs.Wrap(errs.ErrBadLength, "kwp: header of %d octets", len(header))
	}

	w, err := NewWBL(key)
	if err != nil {
		return nil, err
	}
	defer w.Wipe()

	buf := make([]byte, len(token))
	copy(buf, token)

	if err := w.Decrypt(buf); err != nil {
		return nil, err
	}

	var want [BlockSize]byte
	copy(want[:], header)

	n := len(buf) - BlockSize
	if !blob.Equal(buf[n:], want[:]) {
		blob.Wipe(buf)
		return nil, errs.ErrBadKeyToken
	}

	return buf[:n], nil
}
