// Package bels implements the STB 34.101.60 threshold secret sharing
// scheme over GF(2^l), l in {128, 192, 256}.
//
// A public polynomial m is stored as l/8 little-endian octets holding the
// low coefficients of x^l + m(x). The secret, m_0 and every share are
// elements of GF(2)[x] of degree below l.
package bels

import (
	"bytes"
	"io"

	"github.com/bee2-go/bee2/belt"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/pp"
	"github.com/bee2-go/bee2/zz"
)

// MaxShares is the number of standard public polynomials besides m_0.
const MaxShares = 16

// stdLow holds, per level, the low parts of the standard polynomials
// m_0, ..., m_16: the 17 smallest m for which x^l + m is irreducible.
var stdLow = map[int][MaxShares + 1]word.Word{
	128: {
		0x87, 0xF9, 0x12F, 0x13B, 0x173, 0x175, 0x285, 0x2DF, 0x3B1,
		0x3F9, 0x68D, 0x6F3, 0x743, 0x751, 0x7B5, 0x7DF, 0x83B,
	},
	192: {
		0x87, 0x15D, 0x353, 0x363, 0x46B, 0x4EF, 0x57B, 0x5D7, 0x837,
		0x8CD, 0xA0F, 0xA77, 0xEE3, 0xEE9, 0xF4B, 0x10A7, 0x11A3,
	},
	256: {
		0x425, 0x533, 0x797, 0x7EF, 0x879, 0x91D, 0x959, 0x9E7, 0xA7D,
		0xB15, 0xBA7, 0xC71, 0xD19, 0xDC7, 0xE15, 0xE45, 0xE91,
	},
}

func checkLen(n int) error {
	if n != 16 && n != 24 && n != 32 {
		return errs.Wrap(errs.ErrBadLength, "bels: element of %d octets", n)
	}

	return nil
}

// Std returns the standard public polynomial m_num, num in [0, 16], for
// elements of n octets (16, 24 or 32).
func Std(n, num int) ([]byte, error) {
	if err := checkLen(n); err != nil {
		return nil, err
	}

	if num < 0 || num > MaxShares {
		return nil, errs.Wrap(errs.ErrBadParams, "bels: no standard polynomial %d", num)
	}

	m := make([]byte, n)
	word.ToOctets(m[:word.O], []word.Word{stdLow[8*n][num]})

	return m, nil
}

// poly returns x^l + m(x) in w words.
func poly(m []byte, w int) []word.Word {
	f := make([]word.Word, w)
	zz.FromOctets(f[:word.OfO(len(m))], m)
	zz.SetBit(f, 8*len(m), 1)

	return f
}

// ValidateM checks that x^l + m(x) is irreducible.
func ValidateM(m []byte) error {
	if err := checkLen(len(m)); err != nil {
		return err
	}

	n := word.OfO(len(m))
	if !pp.IsIrred(poly(m, n+1), nil) {
		return errs.Wrap(errs.ErrBadParams, "bels: reducible public polynomial")
	}

	return nil
}

// GenM0 generates a random public polynomial m_0 of n octets.
func GenM0(n int, rng io.Reader) ([]byte, error) {
	if err := checkLen(n); err != nil {
		return nil, err
	}

	m := make([]byte, n)
	w := word.OfO(n)
	stack := make([]word.Word, pp.IsIrredDeep(w+1))

	// about one odd candidate in l/2 is irreducible
	for i := 0; i < n*zz.BPerImpossible; i++ {
		if _, err := io.ReadFull(rng, m); err != nil {
			return nil, errs.Wrap(errs.ErrBadRng, "%v", err)
		}

		m[0] |= 1

		if pp.IsIrred(poly(m, w+1), stack) {
			return m, nil
		}
	}

	return nil, errs.ErrBadRng
}

// minPoly sets mi to the low part of the minimal polynomial of u in
// GF(2)[x]/(x^l + m0) and reports whether that polynomial has degree l.
func minPoly(mi, u, m0 []byte) bool {
	n := word.OfO(len(m0))
	f := poly(m0, n+1)
	a := make([]word.Word, n+1)
	b := make([]word.Word, 2*n+1)
	zz.FromOctets(a[:n], u)

	if pp.MinPolyMod(b, a, f, nil) != 8*len(m0) {
		return false
	}

	zz.ToOctets(mi, b[:n])

	return true
}

// GenMi generates a random public polynomial m_i compatible with m0.
func GenMi(m0 []byte, rng io.Reader) ([]byte, error) {
	if err := ValidateM(m0); err != nil {
		return nil, err
	}

	u := make([]byte, len(m0))
	mi := make([]byte, len(m0))

	for i := 0; i < zz.BPerImpossible; i++ {
		if _, err := io.ReadFull(rng, u); err != nil {
			return nil, errs.Wrap(errs.ErrBadRng, "%v", err)
		}

		if minPoly(mi, u, m0) && !bytes.Equal(mi, m0) {
			return mi, nil
		}
	}

	return nil, errs.ErrBadRng
}

// GenMid derives the public polynomial of a user from the identifier id.
// The candidate element is belt-hash of id, rehashed until its minimal
// polynomial has full degree.
func GenMid(m0, id []byte) ([]byte, error) {
	if err := ValidateM(m0); err != nil {
		return nil, err
	}

	var (
		u  = make([]byte, len(m0))
		mi = make([]byte, len(m0))
		h  = belt.Sum(id)
	)

	for i := 0; i < zz.BPerImpossible; i++ {
		// stretch the hash to l bits
		k := copy(u, h[:])
		if k < len(u) {
			h2 := belt.Sum(h[:])
			copy(u[k:], h2[:])
		}

		if minPoly(mi, u, m0) && !bytes.Equal(mi, m0) {
			return mi, nil
		}

		h = belt.Sum(h[:])
	}

	return nil, errs.ErrNotFound
}
