// Package qr describes finite commutative rings through a common
// interface. Elements are word arrays in an internal representation that
// only From and To translate to and from little-endian octet strings.
package qr

import (
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/zz"
)

// Word is the element digit.
type Word = word.Word

// Ring is a finite commutative ring with unity.
//
// All operations take a workspace of at least Base().Deep words (nil is
// allowed). Add, Sub and Neg run in constant time.
type Ring interface {
	// Base returns the shared description of the ring.
	Base() *Base

	// From decodes an octet string of Base().NO octets into a and reports
	// whether it represents an element.
	From(a []Word, buf []byte, stack []Word) bool
	// To encodes a into Base().NO octets.
	To(buf []byte, a []Word, stack []Word)

	Add(c, a, b []Word, stack []Word)
	Sub(c, a, b []Word, stack []Word)
	Neg(b, a []Word, stack []Word)
	Mul(c, a, b []Word, stack []Word)
	Sqr(b, a []Word, stack []Word)

	// Inv sets b = a^{-1}. The inverse of a non-invertible element is zero.
	Inv(b, a []Word, stack []Word)
	// Div sets b = divident / a.
	Div(b, divident, a []Word, stack []Word)
}

// Base holds what every ring shares.
type Base struct {
	// Mod is the modulus: an integer for Z/mZ, a polynomial for GF(2^m).
	Mod []Word
	// N is the number of words per element.
	N int
	// NO is the number of octets in the external encoding of an element.
	NO int
	// Unity is the internal representation of 1.
	Unity []Word
	// Deep bounds the workspace, in words, of any single operation.
	Deep int
}

// IsZero reports whether a is the zero element.
func (b *Base) IsZero(a []Word) bool {
	return zz.IsZero(a[:b.N])
}

// IsUnity reports whether a is the unity.
func (b *Base) IsUnity(a []Word) bool {
	return zz.Eq(a[:b.N], b.Unity)
}

// Eq reports whether a and c are equal elements.
func (b *Base) Eq(a, c []Word) bool {
	return zz.Eq(a[:b.N], c[:b.N])
}

// SetUnity sets a to the unity.
func (b *Base) SetUnity(a []Word) {
	copy(a[:b.N], b.Unity)
}

// Elem allocates a zero element.
func (b *Base) Elem() []Word {
	return make([]Word, b.N)
}

// IsOperable checks the internal consistency of a ring description.
func IsOperable(r Ring) error {
	if r == nil {
		return errs.ErrBadParams
	}

	b := r.Base()

	switch {
	case b == nil:
		return errs.ErrBadParams
	case b.N <= 0 || b.NO <= 0 || b.NO > b.N*word.O:
		return errs.Wrap(errs.ErrBadParams, "element size n=%d no=%d", b.N, b.NO)
	case len(b.Unity) != b.N || zz.IsZeroFast(b.Mod):
		return errs.Wrap(errs.ErrBadParams, "unity or modulus")
	}

	return nil
}

// PowerWindow returns the sliding-window width for an exponent of l bits.
func PowerWindow(l int) int {
	switch {
	case l <= 79:
		return 3
	case l <= 239:
		return 4
	case l <= 671:
		return 5
	case l <= 1791:
		return 6
	default:
		return 7
	}
}

// PowerDeep returns the workspace size of Power for elements of n words, an
// exponent of m words and a ring workspace of ringDeep words.
func PowerDeep(n, m, ringDeep int) int {
	w := PowerWindow(m * word.B)

	return (1<<uint(w-1))*n + 2*n + ringDeep
}

// Power sets b = a^e in r by the sliding-window method. The running time
// depends on the exponent, which is therefore treated as public.
func Power(b, a, e []Word, r Ring, stack []Word) {
	base := r.Base()
	n := base.N
	bits := zz.BitSize(e)

	if bits == 0 {
		base.SetUnity(b)
		return
	}

	w := PowerWindow(bits)
	size := PowerDeep(n, len(e), base.Deep)

	if len(stack) < size {
		stack = make([]Word, size)
	}

	count := 1 << uint(w-1)
	table := stack[:count*n]
	acc := stack[count*n : (count+1)*n]
	sq := stack[(count+1)*n : (count+2)*n]
	rest := stack[(count+2)*n:]

	// table[i] = a^{2i+1}
	copy(table[:n], a[:n])
	r.Sqr(sq, a, rest)

	for i := 1; i < count; i++ {
		r.Mul(table[i*n:(i+1)*n], table[(i-1)*n:i*n], sq, rest)
	}

	base.SetUnity(acc)

	for i := bits - 1; i >= 0; {
		if zz.TestBit(e, i) == 0 {
			r.Sqr(acc, acc, rest)
			i--

			continue
		}

		// longest window e[j..i] of at most w bits ending in a one
		j := i - w + 1
		if j < 0 {
			j = 0
		}

		for zz.TestBit(e, j) == 0 {
			j++
		}

		val := int(zz.GetBits(e, j, i-j+1))

		for k := j; k <= i; k++ {
			r.Sqr(acc, acc, rest)
		}

		r.Mul(acc, acc, table[(val>>1)*n:((val>>1)+1)*n], rest)
		i = j - 1
	}

	copy(b[:n], acc)
	zz.SetZero(stack[:(count+2)*n])
}
