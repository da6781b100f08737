package zz

import (
	"math/bits"

	"github.com/bee2-go/bee2/helper/word"
)

func addWW(a, b, carry Word) (Word, Word) {
	return bits.Add64(a, b, carry)
}

func subWW(a, b, borrow Word) (Word, Word) {
	return bits.Sub64(a, b, borrow)
}

// Add sets c = a + b mod B^n, n = len(a) = len(b), and returns the carry.
// c may alias a or b.
func Add(c, a, b []Word) Word {
	var carry Word
	for i := range a {
		c[i], carry = addWW(a[i], b[i], carry)
	}

	return carry
}

// Add2 sets b += a, len(b) >= len(a), and returns the carry out of
// len(a) words.
func Add2(b, a []Word) Word {
	return Add(b, b[:len(a)], a)
}

// Add3 sets c = a + b for operands of different lengths. c must hold
// max(len(a), len(b)) words. The carry is returned.
func Add3(c, a, b []Word) Word {
	if len(a) < len(b) {
		a, b = b, a
	}

	carry := Add(c, a[:len(b)], b)

	return AddW(c[len(b):len(a)], a[len(b):], carry)
}

// AddW sets b = a + w and returns the carry. The running time depends only
// on len(a).
func AddW(b, a []Word, w Word) Word {
	for i := range a {
		b[i], w = addWW(a[i], w, 0)
	}

	return w
}

// AddW2 sets a += w and returns the carry.
func AddW2(a []Word, w Word) Word {
	return AddW(a, a, w)
}

// AddW2Fast sets a += w, stopping as soon as the carry is absorbed.
func AddW2Fast(a []Word, w Word) Word {
	for i := 0; i < len(a) && w != 0; i++ {
		a[i], w = addWW(a[i], w, 0)
	}

	return w
}

// IsSumEq reports whether c == a + b (carry included) in constant time.
func IsSumEq(c, a, b []Word) bool {
	var (
		carry, acc, s Word
	)

	for i := range a {
		s, carry = addWW(a[i], b[i], carry)
		acc |= s ^ c[i]
	}

	return word.IsZero(acc|carry) == 1
}

// IsSumEqFast reports whether c == a + b, returning at the first mismatch.
func IsSumEqFast(c, a, b []Word) bool {
	var carry, s Word

	for i := range a {
		s, carry = addWW(a[i], b[i], carry)
		if s != c[i] {
			return false
		}
	}

	return carry == 0
}

// IsSumWEq reports whether b == a + w in constant time.
func IsSumWEq(b, a []Word, w Word) bool {
	var acc, s Word

	for i := range a {
		s, w = addWW(a[i], w, 0)
		acc |= s ^ b[i]
	}

	return word.IsZero(acc|w) == 1
}

// Sub sets c = a - b mod B^n and returns the borrow.
func Sub(c, a, b []Word) Word {
	var borrow Word
	for i := range a {
		c[i], borrow = subWW(a[i], b[i], borrow)
	}

	return borrow
}

// Sub2 sets b -= a, len(b) >= len(a), and returns the borrow out of
// len(a) words.
func Sub2(b, a []Word) Word {
	return Sub(b, b[:len(a)], a)
}

// SubW sets b = a - w and returns the borrow.
func SubW(b, a []Word, w Word) Word {
	for i := range a {
		b[i], w = subWW(a[i], w, 0)
	}

	return w
}

// SubW2 sets a -= w and returns the borrow.
func SubW2(a []Word, w Word) Word {
	return SubW(a, a, w)
}

// SubW2Fast sets a -= w, stopping as soon as the borrow is absorbed.
func SubW2Fast(a []Word, w Word) Word {
	for i := 0; i < len(a) && w != 0; i++ {
		a[i], w = subWW(a[i], w, 0)
	}

	return w
}

// Neg sets b = -a mod B^n.
func Neg(b, a []Word) {
	var borrow Word
	for i := range a {
		b[i], borrow = subWW(0, a[i], borrow)
	}
}

// addMasked sets b += a & mask and returns the carry.
func addMasked(b, a []Word, mask Word) Word {
	var carry Word
	for i := range a {
		b[i], carry = addWW(b[i], a[i]&mask, carry)
	}

	return carry
}

// subMasked sets b -= a & mask and returns the borrow.
func subMasked(b, a []Word, mask Word) Word {
	var borrow Word
	for i := range a {
		b[i], borrow = subWW(b[i], a[i]&mask, borrow)
	}

	return borrow
}

// selectInto sets c = a if mask is all ones and c = b if mask is zero.
func selectInto(c, a, b []Word, mask Word) {
	for i := range c {
		c[i] = b[i] ^ ((a[i] ^ b[i]) & mask)
	}
}
