// Package zz implements unsigned multi-precision arithmetic over
// little-endian word arrays.
//
// A number a of n words is sum(a[i] * B^i), B = 2^64. Routines never read
// past len(a)-1. Carries and borrows are returned as words. Functions that
// need auxiliary memory take a workspace ("stack") as their last argument
// and export a matching Deep function giving its size in words; a nil or
// short stack is replaced by a fresh allocation.
//
// Functions without a suffix run in time independent of operand values.
// Functions with the Fast suffix may branch on data and are intended for
// public values only.
package zz

import (
	"github.com/bee2-go/bee2/helper/word"
)

// Word is the multi-precision digit.
type Word = word.Word

// BPerImpossible is the security threshold, in bits, below which an event
// is considered impossible. It bounds rejection sampling and the number of
// Rabin-Miller iterations.
const BPerImpossible = 64

// need returns stack if it holds at least n words and a fresh slice
// otherwise.
func need(stack []Word, n int) []Word {
	if len(stack) < n {
		return make([]Word, n)
	}

	return stack
}

// Copy copies a into b; len(b) >= len(a).
func Copy(b, a []Word) {
	copy(b, a)
}

// SetZero zeroes a.
func SetZero(a []Word) {
	for i := range a {
		a[i] = 0
	}
}

// SetW sets a to the single-word value w.
func SetW(a []Word, w Word) {
	SetZero(a)

	if len(a) > 0 {
		a[0] = w
	}
}

// IsZero reports whether a == 0 in constant time.
func IsZero(a []Word) bool {
	var acc Word
	for _, w := range a {
		acc |= w
	}

	return word.IsZero(acc) == 1
}

// IsZeroFast reports whether a == 0.
func IsZeroFast(a []Word) bool {
	for _, w := range a {
		if w != 0 {
			return false
		}
	}

	return true
}

// IsW reports whether a equals the single word w, in constant time.
func IsW(a []Word, w Word) bool {
	if len(a) == 0 {
		return w == 0
	}

	acc := a[0] ^ w
	for _, v := range a[1:] {
		acc |= v
	}

	return word.IsZero(acc) == 1
}

// IsOdd reports whether a is odd.
func IsOdd(a []Word) bool {
	return len(a) > 0 && a[0]&1 == 1
}

// IsEven reports whether a is even.
func IsEven(a []Word) bool {
	return !IsOdd(a)
}

// Eq reports whether a == b in constant time; len(a) == len(b).
func Eq(a, b []Word) bool {
	var acc Word
	for i := range a {
		acc |= a[i] ^ b[i]
	}

	return word.IsZero(acc) == 1
}

// EqFast reports whether a == b.
func EqFast(a, b []Word) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// Cmp compares a and b of equal length in constant time and returns -1,
// 0 or 1.
func Cmp(a, b []Word) int {
	var less, greater Word

	for i := range a {
		// higher words override lower ones
		eq := word.Eq(a[i], b[i])
		lt := word.Less(a[i], b[i])
		gt := word.Less(b[i], a[i])
		less = word.Select(eq, less, lt)
		greater = word.Select(eq, greater, gt)
	}

	return int(greater) - int(less)
}

// CmpFast compares a and b of equal length.
func CmpFast(a, b []Word) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] > b[i] {
			return 1
		}

		if a[i] < b[i] {
			return -1
		}
	}

	return 0
}

// Cmp2 compares numbers of arbitrary lengths.
func Cmp2(a, b []Word) int {
	n, m := WordSize(a), WordSize(b)
	if n != m {
		if n > m {
			return 1
		}

		return -1
	}

	return CmpFast(a[:n], b[:n])
}

// Less returns 1 if a < b and 0 otherwise, in constant time; len(a) == len(b).
func Less(a, b []Word) Word {
	var borrow Word
	for i := range a {
		_, borrow = subWW(a[i], b[i], borrow)
	}

	return borrow
}

// WordSize returns the number of significant words of a.
func WordSize(a []Word) int {
	n := len(a)
	for n > 0 && a[n-1] == 0 {
		n--
	}

	return n
}

// BitSize returns the number of significant bits of a.
func BitSize(a []Word) int {
	n := WordSize(a)
	if n == 0 {
		return 0
	}

	return (n-1)*word.B + word.BitLen(a[n-1])
}

// TestBit returns bit i of a.
func TestBit(a []Word, i int) Word {
	return (a[i/word.B] >> uint(i%word.B)) & 1
}

// SetBit sets bit i of a to v (0 or 1).
func SetBit(a []Word, i int, v Word) {
	shift := uint(i % word.B)
	a[i/word.B] = (a[i/word.B] &^ (1 << shift)) | ((v & 1) << shift)
}

// GetBits returns l <= 64 bits of a starting at position pos.
func GetBits(a []Word, pos, l int) Word {
	if l == 0 {
		return 0
	}

	i, shift := pos/word.B, uint(pos%word.B)
	r := a[i] >> shift

	if shift != 0 && i+1 < len(a) && int(shift)+l > word.B {
		r |= a[i+1] << (word.B - shift)
	}

	if l < word.B {
		r &= (Word(1) << uint(l)) - 1
	}

	return r
}

// ShLo shifts a towards the low words by shift bits and returns the bits
// shifted out of the lowest word (for shift < 64).
func ShLo(a []Word, shift int) Word {
	n := len(a)
	if shift >= n*word.B {
		SetZero(a)
		return 0
	}

	wshift, bshift := shift/word.B, uint(shift%word.B)

	var carry Word
	if wshift > 0 {
		copy(a, a[wshift:])
		SetZero(a[n-wshift:])
	}

	if bshift > 0 {
		for i := n - wshift - 1; i >= 0; i-- {
			w := a[i]
			a[i] = (w >> bshift) | carry
			carry = w << (word.B - bshift)
		}
	}

	return carry >> (word.B - bshift)
}

// ShHi shifts a towards the high words by shift bits and returns the bits
// shifted out of the highest word (for shift < 64).
func ShHi(a []Word, shift int) Word {
	n := len(a)
	if shift >= n*word.B {
		SetZero(a)
		return 0
	}

	wshift, bshift := shift/word.B, uint(shift%word.B)

	if wshift > 0 {
		copy(a[wshift:], a[:n-wshift])
		SetZero(a[:wshift])
	}

	var carry Word

	if bshift > 0 {
		for i := wshift; i < n; i++ {
			w := a[i]
			a[i] = (w << bshift) | carry
			carry = w >> (word.B - bshift)
		}
	}

	return carry
}

// shlInto stores a << shift (shift < 64) into b and returns the bits
// shifted out of the top.
func shlInto(b, a []Word, shift uint) Word {
	if shift == 0 {
		copy(b, a)
		return 0
	}

	var carry Word

	for i := range a {
		w := a[i]
		b[i] = (w << shift) | carry
		carry = w >> (word.B - shift)
	}

	return carry
}

// shrInto stores a >> shift (shift < 64) into b.
func shrInto(b, a []Word, shift uint) {
	if shift == 0 {
		copy(b, a)
		return
	}

	n := len(a)
	for i := 0; i < n; i++ {
		w := a[i] >> shift
		if i+1 < n {
			w |= a[i+1] << (word.B - shift)
		}

		b[i] = w
	}
}

// TrailingZeros returns the number of trailing zero bits of a non-zero a.
func TrailingZeros(a []Word) int {
	for i, w := range a {
		if w != 0 {
			return i*word.B + word.CTZ(w)
		}
	}

	return len(a) * word.B
}

// FromOctets converts a little-endian octet string into a.
func FromOctets(a []Word, buf []byte) {
	word.FromOctets(a, buf)
}

// ToOctets converts a into a little-endian octet string of len(buf) octets.
func ToOctets(buf []byte, a []Word) {
	word.ToOctets(buf, a)
}
