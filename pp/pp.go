// Package pp implements arithmetic on binary polynomials, that is,
// polynomials over GF(2). A polynomial is stored as a little-endian word
// array with bit i holding the coefficient of x^i.
package pp

import (
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/zz"
)

// Word is the polynomial digit.
type Word = word.Word

const karaThreshold = 8

func need(stack []Word, n int) []Word {
	if len(stack) < n {
		return make([]Word, n)
	}

	return stack
}

// Deg returns the degree of a, or -1 for the zero polynomial.
func Deg(a []Word) int {
	return zz.BitSize(a) - 1
}

// Add sets c = a + b; len(a) == len(b).
func Add(c, a, b []Word) {
	for i := range a {
		c[i] = a[i] ^ b[i]
	}
}

// Add2 sets b += a over len(a) words.
func Add2(b, a []Word) {
	Add(b, b[:len(a)], a)
}

// Add3 sets c = a + b for polynomials of different lengths; c holds
// max(len(a), len(b)) words.
func Add3(c, a, b []Word) {
	if len(a) < len(b) {
		a, b = b, a
	}

	Add(c, a[:len(b)], b)
	copy(c[len(b):len(a)], a[len(b):])
}

// MulW returns the carry-less product of two words as (hi, lo). The loop
// does not branch on operand bits.
func MulW(a, b Word) (hi, lo Word) {
	for i := 0; i < word.B; i++ {
		mask := -((b >> uint(i)) & 1)
		lo ^= (a << uint(i)) & mask
		hi ^= (a >> uint(word.B-i)) & mask
	}

	return hi, lo
}

// mulSchool sets c = a * b; c holds len(a)+len(b) words.
func mulSchool(c, a, b []Word) {
	n, m := len(a), len(b)
	zz.SetZero(c[:n+m])

	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			hi, lo := MulW(a[i], b[j])
			c[i+j] ^= lo
			c[i+j+1] ^= hi
		}
	}
}

// MulDeep returns the workspace size of Mul.
func MulDeep(n, m int) int {
	if n != m || n < karaThreshold {
		return 0
	}

	l := n - n/2

	return 4*l + MulDeep(l, l)
}

// Mul sets c = a * b; c holds len(a)+len(b) words and must not overlap
// the operands. Operands of equal length are multiplied by Karatsuba.
func Mul(c, a, b []Word, stack []Word) {
	n, m := len(a), len(b)
	if n != m || n < karaThreshold {
		mulSchool(c, a, b)
		return
	}

	stack = need(stack, MulDeep(n, m))

	h := n / 2
	l := n - h
	sa, sb, p1 := stack[:l], stack[l:2*l], stack[2*l:4*l]
	rest := stack[4*l:]

	Mul(c[:2*l], a[:l], b[:l], rest)
	Mul(c[2*l:2*n], a[l:], b[l:], rest)

	copy(sa, a[:l])
	Add2(sa, a[l:])
	copy(sb, b[:l])
	Add2(sb, b[l:])
	Mul(p1, sa, sb, rest)

	Add2(p1, c[:2*l])
	Add2(p1, c[2*l:2*n])
	Add2(c[l:3*l], p1)

	zz.SetZero(stack[:4*l])
}

// spread interleaves the 32 bits of w with zeros.
func spread(w Word) Word {
	w &= 0xFFFFFFFF
	w = (w | w<<16) & 0x0000FFFF0000FFFF
	w = (w | w<<8) & 0x00FF00FF00FF00FF
	w = (w | w<<4) & 0x0F0F0F0F0F0F0F0F
	w = (w | w<<2) & 0x3333333333333333
	w = (w | w<<1) & 0x5555555555555555

	return w
}

// Sqr sets b = a^2; b holds 2*len(a) words. b may not overlap a.
func Sqr(b, a []Word) {
	for i := range a {
		b[2*i] = spread(a[i])
		b[2*i+1] = spread(a[i] >> 32)
	}
}
