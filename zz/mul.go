package zz

import (
	"math/bits"
)

// MulW sets b = a * w and returns the high word of the product.
func MulW(b, a []Word, w Word) Word {
	var carry Word

	for i := range a {
		hi, lo := bits.Mul64(a[i], w)
		lo, c := addWW(lo, carry, 0)
		b[i], carry = lo, hi+c
	}

	return carry
}

// AddMulW sets b += a * w over len(a) words and returns the carry word.
func AddMulW(b, a []Word, w Word) Word {
	var carry Word

	for i := range a {
		hi, lo := bits.Mul64(a[i], w)
		lo, c := addWW(lo, carry, 0)
		hi += c
		b[i], c = addWW(b[i], lo, 0)
		carry = hi + c
	}

	return carry
}

// SubMulW sets b -= a * w over len(a) words and returns the borrow word.
func SubMulW(b, a []Word, w Word) Word {
	var borrow Word

	for i := range a {
		hi, lo := bits.Mul64(a[i], w)
		lo, c := addWW(lo, borrow, 0)
		hi += c
		b[i], c = subWW(b[i], lo, 0)
		borrow = hi + c
	}

	return borrow
}

// Mul sets c = a * b; c holds len(a)+len(b) words and must not overlap
// a or b.
func Mul(c, a, b []Word) {
	n, m := len(a), len(b)
	SetZero(c[:n+m])

	for j := 0; j < m; j++ {
		c[n+j] = AddMulW(c[j:j+n], a, b[j])
	}
}

// Sqr sets b = a^2; b holds 2*len(a) words and must not overlap a.
func Sqr(b, a []Word) {
	n := len(a)
	SetZero(b[:2*n])

	if n == 0 {
		return
	}

	// cross products a[i]*a[j], i < j
	for i := 0; i+1 < n; i++ {
		b[i+n] = AddMulW(b[2*i+1:i+n], a[i+1:], a[i])
	}

	// double
	b[2*n-1] = ShHi(b[:2*n-1], 1)

	// diagonal
	var carry Word

	for i := 0; i < n; i++ {
		hi, lo := bits.Mul64(a[i], a[i])
		b[2*i], carry = addWW(b[2*i], lo, carry)
		b[2*i+1], carry = addWW(b[2*i+1], hi, carry)
	}
}

// MulDeep returns the workspace size of Mul.
func MulDeep(n, m int) int {
	return 0
}

// SqrDeep returns the workspace size of Sqr.
func SqrDeep(n int) int {
	return 0
}
