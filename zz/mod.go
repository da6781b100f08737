package zz

import (
	"github.com/bee2-go/bee2/helper/word"
)

// AddMod sets c = a + b mod m for a, b < m in constant time.
func AddMod(c, a, b, mod []Word) {
	carry := Add(c, a, b)
	ge := Less(c, mod) ^ 1
	subMasked(c, mod, word.Mask(carry|ge))
}

// AddModFast is the variable-time twin of AddMod.
func AddModFast(c, a, b, mod []Word) {
	if Add(c, a, b) != 0 || CmpFast(c, mod) >= 0 {
		Sub(c, c, mod)
	}
}

// AddWMod sets b = a + w mod m for a < m and w < m.
func AddWMod(b, a []Word, w Word, mod []Word) {
	carry := AddW(b, a, w)
	ge := Less(b, mod) ^ 1
	subMasked(b, mod, word.Mask(carry|ge))
}

// SubMod sets c = a - b mod m for a, b < m in constant time.
func SubMod(c, a, b, mod []Word) {
	borrow := Sub(c, a, b)
	addMasked(c, mod, word.Mask(borrow))
}

// SubModFast is the variable-time twin of SubMod.
func SubModFast(c, a, b, mod []Word) {
	if Sub(c, a, b) != 0 {
		Add(c, c, mod)
	}
}

// SubWMod sets b = a - w mod m for a < m and w < m.
func SubWMod(b, a []Word, w Word, mod []Word) {
	borrow := SubW(b, a, w)
	addMasked(b, mod, word.Mask(borrow))
}

// NegMod sets b = -a mod m for a < m.
func NegMod(b, a, mod []Word) {
	var acc Word
	for _, w := range a {
		acc |= w
	}

	nz := word.Mask(word.IsZero(acc) ^ 1)

	var borrow Word
	for i := range mod {
		b[i], borrow = subWW(mod[i]&nz, a[i], borrow)
	}
}

// DoubleMod sets b = 2a mod m.
func DoubleMod(b, a, mod []Word) {
	AddMod(b, a, a, mod)
}

// HalfMod sets b = a / 2 mod m for odd m and a < m.
func HalfMod(b, a, mod []Word) {
	n := len(mod)
	odd := word.Mask(a[0] & 1)

	copy(b[:n], a[:n])
	carry := addMasked(b[:n], mod, odd)
	ShLo(b[:n], 1)
	b[n-1] |= carry << (word.B - 1)
}

// MulModDeep returns the workspace size of MulMod.
func MulModDeep(n int) int {
	return 2*n + ModDeep(2*n, n)
}

// MulMod sets c = a * b mod m; m has a non-zero top word.
func MulMod(c, a, b, mod []Word, stack []Word) {
	n := len(mod)
	stack = need(stack, MulModDeep(n))
	prod := stack[:2*n]

	Mul(prod, a[:n], b[:n])
	Mod(c[:n], prod, mod, stack[2*n:])
	SetZero(prod)
}

// SqrModDeep returns the workspace size of SqrMod.
func SqrModDeep(n int) int {
	return MulModDeep(n)
}

// SqrMod sets b = a^2 mod m.
func SqrMod(b, a, mod []Word, stack []Word) {
	n := len(mod)
	stack = need(stack, SqrModDeep(n))
	prod := stack[:2*n]

	Sqr(prod, a[:n])
	Mod(b[:n], prod, mod, stack[2*n:])
	SetZero(prod)
}
