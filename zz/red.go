package zz

import (
	"math/bits"

	"github.com/bee2-go/bee2/helper/word"
)

// Reductions take a 2n-word value a and leave a mod m in a[:n]; the upper
// half of a is zeroed.

// RedDeep returns the workspace size of Red.
func RedDeep(n int) int {
	return n + ModDeep(2*n, n)
}

// Red reduces a modulo m by long division.
func Red(a, mod []Word, stack []Word) {
	n := len(mod)
	stack = need(stack, RedDeep(n))
	r := stack[:n]

	Mod(r, a[:2*n], mod, stack[n:])
	copy(a[:n], r)
	SetZero(a[n : 2*n])
	SetZero(r)
}

// IsCrandallModulus reports whether m = B^n - c with n >= 2 and 0 < c < B,
// that is, whether all words of m above the lowest are B - 1.
func IsCrandallModulus(mod []Word) bool {
	if len(mod) < 2 || mod[0] == 0 {
		return false
	}

	for _, w := range mod[1:] {
		if w != word.Max {
			return false
		}
	}

	return true
}

// RedCrandDeep returns the workspace size of RedCrand.
func RedCrandDeep(n int) int {
	return 0
}

// RedCrand reduces a modulo a Crandall modulus m = B^n - c by folding the
// upper half twice.
func RedCrand(a, mod []Word, stack []Word) {
	n := len(mod)
	c := -mod[0]

	// a = a_lo + a_hi * c
	w := AddMulW(a[:n], a[n:2*n], c)

	// fold the carry: w * c < B^2
	hi, lo := bits.Mul64(w, c)
	carry := AddW2(a[:n], lo)
	carry += AddW2(a[1:n], hi)

	// a third fold cannot carry again
	AddW2(a[:n], carry*c)

	subMasked(a[:n], mod, word.Mask(Less(a[:n], mod)^1))
	SetZero(a[n : 2*n])
}

// BarrettDeep returns the size, in words, of the Barrett parameter for an
// n-word modulus.
func BarrettDeep(n int) int {
	return n + 2
}

// RedBarrettStartDeep returns the workspace size of RedBarrettStart.
func RedBarrettStartDeep(n int) int {
	return 2*n + 1 + n + 2 + n + DivDeep(2*n+1, n)
}

// RedBarrettStart computes the Barrett parameter floor(B^{2n} / m) into
// barr, which holds n+2 words.
func RedBarrettStart(barr, mod []Word, stack []Word) {
	n := len(mod)
	stack = need(stack, RedBarrettStartDeep(n))
	num := stack[:2*n+1]
	q := stack[2*n+1 : 3*n+3]
	r := stack[3*n+3 : 4*n+3]

	SetZero(num)
	num[2*n] = 1
	Div(q, r, num, mod, stack[4*n+3:])
	copy(barr[:n+2], q)
	SetZero(stack[:4*n+3])
}

// RedBarrettDeep returns the workspace size of RedBarrett.
func RedBarrettDeep(n int) int {
	return (2*n + 3) + (2*n + 2)
}

// RedBarrett reduces a modulo m using the parameter barr produced by
// RedBarrettStart.
func RedBarrett(a, mod, barr []Word, stack []Word) {
	n := len(mod)
	stack = need(stack, RedBarrettDeep(n))
	q2 := stack[:2*n+3]
	r2 := stack[2*n+3 : 4*n+5]

	// q3 = floor(floor(a / B^{n-1}) * barr / B^{n+1})
	Mul(q2, a[n-1:2*n], barr[:n+2])
	q3 := q2[n+1 : 2*n+3]

	// r = (a - q3 * m) mod B^{n+1}
	Mul(r2[:2*n+2], q3[:n+1], mod)
	Sub(a[:n+1], a[:n+1], r2[:n+1])

	// at most two corrections
	for i := 0; i < 2; i++ {
		ge := Less(a[:n], mod) ^ 1
		ge |= word.Neq(a[n], 0)
		borrow := subMasked(a[:n], mod, word.Mask(ge))
		a[n] -= borrow & ge
	}

	SetZero(a[n : 2*n])
	SetZero(stack[:4*n+5])
}

// MontParam returns -m^{-1} mod B for an odd modulus.
func MontParam(mod []Word) Word {
	return word.NegInv(mod[0])
}

// RedMontDeep returns the workspace size of RedMont.
func RedMontDeep(n int) int {
	return 0
}

// RedMont sets a[:n] = a R^{-1} mod m, R = B^n, for odd m and a < m R.
// m0 is MontParam(m).
func RedMont(a, mod []Word, m0 Word, stack []Word) {
	n := len(mod)

	var carry Word

	for i := 0; i < n; i++ {
		t := a[i] * m0
		c := AddMulW(a[i:i+n], mod, t)
		a[i+n], carry = addWW(a[i+n], c, carry)
	}

	// result is a[n:2n] + carry B^n < 2m
	borrow := Sub(a[:n], a[n:2*n], mod)
	keep := word.Mask(borrow &^ carry)
	selectInto(a[:n], a[n:2*n], a[:n], keep)
	SetZero(a[n : 2*n])
}

// RedCrandMontDeep returns the workspace size of RedCrandMont.
func RedCrandMontDeep(n int) int {
	return 0
}

// CrandMontParam returns c^{-1} mod B for a Crandall modulus m = B^n - c
// with odd c.
func CrandMontParam(mod []Word) Word {
	return -word.NegInv(-mod[0])
}

// RedCrandMont is RedMont specialized to a Crandall modulus m = B^n - c:
// adding t*m is adding t*B^n and subtracting t*c. m0 is CrandMontParam(m).
func RedCrandMont(a, mod []Word, m0 Word, stack []Word) {
	n := len(mod)
	c := -mod[0]

	var top Word

	for i := 0; i < n; i++ {
		t := a[i] * m0
		hi, lo := bits.Mul64(t, c)
		top += AddW2(a[i+n:2*n], t)
		top -= SubW2(a[i:2*n], lo)
		top -= SubW2(a[i+1:2*n], hi)
	}

	borrow := Sub(a[:n], a[n:2*n], mod)
	keep := word.Mask(borrow &^ top)
	selectInto(a[:n], a[n:2*n], a[:n], keep)
	SetZero(a[n : 2*n])
}
