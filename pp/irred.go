package pp

import (
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/zz"
)

// IsIrredDeep returns the workspace size of IsIrred.
func IsIrredDeep(n int) int {
	return 5*n + maxInt(DivDeep(2*n, n), GCDDeep(n, n))
}

// IsIrred reports whether a is irreducible over GF(2) using Ben-Or's
// test: gcd(a, x^(2^i) - x) = 1 for all i <= deg(a)/2. Polynomials of
// degree at most 1 are reported as reducible.
func IsIrred(a []Word, stack []Word) bool {
	d := Deg(a)
	if d <= 1 {
		return false
	}

	n := zz.WordSize(a)
	a = a[:n]
	stack = need(stack, IsIrredDeep(n))
	h, sq, g := stack[:n], stack[n:3*n], stack[3*n:4*n]
	hx := stack[4*n : 5*n]
	rest := stack[5*n:]

	defer zz.SetZero(stack[:5*n])

	zz.SetZero(h)
	h[0] = 2

	for i := 1; i <= d/2; i++ {
		Sqr(sq, h)
		Mod(h, sq, a, rest)

		copy(hx, h)
		hx[0] ^= 2

		GCD(g, a, hx, rest)

		if !zz.IsW(g, 1) {
			return false
		}
	}

	return true
}

// MinPoly returns the linear complexity L of the binary sequence formed by
// the first l bits of a, and sets b to its minimal polynomial
// x^L + m_{L-1} x^{L-1} + ... + m_0, the smallest-degree polynomial with
// sum m_j s_{i+j} = 0 for all valid i. b holds ceil((l+1)/64) words. The
// Berlekamp-Massey algorithm runs in variable time.
func MinPoly(b, a []Word, l int, stack []Word) int {
	n := word.OfB(l + 2)
	stack = need(stack, 3*n)
	c, bb, t := stack[:n], stack[n:2*n], stack[2*n:3*n]

	zz.SetZero(stack[:3*n])
	c[0], bb[0] = 1, 1

	deg, m := 0, 1

	for i := 0; i < l; i++ {
		d := zz.TestBit(a, i)
		for j := 1; j <= deg; j++ {
			d ^= zz.TestBit(c, j) & zz.TestBit(a, i-j)
		}

		switch {
		case d == 0:
			m++
		case 2*deg <= i:
			copy(t, c)
			xorShifted(c, bb, m, word.Max)
			deg = i + 1 - deg
			copy(bb, t)
			m = 1
		default:
			xorShifted(c, bb, m, word.Max)
			m++
		}
	}

	// reverse the connection polynomial
	zz.SetZero(b[:word.OfB(l+1)])

	for j := 0; j <= deg; j++ {
		zz.SetBit(b, deg-j, zz.TestBit(c, j))
	}

	zz.SetZero(stack[:3*n])

	return deg
}

// MinPolyModDeep returns the workspace size of MinPolyMod.
func MinPolyModDeep(n, m int) int {
	return 2*n + word.OfB(2*m) + maxInt(MulModDeep(n), 3*word.OfB(2*m+2))
}

// MinPolyMod sets b to the minimal polynomial of a in GF(2)[x]/(mod),
// computed from the constant terms of the powers a^0, ..., a^(2m-1),
// m = deg(mod). For an irreducible modulus and a != 0 the result is the
// minimal polynomial of a. b holds ceil((2m+1)/64) words.
func MinPolyMod(b, a, mod []Word, stack []Word) int {
	n := len(mod)
	m := Deg(mod)
	stack = need(stack, MinPolyModDeep(n, m))
	p, ar := stack[:n], stack[n:2*n]
	seq := stack[2*n : 2*n+word.OfB(2*m)]
	rest := stack[2*n+word.OfB(2*m):]

	modTrim(nil, ar, a, mod, rest)
	zz.SetZero(p)
	p[0] = 1
	zz.SetZero(seq)

	for i := 0; i < 2*m; i++ {
		zz.SetBit(seq, i, p[0]&1)
		MulMod(p, p, ar, mod, rest)
	}

	deg := MinPoly(b, seq, 2*m, rest)
	zz.SetZero(stack[:2*n+word.OfB(2*m)])

	return deg
}
