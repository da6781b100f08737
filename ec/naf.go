package ec

import (
	"github.com/bee2-go/bee2/zz"
)

// NAFWidth returns the NAF window width for a scalar of l bits.
func NAFWidth(l int) int {
	switch {
	case l < 40:
		return 3
	case l < 120:
		return 4
	case l < 336:
		return 5
	default:
		return 6
	}
}

// NAF returns the width-w non-adjacent form of d, least significant digit
// first. Non-zero digits are odd with absolute value below 2^(w-1), and
// any w consecutive digits contain at most one non-zero digit.
func NAF(d []Word, w int) []int8 {
	t := make([]Word, len(d)+1)
	copy(t, d)

	naf := make([]int8, 0, zz.BitSize(d)+1)
	mod := Word(1) << uint(w)
	half := mod >> 1

	for !zz.IsZeroFast(t) {
		var digit int8

		if zz.IsOdd(t) {
			z := t[0] & (mod - 1)
			if z >= half {
				digit = -int8(mod - z)
				zz.AddW2Fast(t, mod-z)
			} else {
				digit = int8(z)
				zz.SubW2Fast(t, z)
			}
		}

		naf = append(naf, digit)
		zz.ShLo(t, 1)
	}

	zz.SetZero(t)

	return naf
}

// tableSize returns the number of odd multiples kept for width w.
func tableSize(w int) int {
	return 1 << uint(w-2)
}

func nafOf(d []Word) (naf []int8, w int) {
	w = NAFWidth(zz.BitSize(d))
	if w < 2 {
		w = 2
	}

	return NAF(d, w), w
}

// precompute fills table with the odd multiples a, 3a, ..., of the affine
// point a in projective form.
func precompute(c Curve, table, a []Word, count int, stack []Word) {
	n3 := 3 * N(c)
	dbl := make([]Word, n3)

	c.FromA(table[:n3], a, stack)

	if count == 1 {
		return
	}

	c.DblA(dbl, a, stack)
	// first step mixed: 3a = 2a + a
	c.AddA(table[n3:2*n3], dbl, a, stack)

	for i := 2; i < count; i++ {
		c.Add(table[i*n3:(i+1)*n3], table[(i-1)*n3:i*n3], dbl, stack)
	}

	for i := range dbl {
		dbl[i] = 0
	}
}

func maxLen(nafs [][]int8) int {
	m := 0
	for _, naf := range nafs {
		if len(naf) > m {
			m = len(naf)
		}
	}

	return m
}
