package ec

import (
	"github.com/bee2-go/bee2/zz"
)

// MulADeep returns the workspace of MulA for curve c and a scalar of m
// words.
func MulADeep(c Curve, m int) int {
	n3 := 3 * N(c)
	w := NAFWidth(m * 64)

	return (tableSize(w)+1)*n3 + c.Deep()
}

// MulA sets b = d*a for an affine point a and reports false when the
// product is the point at infinity. The running time depends on d.
func MulA(b []Word, a []Word, c Curve, d []Word, stack []Word) bool {
	n := N(c)
	n3 := 3 * n

	naf, w := nafOf(d)
	count := tableSize(w)

	if size := (count+1)*n3 + c.Deep(); len(stack) < size {
		stack = make([]Word, size)
	}

	table := stack[:count*n3]
	acc := stack[count*n3 : (count+1)*n3]
	rest := stack[(count+1)*n3:]

	precompute(c, table, a, count, rest)
	SetO(c, acc)

	for i := len(naf) - 1; i >= 0; i-- {
		c.Dbl(acc, acc, rest)

		switch digit := int(naf[i]); {
		case digit > 0:
			c.Add(acc, acc, table[(digit>>1)*n3:((digit>>1)+1)*n3], rest)
		case digit < 0:
			c.Sub(acc, acc, table[((-digit)>>1)*n3:(((-digit)>>1)+1)*n3], rest)
		}
	}

	ok := c.ToA(b, acc, rest)
	zz.SetZero(stack[:(count+1)*n3])

	return ok
}

// AddMulADeep returns the workspace of AddMulA for k terms with scalars
// of at most m words.
func AddMulADeep(c Curve, k, m int) int {
	n3 := 3 * N(c)
	w := NAFWidth(m * 64)

	return (k*tableSize(w)+1)*n3 + c.Deep()
}

// AddMulA sets b = d[0]*a[0] + ... + d[k-1]*a[k-1] for affine points a[i]
// and reports false when the sum is the point at infinity. The NAFs of
// the scalars are interleaved so that doublings are shared.
func AddMulA(b []Word, c Curve, a [][]Word, d [][]Word, stack []Word) bool {
	if len(a) != len(d) {
		panic("ec: points and scalars mismatch")
	}

	n3 := 3 * N(c)
	k := len(a)

	nafs := make([][]int8, k)
	widths := make([]int, k)
	offsets := make([]int, k+1)

	for i := range d {
		nafs[i], widths[i] = nafOf(d[i])
		offsets[i+1] = offsets[i] + tableSize(widths[i])*n3
	}

	tables := offsets[k]
	if size := tables + n3 + c.Deep(); len(stack) < size {
		stack = make([]Word, size)
	}

	acc := stack[tables : tables+n3]
	rest := stack[tables+n3:]

	for i := range a {
		precompute(c, stack[offsets[i]:offsets[i+1]], a[i], tableSize(widths[i]), rest)
	}

	SetO(c, acc)

	for j := maxLen(nafs) - 1; j >= 0; j-- {
		c.Dbl(acc, acc, rest)

		for i, naf := range nafs {
			if j >= len(naf) || naf[j] == 0 {
				continue
			}

			digit := int(naf[j])
			table := stack[offsets[i]:offsets[i+1]]

			if digit > 0 {
				c.Add(acc, acc, table[(digit>>1)*n3:((digit>>1)+1)*n3], rest)
			} else {
				c.Sub(acc, acc, table[((-digit)>>1)*n3:(((-digit)>>1)+1)*n3], rest)
			}
		}
	}

	ok := c.ToA(b, acc, rest)
	zz.SetZero(stack[:tables+n3])

	return ok
}

// HasOrderA reports whether q*a is the point at infinity.
func HasOrderA(a []Word, c Curve, q []Word, stack []Word) bool {
	b := make([]Word, 2*N(c))

	return !MulA(b, a, c, q, stack)
}
