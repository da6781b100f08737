package zz

import (
	"math/bits"

	"github.com/bee2-go/bee2/helper/word"
)

// DivW sets q = a / w and returns a mod w; w != 0.
func DivW(q, a []Word, w Word) Word {
	var r Word

	for i := len(a) - 1; i >= 0; i-- {
		q[i], r = bits.Div64(r, a[i], w)
	}

	return r
}

// ModW returns a mod w; w != 0.
func ModW(a []Word, w Word) Word {
	var r Word

	for i := len(a) - 1; i >= 0; i-- {
		_, r = bits.Div64(r, a[i], w)
	}

	return r
}

// ModW2 returns a mod w for a half-word modulus 0 < w < 2^32 without
// double-word division. B mod w is folded into a running remainder.
func ModW2(a []Word, w Word) Word {
	// b = B mod w
	b := (word.Max%w + 1) % w

	var r Word

	for i := len(a) - 1; i >= 0; i-- {
		// r*B + a[i] with r, b < w < 2^32
		r = (r*b%w + a[i]%w) % w
	}

	return r
}

// DivDeep returns the workspace size of Div for an n-word dividend and an
// m-word divisor.
func DivDeep(n, m int) int {
	return n + 1 + m
}

// ModDeep returns the workspace size of Mod.
func ModDeep(n, m int) int {
	return DivDeep(n, m) + n - m + 1
}

// Div computes q = a / b and r = a mod b. The divisor b must have a
// non-zero top word and len(a) >= len(b). The quotient holds
// len(a)-len(b)+1 words and the remainder len(b) words. q and r must not
// overlap the inputs.
func Div(q, r, a, b []Word, stack []Word) {
	n, m := len(a), len(b)

	if m == 1 {
		r[0] = DivW(q[:n], a, b[0])
		return
	}

	if WordSize(a) <= m && CmpFast(a[:m], b) < 0 {
		SetZero(q[:n-m+1])
		copy(r[:m], a[:m])

		return
	}

	stack = need(stack, DivDeep(n, m))
	u, v := stack[:n+1], stack[n+1:n+1+m]

	// normalize so that the top bit of the divisor is set
	shift := uint(word.CLZ(b[m-1]))
	shlInto(v, b, shift)
	u[n] = shlInto(u[:n], a, shift)

	vn1, vn2 := v[m-1], v[m-2]

	for j := n - m; j >= 0; j-- {
		qhat := word.Max

		if ujn := u[j+m]; ujn != vn1 {
			var rhat Word

			qhat, rhat = bits.Div64(ujn, u[j+m-1], vn1)

			// refine qhat with the next divisor word
			x1, x2 := bits.Mul64(qhat, vn2)
			for x1 > rhat || (x1 == rhat && x2 > u[j+m-2]) {
				qhat--

				prev := rhat
				rhat += vn1

				if rhat < prev {
					break
				}

				x1, x2 = bits.Mul64(qhat, vn2)
			}
		}

		borrow := SubMulW(u[j:j+m], v, qhat)

		var c Word
		if u[j+m], c = subWW(u[j+m], borrow, 0); c != 0 {
			u[j+m] += Add2(u[j:j+m], v)
			qhat--
		}

		q[j] = qhat
	}

	shrInto(r[:m], u[:m], shift)
	SetZero(u)
}

// Mod sets r = a mod b under the preconditions of Div.
func Mod(r, a, b []Word, stack []Word) {
	n, m := len(a), len(b)
	stack = need(stack, ModDeep(n, m))
	Div(stack[:n-m+1], r, a, b, stack[n-m+1:])
}
