package pp

import (
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/zz"
)

// xorShifted sets a ^= (b << shift) & mask, dropping bits past len(a).
func xorShifted(a, b []Word, shift int, mask Word) {
	ws, bs := shift/word.B, uint(shift%word.B)

	for i := range b {
		j := i + ws
		if j >= len(a) {
			break
		}

		a[j] ^= (b[i] << bs) & mask

		if bs != 0 && j+1 < len(a) {
			a[j+1] ^= (b[i] >> (word.B - bs)) & mask
		}
	}
}

// DivDeep returns the workspace size of Div.
func DivDeep(n, m int) int {
	return n
}

// Div computes q = a / b and r = a mod b for a non-zero b. q holds
// len(a)-len(b)+1 words and r len(b) words. The loop length depends only
// on the degrees of the operands, not on the coefficients of a.
func Div(q, r, a, b []Word, stack []Word) {
	n, m := len(a), len(b)
	db := Deg(b)
	stack = need(stack, DivDeep(n, m))
	t := stack[:n]

	copy(t, a)

	if q != nil {
		zz.SetZero(q[:n-m+1])
	}

	for i := n*word.B - 1; i >= db; i-- {
		bit := zz.TestBit(t, i)
		xorShifted(t, b, i-db, -bit)

		if q != nil && i-db < len(q)*word.B {
			zz.SetBit(q, i-db, bit)
		}
	}

	zz.SetZero(r[:m])
	copy(r[:m], t[:m])
	zz.SetZero(t)
}

// Mod sets r = a mod b.
func Mod(r, a, b []Word, stack []Word) {
	Div(nil, r, a, b, stack)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// GCDDeep returns the workspace size of GCD.
func GCDDeep(n, m int) int {
	l := maxInt(n, m)

	return 3*l + DivDeep(l, l)
}

// modTrim sets r = a mod b for polynomials of arbitrary lengths stored in
// l-word buffers.
func modTrim(q, r, a, b []Word, stack []Word) {
	wa, wb := zz.WordSize(a), zz.WordSize(b)

	zz.SetZero(r)

	if q != nil {
		zz.SetZero(q)
	}

	if wa < wb {
		copy(r, a[:wa])
		return
	}

	var qq []Word
	if q != nil {
		qq = q[:wa-wb+1]
	}

	Div(qq, r[:wb], a[:wa], b[:wb], stack)
}

// GCD sets d = gcd(a, b); at least one of a and b is non-zero. d holds
// max(len(a), len(b)) words.
func GCD(d, a, b []Word, stack []Word) {
	l := maxInt(len(a), len(b))
	stack = need(stack, GCDDeep(len(a), len(b)))
	u, v, r := stack[:l], stack[l:2*l], stack[2*l:3*l]
	rest := stack[3*l:]

	zz.SetZero(u)
	zz.SetZero(v)
	copy(u, a)
	copy(v, b)

	for !zz.IsZeroFast(v) {
		modTrim(nil, r, u, v, rest)
		u, v, r = v, r, u
	}

	zz.SetZero(d[:l])
	copy(d, u)
	zz.SetZero(stack[:3*l])
}

// ExGCDDeep returns the workspace size of ExGCD.
func ExGCDDeep(n, m int) int {
	l := maxInt(n, m)

	return 12*l + DivDeep(l, l) + MulDeep(l, l)
}

// ExGCD computes d = gcd(a, b) and da, db with da*a + db*b = d, where
// deg(da) < deg(b) and deg(db) < deg(a). d holds max(len(a), len(b))
// words, da len(b) words and db len(a) words.
func ExGCD(d, da, db, a, b []Word, stack []Word) {
	l := maxInt(len(a), len(b))
	stack = need(stack, ExGCDDeep(len(a), len(b)))
	buf := stack[:12*l]
	rest := stack[12*l:]
	zz.SetZero(buf)

	r0, r1, r2 := buf[:l], buf[l:2*l], buf[2*l:3*l]
	s0, s1, s2 := buf[3*l:4*l], buf[4*l:5*l], buf[5*l:6*l]
	t0, t1, t2 := buf[6*l:7*l], buf[7*l:8*l], buf[8*l:9*l]
	q, prod := buf[9*l:10*l], buf[10*l:12*l]

	copy(r0, a)
	copy(r1, b)
	s0[0], t1[0] = 1, 1

	for !zz.IsZeroFast(r1) {
		modTrim(q, r2, r0, r1, rest)

		mulSchool(prod, q, s1)
		Add(s2, s0, prod[:l])
		mulSchool(prod, q, t1)
		Add(t2, t0, prod[:l])

		r0, r1, r2 = r1, r2, r0
		s0, s1, s2 = s1, s2, s0
		t0, t1, t2 = t1, t2, t0
	}

	zz.SetZero(d[:l])
	copy(d, r0)
	zz.SetZero(da)
	copy(da, s0)
	zz.SetZero(db)
	copy(db, t0)
	zz.SetZero(buf)
}

// InvModDeep returns the workspace size of InvMod.
func InvModDeep(n int) int {
	return 4*n + DivDeep(n, n) + ExGCDDeep(n, n)
}

// InvMod sets b = a^{-1} mod m and reports whether the inverse exists.
func InvMod(b, a, mod []Word, stack []Word) bool {
	n := len(mod)
	stack = need(stack, InvModDeep(n))
	ar, d, da, db := stack[:n], stack[n:2*n], stack[2*n:3*n], stack[3*n:4*n]
	rest := stack[4*n:]

	modTrim(nil, ar, a, mod, rest)
	ExGCD(d, da, db, ar, mod, rest)

	ok := zz.IsW(d, 1)
	if ok {
		copy(b[:n], da)
	} else {
		zz.SetZero(b[:n])
	}

	zz.SetZero(stack[:4*n])

	return ok
}

// MulModDeep returns the workspace size of MulMod.
func MulModDeep(n int) int {
	return 2*n + maxInt(MulDeep(n, n), DivDeep(2*n, n))
}

// MulMod sets c = a * b mod m.
func MulMod(c, a, b, mod []Word, stack []Word) {
	n := len(mod)
	stack = need(stack, MulModDeep(n))
	prod := stack[:2*n]

	Mul(prod, a[:n], b[:n], stack[2*n:])
	Mod(c[:n], prod, mod, stack[2*n:])
	zz.SetZero(prod)
}

// DivModDeep returns the workspace size of DivMod.
func DivModDeep(n int) int {
	return n + maxInt(InvModDeep(n), MulModDeep(n))
}

// DivMod sets b = divident / a mod m and reports whether a is invertible.
func DivMod(b, divident, a, mod []Word, stack []Word) bool {
	n := len(mod)
	stack = need(stack, DivModDeep(n))
	inv := stack[:n]

	if !InvMod(inv, a, mod, stack[n:]) {
		return false
	}

	MulMod(b, divident, inv, mod, stack[n:])
	zz.SetZero(inv)

	return true
}
