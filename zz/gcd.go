package zz

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

// divTrim divides numbers of arbitrary lengths: q and r are zeroed and
// receive a / b and a mod b. b must be non-zero.
func divTrim(q, r, a, b []Word, stack []Word) {
	wa, wb := WordSize(a), WordSize(b)

	SetZero(q)
	SetZero(r)

	if wa < wb {
		copy(r, a[:wa])
		return
	}

	Div(q[:wa-wb+1], r[:wb], a[:wa], b[:wb], stack)
}

// setTrunc copies as many words of a as fit into b and zeroes the rest.
func setTrunc(b, a []Word) {
	SetZero(b)
	copy(b, a[:minInt(len(a), len(b))])
}

// GCDDeep returns the workspace size of GCD.
func GCDDeep(n, m int) int {
	return 2 * maxInt(n, m)
}

// GCD sets d = gcd(a, b) by the binary method. d receives min(len(a),
// len(b)) words. Runs in variable time.
func GCD(d, a, b []Word, stack []Word) {
	l := maxInt(len(a), len(b))
	stack = need(stack, GCDDeep(len(a), len(b)))
	u, v := stack[:l], stack[l:2*l]
	setTrunc(u, a)
	setTrunc(v, b)

	switch {
	case IsZeroFast(u):
		setTrunc(d, v)
		return
	case IsZeroFast(v):
		setTrunc(d, u)
		return
	}

	s := minInt(TrailingZeros(u), TrailingZeros(v))
	ShLo(u, TrailingZeros(u))

	for !IsZeroFast(v) {
		ShLo(v, TrailingZeros(v))

		if CmpFast(u, v) > 0 {
			u, v = v, u
		}

		Sub(v, v, u)
	}

	ShHi(u, s)
	setTrunc(d, u)
	SetZero(stack[:2*l])
}

// IsCoprime reports whether gcd(a, b) == 1.
func IsCoprime(a, b []Word, stack []Word) bool {
	d := make([]Word, maxInt(1, minInt(len(a), len(b))))
	GCD(d, a, b, stack)

	return IsW(d, 1)
}

// LCMDeep returns the workspace size of LCM.
func LCMDeep(n, m int) int {
	return maxInt(GCDDeep(n, m), DivDeep(n+m, minInt(n, m))) + 3*(n+m)
}

// LCM sets d = lcm(a, b) for non-zero a and b; d holds len(a)+len(b) words.
func LCM(d, a, b []Word, stack []Word) {
	n, m := len(a), len(b)
	stack = need(stack, LCMDeep(n, m))
	g, prod, q := stack[:n+m], stack[n+m:2*(n+m)], stack[2*(n+m):3*(n+m)]
	rest := stack[3*(n+m):]

	SetZero(g)
	GCD(g[:minInt(n, m)], a, b, rest)
	Mul(prod, a, b)
	divTrim(q, d[:n+m], prod, g, rest)
	copy(d[:n+m], q)
}

// ExGCDDeep returns the workspace size of ExGCD.
func ExGCDDeep(n, m int) int {
	l := maxInt(n, m) + 1

	return 12*l + DivDeep(l, l)
}

// ExGCD computes d = gcd(a, b) together with da < b/d and db < a/d such
// that (-1)^sign * (da*a - db*b) = d. Both a and b must be non-zero.
// d receives min(len(a), len(b)) words, da len(b) words and db len(a)
// words. Runs in variable time.
func ExGCD(d, da, db, a, b []Word, stack []Word) (sign int) {
	l := maxInt(len(a), len(b)) + 1
	stack = need(stack, ExGCDDeep(len(a), len(b)))

	buf := stack[:12*l]
	rest := stack[12*l:]
	SetZero(buf)

	r0, r1, r2 := buf[0:l], buf[l:2*l], buf[2*l:3*l]
	s0, s1, s2 := buf[3*l:4*l], buf[4*l:5*l], buf[5*l:6*l]
	t0, t1, t2 := buf[6*l:7*l], buf[7*l:8*l], buf[8*l:9*l]
	q, prod := buf[9*l:10*l], buf[10*l:12*l]

	copy(r0, a)
	copy(r1, b)
	s0[0], t1[0] = 1, 1

	// s and t alternate in sign so only magnitudes are tracked:
	// |s_{k+1}| = |s_{k-1}| + q_k |s_k|
	k := 0
	for !IsZeroFast(r1) {
		divTrim(q, r2, r0, r1, rest)

		wq := WordSize(q)

		Mul(prod[:wq+l], q[:wq], s1)
		Add(s2, s0, prod[:l])
		Mul(prod[:wq+l], q[:wq], t1)
		Add(t2, t0, prod[:l])

		r0, r1, r2 = r1, r2, r0
		s0, s1, s2 = s1, s2, s0
		t0, t1, t2 = t1, t2, t0
		k++
	}

	setTrunc(d, r0)
	setTrunc(da, s0)
	setTrunc(db, t0)
	SetZero(buf)

	return k & 1
}

// JacobiDeep returns the workspace size of Jacobi.
func JacobiDeep(n, m int) int {
	l := maxInt(n, m)

	return 4*l + DivDeep(l, l)
}

// Jacobi returns the Jacobi symbol (a/b) for odd b. Runs in variable time.
func Jacobi(a, b []Word, stack []Word) int {
	l := maxInt(len(a), len(b))
	stack = need(stack, JacobiDeep(len(a), len(b)))
	u, v, r, q := stack[:l], stack[l:2*l], stack[2*l:3*l], stack[3*l:4*l]
	rest := stack[4*l:]

	setTrunc(v, b)
	SetZero(u)
	divTrim(q, u, a, v, rest)

	t := 1

	for !IsZeroFast(u) {
		for IsEven(u) {
			ShLo(u, 1)

			if r := v[0] & 7; r == 3 || r == 5 {
				t = -t
			}
		}

		u, v = v, u

		if u[0]&3 == 3 && v[0]&3 == 3 {
			t = -t
		}

		divTrim(q, r, u, v, rest)
		u, r = r, u
	}

	if !IsW(v, 1) {
		t = 0
	}

	SetZero(stack[:4*l])

	return t
}

// AlmostInvModDeep returns the workspace size of AlmostInvMod.
func AlmostInvModDeep(n int) int {
	return 4 * (n + 1)
}

// AlmostInvMod sets b = a^{-1} 2^k mod m for an odd modulus m and
// 0 < a < m with gcd(a, m) = 1, and returns k, bitlen(m) <= k <=
// 2 bitlen(m). Runs in variable time.
func AlmostInvMod(b, a, mod []Word, stack []Word) int {
	n := len(mod)
	stack = need(stack, AlmostInvModDeep(n))
	u, v := stack[:n+1], stack[n+1:2*(n+1)]
	r, s := stack[2*(n+1):3*(n+1)], stack[3*(n+1):4*(n+1)]

	setTrunc(u, mod)
	setTrunc(v, a)
	SetZero(r)
	SetW(s, 1)

	k := 0

	for !IsZeroFast(v) {
		switch {
		case IsEven(u):
			ShLo(u, 1)
			ShHi(s, 1)
		case IsEven(v):
			ShLo(v, 1)
			ShHi(r, 1)
		case CmpFast(u, v) > 0:
			Sub(u, u, v)
			ShLo(u, 1)
			Add(r, r, s)
			ShHi(s, 1)
		default:
			Sub(v, v, u)
			ShLo(v, 1)
			Add(s, s, r)
			ShHi(r, 1)
		}
		k++
	}

	// r < 2m
	mod1 := stack[:n+1]
	setTrunc(mod1, mod)

	if CmpFast(r, mod1) >= 0 {
		Sub(r, r, mod1)
	}

	Sub(r, mod1, r)
	copy(b[:n], r[:n])
	SetZero(stack[:4*(n+1)])

	return k
}

// InvModDeep returns the workspace size of InvMod.
func InvModDeep(n int) int {
	return 2*n + ModDeep(n, n) + ExGCDDeep(n, n)
}

// InvMod sets b = a^{-1} mod m and reports whether the inverse exists.
// len(a) == len(mod) and m has a non-zero top word.
func InvMod(b, a, mod []Word, stack []Word) bool {
	n := len(mod)
	stack = need(stack, InvModDeep(n))
	ar, d := stack[:n], stack[n:2*n]
	rest := stack[2*n:]

	Mod(ar, a, mod, rest)

	if IsZeroFast(ar) {
		SetZero(b[:n])
		return IsW(mod, 1)
	}

	da := make([]Word, n)
	db := make([]Word, n)
	sign := ExGCD(d, da, db, ar, mod, rest)

	if !IsW(d, 1) {
		SetZero(b[:n])
		return false
	}

	if sign == 0 {
		copy(b[:n], da)
	} else {
		Sub(b[:n], mod, da)
	}

	SetZero(stack[:2*n])

	return true
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
	SetZero(inv)

	return true
}
