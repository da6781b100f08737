package zz

// SqrtDeep returns the workspace size of Sqrt.
func SqrtDeep(n int) int {
	l := (n+1)/2 + 1

	return l + 2*(n+1) + n + 2*l + DivDeep(n, l)
}

// Sqrt sets b = floor(sqrt(a)) and reports whether a is a perfect square.
// b holds ceil(len(a)/2) words. Runs in variable time.
func Sqrt(b, a []Word, stack []Word) bool {
	n := len(a)
	l := (n+1)/2 + 1
	stack = need(stack, SqrtDeep(n))
	x := stack[:l]
	y := stack[l : l+n+1]
	q := stack[l+n+1 : l+2*(n+1)]
	r := stack[l+2*(n+1) : l+2*(n+1)+n]
	sq := stack[l+2*(n+1)+n : 3*l+2*(n+1)+n]
	rest := stack[3*l+2*(n+1)+n:]

	defer SetZero(stack[:3*l+2*(n+1)+n])

	SetZero(b[:l-1])

	if IsZeroFast(a) {
		return true
	}

	// x0 = 2^ceil(bitlen/2) >= sqrt(a)
	SetZero(x)
	SetBit(x, (BitSize(a)+1)/2, 1)

	for {
		// y = (x + a / x) / 2
		divTrim(q[:n], r, a, x, rest)
		q[n] = 0
		SetZero(y)
		copy(y, q)
		y[n] = Add3(y[:n], y[:n], x[:minInt(l, n)])
		ShLo(y, 1)

		if Cmp2(y, x) >= 0 {
			break
		}

		SetZero(x)
		copy(x, y[:l])
	}

	copy(b[:l-1], x[:l-1])
	Sqr(sq, x)

	return Cmp2(sq, a) == 0
}
