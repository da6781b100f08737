package ecp

import (
	"github.com/bee2-go/bee2/ec"
	"github.com/bee2-go/bee2/zz"
)

// dbl doubles (x, y, z); z == nil stands for Z = 1.
//
//	S = 4XY^2, M = 3X^2 + AZ^4, X3 = M^2 - 2S,
//	Y3 = M(S - X3) - 8Y^4, Z3 = 2YZ.
func (c *Curve) dbl(b, x, y, z []Word, fr *frame) {
	n := c.n()
	f, rest := c.f, fr.rest
	yy, s, m, x3, t := fr.t(0), fr.t(1), fr.t(2), fr.t(3), fr.t(4)

	f.Sqr(yy, y, rest)
	f.Mul(s, x, yy, rest)
	f.Double(s, s)
	f.Double(s, s)

	switch {
	case z == nil:
		// M = 3X^2 + A
		f.Sqr(m, x, rest)
		f.Double(t, m)
		f.Add(m, m, t, rest)
		f.Add(m, m, c.a, rest)
	case c.aKind == aMinus3:
		// M = 3(X - Z^2)(X + Z^2)
		f.Sqr(t, z, rest)
		f.Sub(m, x, t, rest)
		f.Add(t, x, t, rest)
		f.Mul(m, m, t, rest)
		f.Double(t, m)
		f.Add(m, m, t, rest)
	default:
		f.Sqr(m, x, rest)
		f.Double(t, m)
		f.Add(m, m, t, rest)

		if c.aKind != aZero {
			f.Sqr(t, z, rest)
			f.Sqr(t, t, rest)
			f.Mul(t, t, c.a, rest)
			f.Add(m, m, t, rest)
		}
	}

	// X3 = M^2 - 2S
	f.Sqr(x3, m, rest)
	f.Double(t, s)
	f.Sub(x3, x3, t, rest)

	// Z3 = 2YZ
	if z == nil {
		f.Double(b[2*n:3*n], y)
	} else {
		f.Mul(t, y, z, rest)
		f.Double(b[2*n:3*n], t)
	}

	// Y3 = M(S - X3) - 8Y^4
	f.Sub(s, s, x3, rest)
	f.Mul(s, s, m, rest)
	f.Sqr(yy, yy, rest)
	f.Double(yy, yy)
	f.Double(yy, yy)
	f.Double(yy, yy)
	f.Sub(b[n:2*n], s, yy, rest)
	copy(b[:n], x3)
}

// Dbl implements ec.Curve (Jacobian doubling).
func (c *Curve) Dbl(b, a []Word, stack []Word) {
	n := c.n()
	fr := c.frame(stack)
	defer fr.wipe()

	c.dbl(b, a[:n], a[n:2*n], a[2*n:3*n], fr)
}

// DblA implements ec.Curve.
func (c *Curve) DblA(b, a []Word, stack []Word) {
	n := c.n()
	fr := c.frame(stack)
	defer fr.wipe()

	c.dbl(b, a[:n], a[n:2*n], nil, fr)
}

// add finishes an addition from U1, S1, H = U2 - U1, R = S2 - S1 and
// Z1 Z2 (zz12). It returns false when H = 0.
//
//	X3 = R^2 - H^3 - 2 U1 H^2, Y3 = R(U1 H^2 - X3) - S1 H^3, Z3 = Z1 Z2 H.
func (c *Curve) add(b, u1, s1, h, r, z12 []Word, fr *frame) bool {
	n := c.n()
	f, rest := c.f, fr.rest

	if zz.IsZeroFast(h) {
		return false
	}

	hh, hhh, v, x3, t := fr.t(6), fr.t(7), fr.t(8), fr.t(9), fr.t(10)

	f.Sqr(hh, h, rest)
	f.Mul(hhh, hh, h, rest)
	f.Mul(v, u1, hh, rest)

	f.Sqr(x3, r, rest)
	f.Sub(x3, x3, hhh, rest)
	f.Double(t, v)
	f.Sub(x3, x3, t, rest)

	f.Sub(v, v, x3, rest)
	f.Mul(v, v, r, rest)
	f.Mul(t, s1, hhh, rest)
	f.Sub(b[n:2*n], v, t, rest)

	if z12 == nil {
		copy(b[2*n:3*n], h)
	} else {
		f.Mul(b[2*n:3*n], z12, h, rest)
	}

	copy(b[:n], x3)

	return true
}

// Add implements ec.Curve.
func (c *Curve) Add(r, a, b []Word, stack []Word) {
	n := c.n()

	switch {
	case ec.IsO(c, a):
		copy(r[:3*n], b[:3*n])
		return
	case ec.IsO(c, b):
		copy(r[:3*n], a[:3*n])
		return
	}

	fr := c.frame(stack)
	defer fr.wipe()

	f, rest := c.f, fr.rest
	u1, s1, h, rr, z12, t := fr.t(0), fr.t(1), fr.t(2), fr.t(3), fr.t(4), fr.t(5)
	x1, y1, z1 := a[:n], a[n:2*n], a[2*n:3*n]
	x2, y2, z2 := b[:n], b[n:2*n], b[2*n:3*n]

	// U1 = X1 Z2^2, S1 = Y1 Z2^3
	f.Sqr(t, z2, rest)
	f.Mul(u1, x1, t, rest)
	f.Mul(t, t, z2, rest)
	f.Mul(s1, y1, t, rest)

	// H = X2 Z1^2 - U1, R = Y2 Z1^3 - S1
	f.Sqr(t, z1, rest)
	f.Mul(h, x2, t, rest)
	f.Sub(h, h, u1, rest)
	f.Mul(t, t, z1, rest)
	f.Mul(rr, y2, t, rest)
	f.Sub(rr, rr, s1, rest)

	f.Mul(z12, z1, z2, rest)

	if !c.add(r, u1, s1, h, rr, z12, fr) {
		c.coincide(r, a, rr)
	}
}

// AddA implements ec.Curve: Add with Z2 = 1.
func (c *Curve) AddA(r, a, b []Word, stack []Word) {
	n := c.n()

	if ec.IsO(c, a) {
		c.FromA(r, b, stack)
		return
	}

	fr := c.frame(stack)
	defer fr.wipe()

	f, rest := c.f, fr.rest
	u1, s1, h, rr, t := fr.t(0), fr.t(1), fr.t(2), fr.t(3), fr.t(5)
	x1, y1, z1 := a[:n], a[n:2*n], a[2*n:3*n]
	x2, y2 := b[:n], b[n:2*n]

	copy(u1, x1)
	copy(s1, y1)

	f.Sqr(t, z1, rest)
	f.Mul(h, x2, t, rest)
	f.Sub(h, h, u1, rest)
	f.Mul(t, t, z1, rest)
	f.Mul(rr, y2, t, rest)
	f.Sub(rr, rr, s1, rest)

	z12 := fr.t(4)
	copy(z12, z1)

	if !c.add(r, u1, s1, h, rr, z12, fr) {
		c.coincide(r, a, rr)
	}
}

func (c *Curve) coincide(r, a, rr []Word) {
	if zz.IsZeroFast(rr) {
		c.Dbl(r, a, nil)
		return
	}

	ec.SetO(c, r)
}

// Sub implements ec.Curve.
func (c *Curve) Sub(r, a, b []Word, stack []Word) {
	t := make([]Word, 3*c.n())
	c.Neg(t, b, stack)
	c.Add(r, a, t, stack)
	zz.SetZero(t)
}

// SubA implements ec.Curve.
func (c *Curve) SubA(r, a, b []Word, stack []Word) {
	t := make([]Word, 2*c.n())
	c.NegA(t, b, stack)
	c.AddA(r, a, t, stack)
	zz.SetZero(t)
}
