package ec2

import (
	"github.com/bee2-go/bee2/ec"
	"github.com/bee2-go/bee2/zz"
)

// Dbl implements ec.Curve (dbl-2005-l):
//
//	Z3 = X1^2 Z1^2, X3 = X1^4 + B Z1^4,
//	Y3 = B Z1^4 Z3 + X3 (A Z3 + Y1^2 + B Z1^4).
func (c *Curve) Dbl(b, a []Word, stack []Word) {
	n := c.n()
	fr := c.frame(stack)
	defer fr.wipe()

	f, rest := c.f, fr.rest
	xx, zz2, z3, bz4, x3, t := fr.t(0), fr.t(1), fr.t(2), fr.t(3), fr.t(4), fr.t(5)

	f.Sqr(xx, a[:n], rest)
	f.Sqr(zz2, a[2*n:3*n], rest)
	f.Mul(z3, xx, zz2, rest)
	f.Sqr(bz4, zz2, rest)
	f.Mul(bz4, bz4, c.b, rest)
	f.Sqr(x3, xx, rest)
	f.Add(x3, x3, bz4, rest)

	f.Sqr(t, a[n:2*n], rest)
	f.Add(t, t, bz4, rest)

	if c.aMode != 0 {
		c.mulA(xx, z3, rest)
		f.Add(t, t, xx, rest)
	}

	f.Mul(t, t, x3, rest)
	f.Mul(bz4, bz4, z3, rest)
	f.Add(b[n:2*n], t, bz4, rest)
	copy(b[:n], x3)
	copy(b[2*n:3*n], z3)
}

// DblA implements ec.Curve (mdbl-2005-dl): Dbl with Z1 = 1.
func (c *Curve) DblA(b, a []Word, stack []Word) {
	n := c.n()
	fr := c.frame(stack)
	defer fr.wipe()

	f, rest := c.f, fr.rest
	z3, x3, t := fr.t(0), fr.t(1), fr.t(2)

	f.Sqr(z3, a[:n], rest)
	f.Sqr(x3, z3, rest)
	f.Add(x3, x3, c.b, rest)

	f.Sqr(t, a[n:2*n], rest)
	f.Add(t, t, c.b, rest)

	if c.aMode != 0 {
		u := fr.t(3)
		c.mulA(u, z3, rest)
		f.Add(t, t, u, rest)
	}

	f.Mul(t, t, x3, rest)
	f.Mul(b[n:2*n], c.b, z3, rest)
	f.Add(b[n:2*n], b[n:2*n], t, rest)
	copy(b[:n], x3)
	copy(b[2*n:3*n], z3)
}

// add completes an addition once the projective differences are known:
// a1 = Y1 Z2^2, cc = a1 + Y2 Z1^2, b1 = X1 Z2, d = b1 + X2 Z1, e = Z1 Z2.
// It returns false when d = 0, i.e. when the summands have the same x.
func (c *Curve) add(r []Word, a1, cc, b1, d, e []Word, fr *frame) bool {
	n := c.n()
	f, rest := c.f, fr.rest

	if zz.IsZeroFast(d) {
		return false
	}

	ff, z3, dd, g, h, x3 := fr.t(5), fr.t(6), fr.t(7), fr.t(8), fr.t(9), fr.t(10)
	i, j := fr.t(11), fr.t(12)

	// F = D E, Z3 = F^2, G = D^2 (F + A E^2), H = C F
	f.Mul(ff, d, e, rest)
	f.Sqr(z3, ff, rest)
	f.Sqr(dd, d, rest)

	copy(g, ff)

	if c.aMode != 0 {
		f.Sqr(i, e, rest)
		c.mulA(i, i, rest)
		f.Add(g, g, i, rest)
	}

	f.Mul(g, g, dd, rest)
	f.Mul(h, cc, ff, rest)

	// X3 = C^2 + H + G
	f.Sqr(x3, cc, rest)
	f.Add(x3, x3, h, rest)
	f.Add(x3, x3, g, rest)

	// I = D^2 B1 E + X3, J = D^2 A1 + X3
	f.Mul(i, dd, b1, rest)
	f.Mul(i, i, e, rest)
	f.Add(i, i, x3, rest)
	f.Mul(j, dd, a1, rest)
	f.Add(j, j, x3, rest)

	// Y3 = H I + Z3 J
	f.Mul(i, h, i, rest)
	f.Mul(j, z3, j, rest)
	f.Add(r[n:2*n], i, j, rest)
	copy(r[:n], x3)
	copy(r[2*n:3*n], z3)

	return true
}

// Add implements ec.Curve (add-2005-dl).
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
	a1, cc, b1, d, e := fr.t(0), fr.t(1), fr.t(2), fr.t(3), fr.t(4)
	x1, y1, z1 := a[:n], a[n:2*n], a[2*n:3*n]
	x2, y2, z2 := b[:n], b[n:2*n], b[2*n:3*n]

	// A1 = Y1 Z2^2, C = A1 + Y2 Z1^2
	f.Sqr(e, z2, rest)
	f.Mul(a1, y1, e, rest)
	f.Sqr(e, z1, rest)
	f.Mul(cc, y2, e, rest)
	f.Add(cc, cc, a1, rest)

	// B1 = X1 Z2, D = B1 + X2 Z1, E = Z1 Z2
	f.Mul(b1, x1, z2, rest)
	f.Mul(d, x2, z1, rest)
	f.Add(d, d, b1, rest)
	f.Mul(e, z1, z2, rest)

	if !c.add(r, a1, cc, b1, d, e, fr) {
		c.coincide(r, a, cc, stack)
	}
}

// AddA implements ec.Curve (madd-2005-dl): Add with Z2 = 1.
func (c *Curve) AddA(r, a, b []Word, stack []Word) {
	n := c.n()

	if ec.IsO(c, a) {
		c.FromA(r, b, stack)
		return
	}

	fr := c.frame(stack)
	defer fr.wipe()

	f, rest := c.f, fr.rest
	a1, cc, b1, d, e := fr.t(0), fr.t(1), fr.t(2), fr.t(3), fr.t(4)
	x1, y1, z1 := a[:n], a[n:2*n], a[2*n:3*n]
	x2, y2 := b[:n], b[n:2*n]

	copy(a1, y1)
	f.Sqr(e, z1, rest)
	f.Mul(cc, y2, e, rest)
	f.Add(cc, cc, a1, rest)

	copy(b1, x1)
	f.Mul(d, x2, z1, rest)
	f.Add(d, d, b1, rest)
	copy(e, z1)

	if !c.add(r, a1, cc, b1, d, e, fr) {
		c.coincide(r, a, cc, stack)
	}
}

// coincide handles summands with equal x: a doubling when the y agree
// too (cc = 0) and the point at infinity otherwise.
func (c *Curve) coincide(r, a, cc []Word, stack []Word) {
	if zz.IsZeroFast(cc) {
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
