// Package ecp implements elliptic curves y^2 = x^3 + Ax + B over prime
// fields in Jacobian coordinates: (X : Y : Z) stands for (X/Z^2, Y/Z^3)
// and Z = 0 marks the point at infinity.
package ecp

import (
	"github.com/bee2-go/bee2/ec"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/qr"
	"github.com/bee2-go/bee2/zm"
	"github.com/bee2-go/bee2/zz"
)

// Word is the coordinate digit.
type Word = word.Word

const temps = 14

type aKind int

const (
	aGeneric aKind = iota
	aZero
	aMinus3
)

// Curve is a prime curve with its group law.
type Curve struct {
	f     *zm.Ring
	a, b  []Word
	aKind aKind
	q     []Word
	deep  int
}

var _ ec.Curve = (*Curve)(nil)

// Create builds the curve over f with coefficients encoded as field
// octet strings. The discriminant 4A^3 + 27B^2 must not vanish.
func Create(f *zm.Ring, a, b []byte) (*Curve, error) {
	base := f.Base()
	n := base.N

	c := &Curve{
		f: f,
		a: base.Elem(),
		b: base.Elem(),
	}

	if !f.From(c.a, a, nil) || !f.From(c.b, b, nil) {
		return nil, errs.Wrap(errs.ErrBadParams, "curve coefficients")
	}

	c.deep = temps*n + base.Deep
	c.q = base.Mod[:zz.WordSize(base.Mod)]

	if c.singular() {
		return nil, errs.Wrap(errs.ErrBadParams, "singular curve")
	}

	three := base.Elem()
	f.Add(three, base.Unity, base.Unity, nil)
	f.Add(three, three, base.Unity, nil)
	f.Neg(three, three, nil)

	switch {
	case base.IsZero(c.a):
		c.aKind = aZero
	case base.Eq(c.a, three):
		c.aKind = aMinus3
	}

	return c, nil
}

// singular reports whether 4A^3 + 27B^2 = 0.
func (c *Curve) singular() bool {
	f := c.f
	base := f.Base()
	t, u, k := base.Elem(), base.Elem(), base.Elem()

	// k = 4
	f.Add(k, base.Unity, base.Unity, nil)
	f.Add(k, k, k, nil)
	f.Sqr(t, c.a, nil)
	f.Mul(t, t, c.a, nil)
	f.Mul(t, t, k, nil)

	// k = 27 = 4 * 7 - 1
	f.Add(u, k, k, nil)
	f.Sub(u, u, base.Unity, nil)
	f.Mul(k, u, k, nil)
	f.Sub(k, k, base.Unity, nil)
	f.Sqr(u, c.b, nil)
	f.Mul(u, u, k, nil)
	f.Add(t, t, u, nil)

	return base.IsZero(t)
}

// Field implements ec.Curve.
func (c *Curve) Field() qr.Ring { return c.f }

// FieldSize implements ec.Curve: the prime p.
func (c *Curve) FieldSize() []Word { return c.q }

// A implements ec.Curve.
func (c *Curve) A() []Word { return c.a }

// B implements ec.Curve.
func (c *Curve) B() []Word { return c.b }

// Deep implements ec.Curve.
func (c *Curve) Deep() int { return c.deep }

func (c *Curve) n() int { return c.f.Base().N }

type frame struct {
	n    int
	buf  []Word
	rest []Word
}

func (c *Curve) frame(stack []Word) *frame {
	if len(stack) < c.deep {
		stack = make([]Word, c.deep)
	}

	n := c.n()

	return &frame{n: n, buf: stack[:temps*n], rest: stack[temps*n:]}
}

func (fr *frame) t(i int) []Word {
	return fr.buf[i*fr.n : (i+1)*fr.n]
}

func (fr *frame) wipe() {
	zz.SetZero(fr.buf)
}

// IsOnA implements ec.Curve.
func (c *Curve) IsOnA(a []Word, stack []Word) bool {
	n := c.n()
	mod := c.f.Base().Mod

	if zz.CmpFast(a[:n], mod) >= 0 || zz.CmpFast(a[n:2*n], mod) >= 0 {
		return false
	}

	fr := c.frame(stack)
	defer fr.wipe()

	f, rest := c.f, fr.rest
	l, r, t := fr.t(0), fr.t(1), fr.t(2)
	x, y := a[:n], a[n:2*n]

	f.Sqr(l, y, rest)

	// x^3 + Ax + B
	f.Sqr(r, x, rest)
	f.Mul(r, r, x, rest)
	f.Mul(t, c.a, x, rest)
	f.Add(r, r, t, rest)
	f.Add(r, r, c.b, rest)

	return zz.Eq(l, r)
}

// FromA implements ec.Curve.
func (c *Curve) FromA(b, a []Word, stack []Word) {
	n := c.n()
	copy(b[:2*n], a[:2*n])
	c.f.Base().SetUnity(b[2*n : 3*n])
}

// ToA implements ec.Curve.
func (c *Curve) ToA(b, a []Word, stack []Word) bool {
	n := c.n()

	if ec.IsO(c, a) {
		return false
	}

	fr := c.frame(stack)
	defer fr.wipe()

	f, rest := c.f, fr.rest
	zi, zi2 := fr.t(0), fr.t(1)

	f.Inv(zi, a[2*n:3*n], rest)
	f.Sqr(zi2, zi, rest)
	f.Mul(b[:n], a[:n], zi2, rest)
	f.Mul(zi2, zi2, zi, rest)
	f.Mul(b[n:2*n], a[n:2*n], zi2, rest)

	return true
}

// NegA implements ec.Curve.
func (c *Curve) NegA(b, a []Word, stack []Word) {
	n := c.n()
	copy(b[:n], a[:n])
	c.f.Neg(b[n:2*n], a[n:2*n], stack)
}

// Neg implements ec.Curve.
func (c *Curve) Neg(b, a []Word, stack []Word) {
	n := c.n()
	copy(b[:n], a[:n])
	c.f.Neg(b[n:2*n], a[n:2*n], stack)
	copy(b[2*n:3*n], a[2*n:3*n])
}
