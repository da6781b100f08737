// Package ec2 implements elliptic curves y^2 + xy = x^3 + Ax^2 + B over
// binary fields in Lopez-Dahab coordinates: (X : Y : Z) stands for
// (X/Z, Y/Z^2) and Z = 0 marks the point at infinity.
package ec2

import (
	"github.com/bee2-go/bee2/ec"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/gf2"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/qr"
	"github.com/bee2-go/bee2/zz"
)

// Word is the coordinate digit.
type Word = word.Word

// temps is the number of field temporaries a group operation uses.
const temps = 14

// Curve is a binary curve with its group law.
type Curve struct {
	f    *gf2.Field
	a, b []Word
	// aMode is 0 or 1 for A = 0, 1 and 2 for any other A.
	aMode int
	q     []Word
	deep  int
}

var _ ec.Curve = (*Curve)(nil)

// Create builds the curve with coefficients encoded as field octet
// strings. B must be non-zero.
func Create(f *gf2.Field, a, b []byte) (*Curve, error) {
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

	if base.IsZero(c.b) {
		return nil, errs.Wrap(errs.ErrBadParams, "singular curve: B = 0")
	}

	switch {
	case base.IsZero(c.a):
		c.aMode = 0
	case base.IsUnity(c.a):
		c.aMode = 1
	default:
		c.aMode = 2
	}

	m := f.Degree()
	c.q = make([]Word, word.OfB(m+1))
	zz.SetBit(c.q, m, 1)

	c.deep = temps*n + base.Deep

	return c, nil
}

// Field implements ec.Curve.
func (c *Curve) Field() qr.Ring { return c.f }

// FieldSize implements ec.Curve: q = 2^m.
func (c *Curve) FieldSize() []Word { return c.q }

// A implements ec.Curve.
func (c *Curve) A() []Word { return c.a }

// B implements ec.Curve.
func (c *Curve) B() []Word { return c.b }

// Deep implements ec.Curve.
func (c *Curve) Deep() int { return c.deep }

func (c *Curve) n() int { return c.f.Base().N }

func (c *Curve) stack(stack []Word) []Word {
	if len(stack) < c.deep {
		return make([]Word, c.deep)
	}

	return stack
}

// frame carves field temporaries out of a workspace.
type frame struct {
	n    int
	buf  []Word
	rest []Word
}

func (c *Curve) frame(stack []Word) *frame {
	stack = c.stack(stack)
	n := c.n()

	return &frame{n: n, buf: stack[:temps*n], rest: stack[temps*n:]}
}

func (fr *frame) t(i int) []Word {
	return fr.buf[i*fr.n : (i+1)*fr.n]
}

func (fr *frame) wipe() {
	zz.SetZero(fr.buf)
}

// mulA sets r = A*x.
func (c *Curve) mulA(r, x []Word, stack []Word) {
	switch c.aMode {
	case 0:
		zz.SetZero(r)
	case 1:
		copy(r, x)
	default:
		c.f.Mul(r, c.a, x, stack)
	}
}

// IsOnA implements ec.Curve.
func (c *Curve) IsOnA(a []Word, stack []Word) bool {
	n := c.n()
	fr := c.frame(stack)
	defer fr.wipe()

	f, rest := c.f, fr.rest
	x, y := a[:n], a[n:2*n]

	if !c.inField(x) || !c.inField(y) {
		return false
	}

	l, r, t := fr.t(0), fr.t(1), fr.t(2)

	// y^2 + xy
	f.Sqr(l, y, rest)
	f.Mul(t, x, y, rest)
	f.Add(l, l, t, rest)

	// x^3 + Ax^2 + B
	f.Sqr(t, x, rest)
	f.Mul(r, t, x, rest)
	c.mulA(t, t, rest)
	f.Add(r, r, t, rest)
	f.Add(r, r, c.b, rest)

	return zz.Eq(l, r)
}

func (c *Curve) inField(x []Word) bool {
	n := c.n()
	m := c.f.Degree()

	return zz.BitSize(x[:n]) <= m
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
	f.Mul(b[:n], a[:n], zi, rest)
	f.Mul(b[n:2*n], a[n:2*n], zi2, rest)

	return true
}

// NegA implements ec.Curve: -(x, y) = (x, x + y).
func (c *Curve) NegA(b, a []Word, stack []Word) {
	n := c.n()
	copy(b[:n], a[:n])
	c.f.Add(b[n:2*n], a[:n], a[n:2*n], stack)
}

// Neg implements ec.Curve: -(X : Y : Z) = (X : Y + XZ : Z).
func (c *Curve) Neg(b, a []Word, stack []Word) {
	n := c.n()
	fr := c.frame(stack)
	defer fr.wipe()

	t := fr.t(0)
	c.f.Mul(t, a[:n], a[2*n:3*n], fr.rest)
	copy(b[:n], a[:n])
	copy(b[2*n:3*n], a[2*n:3*n])
	c.f.Add(b[n:2*n], a[n:2*n], t, fr.rest)
}
