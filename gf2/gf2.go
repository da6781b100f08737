// Package gf2 implements binary fields GF(2^m) = GF(2)[x]/(f) for
// trinomial and pentanomial moduli f.
package gf2

import (
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/pp"
	"github.com/bee2-go/bee2/qr"
	"github.com/bee2-go/bee2/zz"
)

// Word is the element digit.
type Word = word.Word

// Field is GF(2^m).
type Field struct {
	base qr.Base

	m, k, l, l1 int
	tri         *pp.Trinomial
	pent        *pp.Pentanomial
}

var _ qr.Ring = (*Field)(nil)

// Create builds GF(2^m) modulo x^m + x^k + 1 when l == 0, and modulo
// x^m + x^k + x^l + x^l1 + 1 otherwise (m > k > l > l1 > 0). The modulus
// is not checked for irreducibility; see IsValid.
func Create(m, k, l, l1 int) (*Field, error) {
	switch {
	case m < 2 || k <= 0 || k >= m:
		return nil, errs.Wrap(errs.ErrBadParams, "field degree %d, k = %d", m, k)
	case l != 0 && !(k > l && l > l1 && l1 > 0):
		return nil, errs.Wrap(errs.ErrBadParams, "pentanomial exponents %d > %d > %d", k, l, l1)
	case l == 0 && l1 != 0:
		return nil, errs.Wrap(errs.ErrBadParams, "trinomial with l1 = %d", l1)
	}

	f := &Field{m: m, k: k, l: l, l1: l1}

	var mod []Word

	if l == 0 {
		t := pp.Trinomial{M: m, K: k}
		f.tri = &t
		mod = t.Poly()
	} else {
		p := pp.Pentanomial{M: m, K1: k, K2: l, K3: l1}
		f.pent = &p
		mod = p.Poly()
	}

	n := word.OfB(m)
	nm := len(mod)

	f.base = qr.Base{
		Mod:   mod,
		N:     n,
		NO:    (m + 7) / 8,
		Unity: make([]Word, n),
		Deep: 4*nm + maxInt(
			pp.MulDeep(n, n),
			pp.DivDeep(2*n, nm),
			pp.InvModDeep(nm),
		),
	}
	f.base.Unity[0] = 1

	return f, nil
}

func maxInt(v ...int) int {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}

	return m
}

// Base implements qr.Ring.
func (f *Field) Base() *qr.Base { return &f.base }

// Degree returns m.
func (f *Field) Degree() int { return f.m }

// Params returns the modulus description (m, k, l, l1).
func (f *Field) Params() (m, k, l, l1 int) { return f.m, f.k, f.l, f.l1 }

// IsValid checks that the modulus is irreducible.
func (f *Field) IsValid() error {
	if !pp.IsIrred(f.base.Mod, nil) {
		return errs.ErrNotIrred
	}

	return nil
}

func (f *Field) stack(stack []Word) []Word {
	if len(stack) < f.base.Deep {
		return make([]Word, f.base.Deep)
	}

	return stack
}

// reduce reduces a polynomial of 2n words into p[:n].
func (f *Field) reduce(p []Word, stack []Word) {
	n := f.base.N

	switch {
	case f.tri != nil && f.tri.Fast():
		pp.RedTrinomial(p[:2*n], *f.tri)
	case f.pent != nil && f.pent.Fast():
		pp.RedPentanomial(p[:2*n], *f.pent)
	default:
		nm := len(f.base.Mod)
		r := stack[:nm]
		pp.Mod(r, p[:2*n], f.base.Mod, stack[nm:])
		zz.SetZero(p[:2*n])
		copy(p[:n], r[:n])
		zz.SetZero(r)
	}
}

// From implements qr.Ring. It rejects polynomials of degree m or more.
func (f *Field) From(a []Word, buf []byte, stack []Word) bool {
	n := f.base.N
	if len(buf) != f.base.NO {
		return false
	}

	if r := f.m % 8; r != 0 && buf[len(buf)-1]>>uint(r) != 0 {
		return false
	}

	zz.FromOctets(a[:n], buf)

	return true
}

// To implements qr.Ring.
func (f *Field) To(buf []byte, a []Word, stack []Word) {
	tmp := make([]byte, f.base.N*word.O)
	zz.ToOctets(tmp, a[:f.base.N])
	copy(buf[:f.base.NO], tmp)
}

// Add implements qr.Ring.
func (f *Field) Add(c, a, b []Word, stack []Word) {
	n := f.base.N
	pp.Add(c[:n], a[:n], b[:n])
}

// Sub implements qr.Ring; it coincides with Add.
func (f *Field) Sub(c, a, b []Word, stack []Word) {
	f.Add(c, a, b, stack)
}

// Neg implements qr.Ring; every element is its own negative.
func (f *Field) Neg(b, a []Word, stack []Word) {
	n := f.base.N
	copy(b[:n], a[:n])
}

// Mul implements qr.Ring.
func (f *Field) Mul(c, a, b []Word, stack []Word) {
	n := f.base.N
	stack = f.stack(stack)
	p := stack[:2*n]

	pp.Mul(p, a[:n], b[:n], stack[2*n:])
	f.reduce(p, stack[2*n:])
	copy(c[:n], p[:n])
	zz.SetZero(p[:n])
}

// Sqr implements qr.Ring.
func (f *Field) Sqr(b, a []Word, stack []Word) {
	n := f.base.N
	stack = f.stack(stack)
	p := stack[:2*n]

	pp.Sqr(p, a[:n])
	f.reduce(p, stack[2*n:])
	copy(b[:n], p[:n])
	zz.SetZero(p[:n])
}

// Inv implements qr.Ring. The inverse of zero is zero.
func (f *Field) Inv(b, a []Word, stack []Word) {
	n, nm := f.base.N, len(f.base.Mod)
	stack = f.stack(stack)
	t := stack[:nm]

	if !pp.InvMod(t, a[:n], f.base.Mod, stack[nm:]) {
		zz.SetZero(b[:n])
		return
	}

	copy(b[:n], t[:n])
	zz.SetZero(t)
}

// Div implements qr.Ring.
func (f *Field) Div(b, divident, a []Word, stack []Word) {
	n := f.base.N
	t := make([]Word, n)

	f.Inv(t, a, stack)
	f.Mul(b, divident, t, stack)
	zz.SetZero(t)
}

// Trace returns the absolute trace of a, Tr(a) = a + a^2 + ... + a^{2^{m-1}}.
func (f *Field) Trace(a []Word, stack []Word) Word {
	n := f.base.N
	t, acc := make([]Word, n), make([]Word, n)

	copy(t, a[:n])
	copy(acc, a[:n])

	for i := 1; i < f.m; i++ {
		f.Sqr(t, t, stack)
		pp.Add(acc, acc, t)
	}

	return acc[0] & 1
}
