// Package zm implements the residue rings Z/mZ on top of package zz.
//
// The reduction strategy is chosen per modulus: plain division, Crandall
// folding, Barrett or Montgomery. Montgomery rings keep elements in the
// form a*R mod m, R = B^n, which From and To hide.
package zm

import (
	"fmt"

	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/qr"
	"github.com/bee2-go/bee2/zz"
)

// Word is the element digit.
type Word = word.Word

// Reduction identifies the reduction strategy of a ring.
type Reduction int

const (
	Plain Reduction = iota
	Crandall
	Barrett
	Mont
	CrandallMont
)

func (r Reduction) String() string {
	switch r {
	case Plain:
		return "plain"
	case Crandall:
		return "crandall"
	case Barrett:
		return "barrett"
	case Mont:
		return "montgomery"
	case CrandallMont:
		return "crandall-montgomery"
	}

	return fmt.Sprintf("reduction(%d)", int(r))
}

// Ring is Z/mZ.
type Ring struct {
	base qr.Base
	red  Reduction

	// Barrett parameter
	barr []Word
	// Montgomery parameter and R^2 mod m
	m0 Word
	r2 []Word
	// modulus without leading zero words
	mt []Word
}

var _ qr.Ring = (*Ring)(nil)

// Base implements qr.Ring.
func (r *Ring) Base() *qr.Base { return &r.base }

// Reduction returns the reduction strategy in use.
func (r *Ring) Reduction() Reduction { return r.red }

// Create builds Z/mZ for the modulus given as a little-endian octet string.
// The reduction is selected automatically: moduli of at most two words use
// plain division, moduli B^n - c use Crandall folding, other odd moduli
// use Montgomery and long even moduli use Barrett.
func Create(mod []byte) (*Ring, error) {
	m, err := decodeMod(mod)
	if err != nil {
		return nil, err
	}

	n := len(m)

	switch {
	case n <= 2:
		return build(m, len(mod), Plain)
	case zz.IsCrandallModulus(m):
		return build(m, len(mod), Crandall)
	case zz.IsOdd(m):
		return build(m, len(mod), Mont)
	case n >= 4:
		return build(m, len(mod), Barrett)
	default:
		return build(m, len(mod), Plain)
	}
}

// CreateWith builds Z/mZ with the given reduction; Crandall reductions
// require a Crandall modulus and Montgomery reductions an odd one.
func CreateWith(mod []byte, red Reduction) (*Ring, error) {
	m, err := decodeMod(mod)
	if err != nil {
		return nil, err
	}

	switch red {
	case Crandall, CrandallMont:
		if !zz.IsCrandallModulus(m) {
			return nil, errs.Wrap(errs.ErrBadParams, "%s reduction needs a modulus B^n - c", red)
		}
	case Plain, Barrett:
	case Mont:
	default:
		return nil, errs.Wrap(errs.ErrBadParams, "unknown reduction %d", int(red))
	}

	if (red == Mont || red == CrandallMont) && !zz.IsOdd(m) {
		return nil, errs.Wrap(errs.ErrBadParams, "%s reduction needs an odd modulus", red)
	}

	return build(m, len(mod), red)
}

// CreateMont builds a Montgomery ring with R = 2^l, where l is rounded up
// to a whole number of words and must cover the modulus.
func CreateMont(mod []byte, l int) (*Ring, error) {
	m, err := decodeMod(mod)
	if err != nil {
		return nil, err
	}

	if !zz.IsOdd(m) {
		return nil, errs.Wrap(errs.ErrBadParams, "montgomery reduction needs an odd modulus")
	}

	if l < zz.BitSize(m) {
		return nil, errs.Wrap(errs.ErrBadParams, "working length %d below modulus length", l)
	}

	padded := make([]Word, word.OfB(l))
	copy(padded, m)

	return build(padded, len(mod), Mont)
}

func decodeMod(mod []byte) ([]Word, error) {
	m := make([]Word, word.OfO(len(mod)))
	zz.FromOctets(m, mod)

	n := zz.WordSize(m)
	if n == 0 || len(mod) == 0 || mod[len(mod)-1] == 0 {
		return nil, errs.Wrap(errs.ErrBadParams, "modulus must have a non-zero top octet")
	}

	if n == 1 && m[0] == 1 {
		return nil, errs.Wrap(errs.ErrBadParams, "modulus must exceed 1")
	}

	return m[:n], nil
}

func build(m []Word, no int, red Reduction) (*Ring, error) {
	n := len(m)
	r := &Ring{red: red}
	r.base = qr.Base{
		Mod:   m,
		N:     n,
		NO:    no,
		Unity: make([]Word, n),
	}

	r.base.Deep = deep(n)
	r.mt = m[:zz.WordSize(m)]
	nt := len(r.mt)

	switch red {
	case Barrett:
		r.barr = make([]Word, zz.BarrettDeep(n))
		zz.RedBarrettStart(r.barr, m, nil)
	case Mont:
		r.m0 = zz.MontParam(m)
	case CrandallMont:
		r.m0 = zz.CrandMontParam(m)
	}

	if red == Mont || red == CrandallMont {
		// R mod m and R^2 mod m
		t := make([]Word, 2*n+1)
		t[n] = 1
		zz.Mod(r.base.Unity[:nt], t[:n+1], r.mt, nil)

		zz.SetZero(t)
		t[2*n] = 1
		r.r2 = make([]Word, n)
		zz.Mod(r.r2[:nt], t, r.mt, nil)
	} else {
		r.base.Unity[0] = 1
	}

	return r, nil
}

// deep bounds the workspace of every ring operation: a 2n-word product
// followed by the largest reduction or inversion.
func deep(n int) int {
	return 4*n + maxInt(
		zz.RedDeep(n),
		zz.RedBarrettDeep(n),
		zz.InvModDeep(n),
		zz.RedBarrettStartDeep(n),
	)
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

func (r *Ring) stack(stack []Word) []Word {
	if len(stack) < r.base.Deep {
		return make([]Word, r.base.Deep)
	}

	return stack
}

// reduce reduces a product of 2n words into a[:n].
func (r *Ring) reduce(a []Word, stack []Word) {
	m := r.base.Mod

	switch r.red {
	case Plain:
		zz.Red(a, m, stack)
	case Crandall:
		zz.RedCrand(a, m, stack)
	case Barrett:
		zz.RedBarrett(a, m, r.barr, stack)
	case Mont:
		zz.RedMont(a, m, r.m0, stack)
	case CrandallMont:
		zz.RedCrandMont(a, m, r.m0, stack)
	}
}

// From implements qr.Ring. It rejects encodings of integers >= m.
func (r *Ring) From(a []Word, buf []byte, stack []Word) bool {
	n := r.base.N
	if len(buf) != r.base.NO {
		return false
	}

	t := make([]Word, maxInt(n, word.OfO(len(buf))))
	zz.FromOctets(t, buf)

	if zz.WordSize(t) > n || zz.CmpFast(t[:n], r.base.Mod) >= 0 {
		return false
	}

	copy(a[:n], t[:n])

	if r.red == Mont || r.red == CrandallMont {
		r.Mul(a, a, r.r2, stack)
	}

	return true
}

// To implements qr.Ring.
func (r *Ring) To(buf []byte, a []Word, stack []Word) {
	n := r.base.N
	t := a[:n]

	if r.red == Mont || r.red == CrandallMont {
		stack = r.stack(stack)
		p := stack[:2*n]
		zz.SetZero(p)
		copy(p, a[:n])
		r.reduce(p, stack[2*n:])
		t = p[:n]
	}

	tmp := make([]byte, n*word.O)
	zz.ToOctets(tmp, t)
	copy(buf[:r.base.NO], tmp)
}

// Add implements qr.Ring.
func (r *Ring) Add(c, a, b []Word, stack []Word) {
	n := r.base.N
	zz.AddMod(c[:n], a[:n], b[:n], r.base.Mod)
}

// Sub implements qr.Ring.
func (r *Ring) Sub(c, a, b []Word, stack []Word) {
	n := r.base.N
	zz.SubMod(c[:n], a[:n], b[:n], r.base.Mod)
}

// Neg implements qr.Ring.
func (r *Ring) Neg(b, a []Word, stack []Word) {
	n := r.base.N
	zz.NegMod(b[:n], a[:n], r.base.Mod)
}

// Double sets b = 2a.
func (r *Ring) Double(b, a []Word) {
	n := r.base.N
	zz.DoubleMod(b[:n], a[:n], r.base.Mod)
}

// Half sets b = a/2 for an odd modulus.
func (r *Ring) Half(b, a []Word) {
	n := r.base.N
	zz.HalfMod(b[:n], a[:n], r.base.Mod)
}

// Mul implements qr.Ring.
func (r *Ring) Mul(c, a, b []Word, stack []Word) {
	n := r.base.N
	stack = r.stack(stack)
	p := stack[:2*n]

	zz.Mul(p, a[:n], b[:n])
	r.reduce(p, stack[2*n:])
	copy(c[:n], p[:n])
	zz.SetZero(p[:n])
}

// Sqr implements qr.Ring.
func (r *Ring) Sqr(b, a []Word, stack []Word) {
	n := r.base.N
	stack = r.stack(stack)
	p := stack[:2*n]

	zz.Sqr(p, a[:n])
	r.reduce(p, stack[2*n:])
	copy(b[:n], p[:n])
	zz.SetZero(p[:n])
}

// Inv implements qr.Ring. The computation branches on the value of a.
func (r *Ring) Inv(b, a []Word, stack []Word) {
	n, nt := r.base.N, len(r.mt)
	stack = r.stack(stack)
	t := stack[:n]
	zz.SetZero(t)

	if !zz.InvMod(t[:nt], a[:n], r.mt, stack[n:]) {
		zz.SetZero(b[:n])
		return
	}

	copy(b[:n], t)

	if r.red == Mont || r.red == CrandallMont {
		// (aR)^{-1} -> a^{-1} R
		r.Mul(b, b, r.r2, stack[n:])
		r.Mul(b, b, r.r2, stack[n:])
	}

	zz.SetZero(t)
}

// Div implements qr.Ring.
func (r *Ring) Div(b, divident, a []Word, stack []Word) {
	n := r.base.N
	stack = r.stack(stack)
	t := make([]Word, n)

	r.Inv(t, a, stack)
	r.Mul(b, divident, t, stack)
	zz.SetZero(t)
}

// FromWords sets a to the element represented by the integer x < m.
func (r *Ring) FromWords(a, x []Word, stack []Word) {
	n := r.base.N
	copy(a[:n], x[:n])

	if r.red == Mont || r.red == CrandallMont {
		r.Mul(a, a, r.r2, stack)
	}
}

// ToWords sets x to the integer represented by a.
func (r *Ring) ToWords(x, a []Word, stack []Word) {
	n := r.base.N

	if r.red == Mont || r.red == CrandallMont {
		stack = r.stack(stack)
		p := stack[:2*n]
		zz.SetZero(p)
		copy(p, a[:n])
		r.reduce(p, stack[2*n:])
		copy(x[:n], p[:n])

		return
	}

	copy(x[:n], a[:n])
}

// PowerModDeep returns the workspace size of PowerMod for an n-word
// modulus and an m-word exponent.
func PowerModDeep(n, m int) int {
	return qr.PowerDeep(n, m, deep(n))
}

// PowerMod sets c = a^b mod m for integers a < m, building the ring for m
// according to the automatic reduction choice.
func PowerMod(c, a, b, mod []Word, stack []Word) error {
	n := len(mod)
	buf := make([]byte, n*word.O)
	zz.ToOctets(buf, mod)

	no := len(buf)
	for no > 0 && buf[no-1] == 0 {
		no--
	}

	r, err := Create(buf[:no])
	if err != nil {
		return err
	}

	rn := r.base.N
	x := make([]Word, rn)
	copy(x, a[:rn])

	r.FromWords(x, x, stack)
	qr.Power(x, x, b, r, stack)
	r.ToWords(x, x, stack)

	zz.SetZero(c[:n])
	copy(c, x)

	return nil
}
