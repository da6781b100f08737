package ec

import (
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/pri"
	"github.com/bee2-go/bee2/qr"
	"github.com/bee2-go/bee2/zz"
)

// MOVThreshold is the default embedding degree bound of IsSafeGroup.
const MOVThreshold = 50

// Group is a cyclic subgroup of a curve generated by an affine base point.
type Group struct {
	Curve Curve
	// Base is the affine base point.
	Base []Word
	// Order is the order of Base.
	Order []Word
	// Cofactor is the index of the subgroup in the group of points.
	Cofactor Word
}

// IsValidGroup checks that the field is operable, that the base point lies
// on the curve and that order*cofactor satisfies Hasse's bound
// |order*cofactor - (q + 1)| <= 2 sqrt(q).
func IsValidGroup(g *Group, stack []Word) error {
	if g == nil || g.Curve == nil {
		return errs.ErrBadParams
	}

	c := g.Curve
	if err := qr.IsOperable(c.Field()); err != nil {
		return err
	}

	n := N(c)

	switch {
	case len(g.Base) < 2*n:
		return errs.Wrap(errs.ErrBadParams, "base point of %d words", len(g.Base))
	case zz.IsZeroFast(g.Order) || g.Cofactor == 0:
		return errs.Wrap(errs.ErrBadParams, "zero order or cofactor")
	case !c.IsOnA(g.Base, stack):
		return errs.Wrap(errs.ErrBadPoint, "base point is not on the curve")
	}

	if !hasse(c.FieldSize(), g.Order, g.Cofactor) {
		return errs.Wrap(errs.ErrBadParams, "group order violates Hasse's bound")
	}

	return nil
}

func hasse(q, order []Word, cofactor Word) bool {
	l := len(order) + 1
	if len(q)+1 > l {
		l = len(q) + 1
	}

	// count = order * cofactor
	count := make([]Word, l)
	count[len(order)] = zz.MulW(count[:len(order)], order, cofactor)

	q1 := make([]Word, l)
	copy(q1, q)
	zz.AddW2(q1, 1)

	d := make([]Word, l)
	if zz.CmpFast(count, q1) >= 0 {
		zz.Sub(d, count, q1)
	} else {
		zz.Sub(d, q1, count)
	}

	d2 := make([]Word, 2*l)
	zz.Sqr(d2, d)

	q4 := make([]Word, 2*l)
	copy(q4, q)
	zz.ShHi(q4, 2)

	return zz.CmpFast(d2, q4) <= 0
}

// IsSafeGroup runs IsValidGroup and additionally checks that the order is
// a prime different from q, that the base point has this order and that
// the order does not divide q^i - 1 for i = 1..movThreshold (MOV attack).
func IsSafeGroup(g *Group, movThreshold int, stack []Word) error {
	if err := IsValidGroup(g, stack); err != nil {
		return err
	}

	c := g.Curve
	order := g.Order[:zz.WordSize(g.Order)]
	q := c.FieldSize()

	if !pri.IsPrime(order, nil) {
		return errs.Wrap(errs.ErrNotPrime, "group order")
	}

	if zz.Cmp2(order, q) == 0 {
		return errs.Wrap(errs.ErrBadParams, "anomalous curve")
	}

	if !HasOrderA(g.Base, c, order, stack) {
		return errs.Wrap(errs.ErrBadPoint, "base point order")
	}

	// t = q mod order
	n := len(order)
	qq := make([]Word, maxInt(len(q), n))
	copy(qq, q)

	t := make([]Word, n)
	zz.Mod(t, qq, order, nil)

	pw := make([]Word, n)
	copy(pw, t)

	for i := 1; i <= movThreshold; i++ {
		if zz.IsW(pw, 1) {
			return errs.Wrap(errs.ErrBadParams, "MOV embedding degree %d", i)
		}

		zz.MulMod(pw, pw, t, order, nil)
	}

	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
