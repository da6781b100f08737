// Package ec is the elliptic-curve core shared by prime and binary curves.
//
// A curve supplies its group law in projective coordinates through the
// Curve interface. Points are word arrays: affine points hold two field
// elements (x, y) and projective points hold three (X, Y, Z) with Z = 0
// for the point at infinity. The package builds scalar multiplication,
// multi-scalar multiplication and group validation on top of the law.
package ec

import (
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/qr"
)

// Word is the coordinate digit.
type Word = word.Word

// Curve is an elliptic curve together with its group law.
//
// Every method takes a workspace of at least Deep() words; nil is allowed.
type Curve interface {
	// Field returns the base field.
	Field() qr.Ring
	// FieldSize returns the number q of field elements.
	FieldSize() []Word
	// A and B return the curve coefficients in internal field form.
	A() []Word
	B() []Word
	// Deep bounds the workspace of a single group operation.
	Deep() int

	// FromA converts an affine point to projective coordinates.
	FromA(b, a []Word, stack []Word)
	// ToA converts a projective point to affine coordinates and reports
	// false when it is the point at infinity.
	ToA(b, a []Word, stack []Word) bool
	// IsOnA reports whether an affine point lies on the curve.
	IsOnA(a []Word, stack []Word) bool
	// NegA negates an affine point.
	NegA(b, a []Word, stack []Word)

	Neg(b, a []Word, stack []Word)
	// Add adds projective points; AddA adds an affine point to a
	// projective one.
	Add(c, a, b []Word, stack []Word)
	AddA(c, a, b []Word, stack []Word)
	Sub(c, a, b []Word, stack []Word)
	SubA(c, a, b []Word, stack []Word)
	// Dbl doubles a projective point; DblA doubles an affine point into
	// projective coordinates.
	Dbl(b, a []Word, stack []Word)
	DblA(b, a []Word, stack []Word)
}

// N returns the number of words of a field element of c.
func N(c Curve) int {
	return c.Field().Base().N
}

// SetO sets the projective point a to the point at infinity.
func SetO(c Curve, a []Word) {
	n := N(c)
	for i := range a[:3*n] {
		a[i] = 0
	}

	c.Field().Base().SetUnity(a[:n])
}

// IsO reports whether the projective point a is the point at infinity.
func IsO(c Curve, a []Word) bool {
	n := N(c)

	return c.Field().Base().IsZero(a[2*n : 3*n])
}
