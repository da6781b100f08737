package ec2

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bee2-go/bee2/ec"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/gf2"
	"github.com/bee2-go/bee2/zz"
)

// le encodes a hex integer as a little-endian octet string of no octets.
func le(hex string, no int) []byte {
	x, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		panic(hex)
	}

	buf := x.FillBytes(make([]byte, no))
	for i, j := 0, no-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return buf
}

func words(hex string, n int) []Word {
	a := make([]Word, n)
	zz.FromOctets(a, le(hex, 8*n))

	return a
}

// toyGroup is the subgroup of order 991 of y^2 + xy = x^3 + x^2 + 1 over
// GF(2^11) = GF(2)[x]/(x^11 + x^2 + 1).
func toyGroup(t *testing.T) *ec.Group {
	t.Helper()

	f, err := gf2.Create(11, 2, 0, 0)
	require.NoError(t, err)

	c, err := Create(f, []byte{1, 0}, []byte{1, 0})
	require.NoError(t, err)

	return &ec.Group{
		Curve:    c,
		Base:     []Word{0x742, 0x52},
		Order:    []Word{991},
		Cofactor: 2,
	}
}

// k163 is the NIST Koblitz curve K-163.
func k163(t *testing.T) *ec.Group {
	t.Helper()

	f, err := gf2.Create(163, 7, 6, 3)
	require.NoError(t, err)

	one := make([]byte, 21)
	one[0] = 1

	c, err := Create(f, one, one)
	require.NoError(t, err)

	base := append(
		words("02FE13C0537BBC11ACAA07D793DE4E6D5E5C94EEE8", 3),
		words("0289070FB05D38FF58321F2E800536D538CCDAA3D9", 3)...,
	)

	return &ec.Group{
		Curve:    c,
		Base:     base,
		Order:    words("04000000000000000000020108A2E0CC0D99F8A5EF", 3),
		Cofactor: 2,
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	f, err := gf2.Create(11, 2, 0, 0)
	require.NoError(t, err)

	_, err = Create(f, []byte{1, 0}, []byte{0, 0})
	assert.ErrorIs(t, err, errs.ErrBadParams)

	// x^11 does not fit the field
	_, err = Create(f, []byte{0, 8}, []byte{1, 0})
	assert.ErrorIs(t, err, errs.ErrBadParams)

	c, err := Create(f, []byte{0x12, 0}, []byte{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, c.aMode)
	assert.Equal(t, []Word{1 << 11}, c.FieldSize())
}

func TestToyMultiples(t *testing.T) {
	t.Parallel()

	g := toyGroup(t)
	c := g.Curve

	require.True(t, c.IsOnA(g.Base, nil))
	require.NoError(t, ec.IsValidGroup(g, nil))

	cases := []struct {
		k    Word
		x, y Word
	}{
		{1, 0x742, 0x52},
		{2, 0x722, 0x704},
		{3, 0x5e3, 0x615},
		{5, 0x11b, 0x92},
		{100, 0x5e1, 0x1c5},
		{990, 0x742, 0x710},
	}

	for _, tc := range cases {
		p := make([]Word, 2)
		require.True(t, ec.MulA(p, g.Base, c, []Word{tc.k}, nil), "k = %d", tc.k)
		assert.Equal(t, []Word{tc.x, tc.y}, p, "k = %d", tc.k)
		assert.True(t, c.IsOnA(p, nil))
	}

	p := make([]Word, 2)
	assert.False(t, ec.MulA(p, g.Base, c, []Word{991}, nil))
	assert.False(t, ec.MulA(p, g.Base, c, []Word{0}, nil))
	assert.True(t, ec.HasOrderA(g.Base, c, g.Order, nil))
	assert.False(t, ec.HasOrderA(g.Base, c, []Word{990}, nil))
}

func TestToyLaw(t *testing.T) {
	t.Parallel()

	g := toyGroup(t)
	c := g.Curve

	gp := make([]Word, 3)
	c.FromA(gp, g.Base, nil)

	// 2G three ways
	d1 := make([]Word, 3)
	d2 := make([]Word, 3)
	d3 := make([]Word, 3)
	c.Dbl(d1, gp, nil)
	c.DblA(d2, g.Base, nil)
	c.Add(d3, gp, gp, nil)

	for _, d := range [][]Word{d1, d2, d3} {
		a := make([]Word, 2)
		require.True(t, c.ToA(a, d, nil))
		assert.Equal(t, []Word{0x722, 0x704}, a)
	}

	// G - G = O
	o := make([]Word, 3)
	c.Sub(o, gp, gp, nil)
	assert.True(t, ec.IsO(c, o))

	c.SubA(o, gp, g.Base, nil)
	assert.True(t, ec.IsO(c, o))

	// O + G = G
	c.AddA(o, o, g.Base, nil)
	a := make([]Word, 2)
	require.True(t, c.ToA(a, o, nil))
	assert.Equal(t, g.Base, a)

	// -G
	c.NegA(a, g.Base, nil)
	assert.Equal(t, []Word{0x742, 0x710}, a)

	neg := make([]Word, 3)
	c.Neg(neg, d1, nil)
	c.Add(neg, neg, d1, nil)
	assert.True(t, ec.IsO(c, neg))

	// the point of order 2 doubles to O
	t2 := []Word{0, 1}
	require.True(t, c.IsOnA(t2, nil))
	c.DblA(o, t2, nil)
	assert.True(t, ec.IsO(c, o))
}

func TestToySafety(t *testing.T) {
	t.Parallel()

	g := toyGroup(t)

	// the embedding degree of 991 over 2^11 is 45
	assert.ErrorIs(t, ec.IsSafeGroup(g, 50, nil), errs.ErrBadParams)
	assert.NoError(t, ec.IsSafeGroup(g, 40, nil))

	bad := *g
	bad.Order = []Word{997}
	assert.Error(t, ec.IsSafeGroup(&bad, 40, nil))

	bad = *g
	bad.Order = []Word{2000}
	assert.ErrorIs(t, ec.IsValidGroup(&bad, nil), errs.ErrBadParams)

	bad = *g
	bad.Base = []Word{0x742, 0x53}
	assert.ErrorIs(t, ec.IsValidGroup(&bad, nil), errs.ErrBadPoint)
}

func TestK163(t *testing.T) {
	t.Parallel()

	g := k163(t)
	c := g.Curve

	require.NoError(t, ec.IsValidGroup(g, nil))
	require.NoError(t, ec.IsSafeGroup(g, ec.MOVThreshold, nil))

	stack := make([]Word, ec.AddMulADeep(c, 2, 3))

	rapid.Check(t, func(t *rapid.T) {
		k := make([]Word, 3)
		for i := range k {
			k[i] = rapid.Uint64().Draw(t, "k")
		}

		k[2] &= 3

		if zz.IsZeroFast(k) || zz.CmpFast(k, g.Order) >= 0 {
			return
		}

		// k G + (n - k) G = O
		nk := make([]Word, 3)
		zz.Sub(nk, g.Order, k)

		p := make([]Word, 6)
		if ec.AddMulA(p, c, [][]Word{g.Base, g.Base}, [][]Word{k, nk}, stack) {
			t.Fatalf("k G + (n - k) G is not O")
		}

		// k G + G = (k + 1) G
		kp := make([]Word, 6)
		if !ec.MulA(kp, g.Base, c, k, stack) {
			t.Fatalf("k G = O")
		}

		k1 := make([]Word, 3)
		copy(k1, k)
		zz.AddW2(k1, 1)

		want := make([]Word, 6)
		okWant := ec.MulA(want, g.Base, c, k1, stack)

		sum := make([]Word, 9)
		c.FromA(sum, kp, stack)
		c.AddA(sum, sum, g.Base, stack)

		got := make([]Word, 6)
		okGot := c.ToA(got, sum, stack)

		if okWant != okGot || (okGot && !zz.Eq(got, want)) {
			t.Fatalf("k G + G != (k + 1) G")
		}
	})
}
