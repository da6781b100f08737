package gf2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/pp"
	"github.com/bee2-go/bee2/qr"
)

func drawElem(t *rapid.T, f *Field, label string) []Word {
	buf := rapid.SliceOfN(rapid.Byte(), f.Base().NO, f.Base().NO).Draw(t, label)
	if r := f.Degree() % 8; r != 0 {
		buf[len(buf)-1] &= byte(1<<uint(r)) - 1
	}

	a := f.Base().Elem()
	require.True(t, f.From(a, buf, nil))

	return a
}

func TestCreate(t *testing.T) {
	t.Parallel()

	_, err := Create(1, 0, 0, 0)
	assert.ErrorIs(t, err, errs.ErrBadParams)

	_, err = Create(163, 7, 8, 3)
	assert.ErrorIs(t, err, errs.ErrBadParams)

	_, err = Create(11, 2, 0, 1)
	assert.ErrorIs(t, err, errs.ErrBadParams)

	f, err := Create(4, 2, 0, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, f.IsValid(), errs.ErrNotIrred)

	f, err = Create(163, 7, 6, 3)
	require.NoError(t, err)
	assert.NoError(t, f.IsValid())
	assert.NoError(t, qr.IsOperable(f))
	assert.Equal(t, 21, f.Base().NO)
}

func TestFieldArithmetic(t *testing.T) {
	t.Parallel()

	fields := []struct {
		name       string
		m, k, l, j int
	}{
		{"b163", 163, 7, 6, 3},
		{"b233", 233, 74, 0, 0},
		{"x11", 11, 2, 0, 0},
		{"belt", 128, 7, 2, 1},
	}

	for _, c := range fields {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			f, err := Create(c.m, c.k, c.l, c.j)
			require.NoError(t, err)
			require.NoError(t, f.IsValid())

			rapid.Check(t, func(tt *rapid.T) {
				a, b := drawElem(tt, f, "a"), drawElem(tt, f, "b")
				nm := len(f.Base().Mod)
				n := f.Base().N

				c := f.Base().Elem()
				f.Mul(c, a, b, nil)

				pad := func(x []Word) []Word {
					y := make([]Word, nm)
					copy(y, x)

					return y
				}

				exp := make([]Word, nm)
				pp.MulMod(exp, pad(a), pad(b), f.Base().Mod, nil)
				assert.Equal(tt, exp[:n], c)

				f.Sqr(c, a, nil)
				pp.MulMod(exp, pad(a), pad(a), f.Base().Mod, nil)
				assert.Equal(tt, exp[:n], c)

				f.Add(c, a, b, nil)
				f.Sub(c, c, b, nil)
				assert.Equal(tt, a, c)

				if f.Base().IsZero(a) {
					f.Inv(c, a, nil)
					assert.True(tt, f.Base().IsZero(c))

					return
				}

				f.Inv(c, a, nil)
				f.Mul(c, c, a, nil)
				assert.True(tt, f.Base().IsUnity(c))

				f.Div(c, b, a, nil)
				f.Mul(c, c, a, nil)
				assert.Equal(tt, b, c)

				out := make([]byte, f.Base().NO)
				f.To(out, a, nil)
				back := f.Base().Elem()
				require.True(tt, f.From(back, out, nil))
				assert.Equal(tt, a, back)
			})
		})
	}
}

func TestFermat(t *testing.T) {
	t.Parallel()

	f, err := Create(11, 2, 0, 0)
	require.NoError(t, err)

	// a^(2^11 - 1) = 1 for every non-zero a
	e := []Word{1<<11 - 1}

	for x := Word(1); x < 1<<11; x += 37 {
		a := []Word{x}
		b := f.Base().Elem()
		qr.Power(b, a, e, f, nil)
		assert.True(t, f.Base().IsUnity(b), "x = %d", x)
	}
}

func TestFromRejectsHighBits(t *testing.T) {
	t.Parallel()

	f, err := Create(11, 2, 0, 0)
	require.NoError(t, err)

	a := f.Base().Elem()
	assert.False(t, f.From(a, []byte{0xFF, 0x08}, nil))
	assert.True(t, f.From(a, []byte{0xFF, 0x07}, nil))
	assert.False(t, f.From(a, []byte{0xFF}, nil))
}

func TestTrace(t *testing.T) {
	t.Parallel()

	f, err := Create(11, 2, 0, 0)
	require.NoError(t, err)

	// the trace is additive and exactly half of the field has trace one
	ones := 0

	for x := Word(0); x < 1<<11; x++ {
		ones += int(f.Trace([]Word{x}, nil))
	}

	assert.Equal(t, 1<<10, ones)
	assert.Equal(t, Word(1), f.Trace([]Word{1}, nil))
}
