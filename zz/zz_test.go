package zz

import (
	"bytes"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bee2-go/bee2/errs"
)

var wordBase = new(big.Int).Lsh(big.NewInt(1), 64)

func toBig(a []Word) *big.Int {
	r := new(big.Int)
	for i := len(a) - 1; i >= 0; i-- {
		r.Mul(r, wordBase)
		r.Add(r, new(big.Int).SetUint64(a[i]))
	}

	return r
}

// assertBig compares by value: a zero from Rsh or Mod and a zero built by
// toBig differ in their internal representation.
func assertBig(t assert.TestingT, want, got *big.Int) {
	assert.Zero(t, want.Cmp(got), "want %s, got %s", want, got)
}

func fromBig(x *big.Int, n int) []Word {
	r := make([]Word, n)
	t := new(big.Int).Set(x)
	m := new(big.Int)

	for i := 0; i < n; i++ {
		t.DivMod(t, wordBase, m)
		r[i] = m.Uint64()
	}

	return r
}

func drawWords(t *rapid.T, n int, label string) []Word {
	return rapid.SliceOfN(rapid.Uint64(), n, n).Draw(t, label)
}

// drawTop draws n words with a non-zero top word.
func drawTop(t *rapid.T, n int, label string) []Word {
	a := drawWords(t, n, label)
	if a[n-1] == 0 {
		a[n-1] = 1
	}

	return a
}

func TestAddSub(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(tt, "n")
		a, b := drawWords(tt, n, "a"), drawWords(tt, n, "b")
		c := make([]Word, n)

		carry := Add(c, a, b)
		sum := new(big.Int).Add(toBig(a), toBig(b))
		assertBig(tt, sum, toBig(append(append([]Word{}, c...), carry)))
		assert.True(tt, IsSumEq(c, a, b) == (carry == 0))
		assert.True(tt, IsSumEqFast(c, a, b) == (carry == 0))

		borrow := Sub(c, c, b)
		if carry == 0 {
			assert.Equal(tt, Word(0), borrow)
		}

		assert.Equal(tt, a, c)

		w := rapid.Uint64().Draw(tt, "w")
		carry = AddW(c, a, w)
		assertBig(tt, new(big.Int).Add(toBig(a), new(big.Int).SetUint64(w)),
			toBig(append(append([]Word{}, c...), carry)))
		assert.True(tt, IsSumWEq(c, a, w) == (carry == 0))

		SubW2(c, w)
		assert.Equal(tt, a, c)
	})
}

func TestAdd3(t *testing.T) {
	t.Parallel()

	a := []Word{^Word(0), ^Word(0), 5}
	b := []Word{1}
	c := make([]Word, 3)

	require.Equal(t, Word(0), Add3(c, a, b))
	assert.Equal(t, []Word{0, 0, 6}, c)
	require.Equal(t, Word(0), Add3(c, b, a))
	assert.Equal(t, []Word{0, 0, 6}, c)
}

func TestNegCmp(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(tt, "n")
		a, b := drawWords(tt, n, "a"), drawWords(tt, n, "b")

		assert.Equal(tt, toBig(a).Cmp(toBig(b)), Cmp(a, b))
		assert.Equal(tt, toBig(a).Cmp(toBig(b)), CmpFast(a, b))
		assert.Equal(tt, toBig(a).Cmp(toBig(b)) < 0, Less(a, b) == 1)
		assert.True(tt, Eq(a, a))

		c := make([]Word, n)
		Neg(c, a)
		Add(c, c, a)
		assert.True(tt, IsZero(c))
	})
}

func TestShifts(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(tt, "n")
		a := drawWords(tt, n, "a")
		shift := rapid.IntRange(0, 64*n+3).Draw(tt, "shift")
		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(64*n)), big.NewInt(1))

		lo := append([]Word{}, a...)
		ShLo(lo, shift)
		assertBig(tt, new(big.Int).Rsh(toBig(a), uint(shift)), toBig(lo))

		hi := append([]Word{}, a...)
		ShHi(hi, shift)
		exp := new(big.Int).Lsh(toBig(a), uint(shift))
		assertBig(tt, exp.And(exp, mask), toBig(hi))
	})
}

func TestBits(t *testing.T) {
	t.Parallel()

	a := make([]Word, 3)
	SetBit(a, 130, 1)
	SetBit(a, 3, 1)

	assert.Equal(t, 131, BitSize(a))
	assert.Equal(t, 3, WordSize(a))
	assert.Equal(t, Word(1), TestBit(a, 130))
	assert.Equal(t, Word(0), TestBit(a, 129))
	assert.Equal(t, 3, TrailingZeros(a))
	assert.Equal(t, Word(0x1), GetBits(a, 3, 4))
	assert.Equal(t, Word(0x4), GetBits(a, 128, 3))

	SetBit(a, 130, 0)
	assert.Equal(t, 4, BitSize(a))
}

func TestMulSqr(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(tt, "n")
		m := rapid.IntRange(1, 6).Draw(tt, "m")
		a, b := drawWords(tt, n, "a"), drawWords(tt, m, "b")

		c := make([]Word, n+m)
		Mul(c, a, b)
		assertBig(tt, new(big.Int).Mul(toBig(a), toBig(b)), toBig(c))

		s := make([]Word, 2*n)
		Sqr(s, a)
		assertBig(tt, new(big.Int).Mul(toBig(a), toBig(a)), toBig(s))

		w := rapid.Uint64().Draw(tt, "w")
		d := append([]Word{}, b...)
		carry := AddMulW(d, a[:minInt(n, m)], w)
		exp := new(big.Int).Mul(toBig(a[:minInt(n, m)]), new(big.Int).SetUint64(w))
		exp.Add(exp, toBig(b[:minInt(n, m)]))
		got := append(append([]Word{}, d[:minInt(n, m)]...), carry)
		assertBig(tt, exp, toBig(got))

		borrow := SubMulW(d, a[:minInt(n, m)], w)
		assert.Equal(tt, carry, borrow)
		assert.Equal(tt, b, d)
	})
}

func TestDivMod(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		m := rapid.IntRange(1, 5).Draw(tt, "m")
		n := m + rapid.IntRange(0, 4).Draw(tt, "extra")
		a, b := drawWords(tt, n, "a"), drawTop(tt, m, "b")

		q := make([]Word, n-m+1)
		r := make([]Word, m)
		Div(q, r, a, b, nil)

		expQ, expR := new(big.Int).DivMod(toBig(a), toBig(b), new(big.Int))
		assertBig(tt, expQ, toBig(q))
		assertBig(tt, expR, toBig(r))

		r2 := make([]Word, m)
		Mod(r2, a, b, make([]Word, ModDeep(n, m)))
		assert.Equal(tt, r, r2)
	})
}

func TestDivW(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(tt, "n")
		a := drawWords(tt, n, "a")
		w := rapid.Uint64Range(1, ^uint64(0)).Draw(tt, "w")
		h := rapid.Uint64Range(1, 1<<32-1).Draw(tt, "h")

		q := make([]Word, n)
		rem := DivW(q, a, w)

		expQ, expR := new(big.Int).DivMod(toBig(a), new(big.Int).SetUint64(w), new(big.Int))
		assertBig(tt, expQ, toBig(q))
		assert.Equal(tt, expR.Uint64(), rem)
		assert.Equal(tt, rem, ModW(a, w))

		hr := new(big.Int).Mod(toBig(a), new(big.Int).SetUint64(h))
		assert.Equal(tt, hr.Uint64(), ModW2(a, h))
	})
}

func TestGCD(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(tt, "n")
		m := rapid.IntRange(1, 4).Draw(tt, "m")
		a, b := drawTop(tt, n, "a"), drawTop(tt, m, "b")

		// plant a common factor now and then
		if f := rapid.Uint64Range(1, 1000).Draw(tt, "f"); f > 1 {
			a[0] -= a[0] % f
			b[0] -= b[0] % f
		}

		if IsZeroFast(a) || IsZeroFast(b) {
			return
		}

		A, B := toBig(a), toBig(b)
		expD := new(big.Int).GCD(nil, nil, A, B)

		d := make([]Word, minInt(n, m))
		GCD(d, a, b, nil)
		assertBig(tt, expD, toBig(d))
		assert.Equal(tt, expD.Cmp(big.NewInt(1)) == 0, IsCoprime(a, b, nil))

		da, db := make([]Word, m), make([]Word, n)
		sign := ExGCD(d, da, db, a, b, nil)
		assertBig(tt, expD, toBig(d))

		lhs := new(big.Int).Sub(new(big.Int).Mul(toBig(da), A), new(big.Int).Mul(toBig(db), B))
		if sign == 1 {
			lhs.Neg(lhs)
		}

		assertBig(tt, expD, lhs)
		assert.True(tt, toBig(da).Cmp(new(big.Int).Div(B, expD)) <= 0)
		assert.True(tt, toBig(db).Cmp(new(big.Int).Div(A, expD)) <= 0)

		l := make([]Word, n+m)
		LCM(l, a, b, nil)
		expL := new(big.Int).Mul(A, B)
		expL.Div(expL, expD)
		assertBig(tt, expL, toBig(l))
	})
}

func TestJacobi(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(tt, "n")
		a, b := drawWords(tt, n, "a"), drawTop(tt, n, "b")
		b[0] |= 1

		assert.Equal(tt, big.Jacobi(toBig(a), toBig(b)), Jacobi(a, b, nil))
	})
}

func TestInvMod(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(tt, "n")
		a, mod := drawWords(tt, n, "a"), drawTop(tt, n, "mod")
		if IsW(mod, 1) {
			return
		}

		A, M := toBig(a), toBig(mod)
		exp := new(big.Int).ModInverse(A, M)

		b := make([]Word, n)
		ok := InvMod(b, a, mod, nil)

		if exp == nil {
			assert.False(tt, ok)
			return
		}

		require.True(tt, ok)
		assertBig(tt, exp, toBig(b))

		// division by a
		c := drawWords(tt, n, "c")
		Mod(c, c, mod, nil)
		q := make([]Word, n)
		require.True(tt, DivMod(q, c, a, mod, nil))
		prod := new(big.Int).Mul(toBig(q), A)
		assertBig(tt, toBig(c), prod.Mod(prod, M))
	})
}

func TestAlmostInvMod(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(tt, "n")
		mod := drawTop(tt, n, "mod")
		mod[0] |= 1

		a := drawWords(tt, n, "a")
		A, M := toBig(a), toBig(mod)
		A.Mod(A, M)

		if A.Sign() == 0 || new(big.Int).GCD(nil, nil, A, M).Cmp(big.NewInt(1)) != 0 {
			return
		}

		ar := fromBig(A, n)
		b := make([]Word, n)
		k := AlmostInvMod(b, ar, mod, nil)

		bits := M.BitLen()
		assert.GreaterOrEqual(tt, k, bits)
		assert.LessOrEqual(tt, k, 2*bits)

		lhs := new(big.Int).Mul(toBig(b), A)
		lhs.Mod(lhs, M)
		rhs := new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(k)), M)
		assertBig(tt, rhs, lhs)
	})
}

func TestModArith(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(tt, "n")
		mod := drawTop(tt, n, "mod")
		mod[0] |= 1

		M := toBig(mod)
		A := new(big.Int).Mod(toBig(drawWords(tt, n, "a")), M)
		B := new(big.Int).Mod(toBig(drawWords(tt, n, "b")), M)
		a, b := fromBig(A, n), fromBig(B, n)
		c := make([]Word, n)

		AddMod(c, a, b, mod)
		assertBig(tt, new(big.Int).Mod(new(big.Int).Add(A, B), M), toBig(c))
		AddModFast(c, a, b, mod)
		assertBig(tt, new(big.Int).Mod(new(big.Int).Add(A, B), M), toBig(c))

		SubMod(c, a, b, mod)
		assertBig(tt, new(big.Int).Mod(new(big.Int).Sub(A, B), M), toBig(c))
		SubModFast(c, a, b, mod)
		assertBig(tt, new(big.Int).Mod(new(big.Int).Sub(A, B), M), toBig(c))

		NegMod(c, a, mod)
		assertBig(tt, new(big.Int).Mod(new(big.Int).Neg(A), M), toBig(c))

		DoubleMod(c, a, mod)
		assertBig(tt, new(big.Int).Mod(new(big.Int).Lsh(A, 1), M), toBig(c))

		HalfMod(c, a, mod)
		twice := new(big.Int).Lsh(toBig(c), 1)
		assertBig(tt, A, twice.Mod(twice, M))

		MulMod(c, a, b, mod, nil)
		assertBig(tt, new(big.Int).Mod(new(big.Int).Mul(A, B), M), toBig(c))

		SqrMod(c, a, mod, nil)
		assertBig(tt, new(big.Int).Mod(new(big.Int).Mul(A, A), M), toBig(c))

		if M.IsUint64() {
			return
		}

		w := rapid.Uint64().Draw(tt, "w")
		W := new(big.Int).SetUint64(w)

		AddWMod(c, a, w, mod)
		assertBig(tt, new(big.Int).Mod(new(big.Int).Add(A, W), M), toBig(c))

		SubWMod(c, a, w, mod)
		assertBig(tt, new(big.Int).Mod(new(big.Int).Sub(A, W), M), toBig(c))
	})
}

func TestReductions(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(tt, "n")
		mod := drawTop(tt, n, "mod")
		mod[0] |= 1

		M := toBig(mod)
		x := drawWords(tt, 2*n, "x")
		X := toBig(x)
		exp := new(big.Int).Mod(X, M)

		a := append([]Word{}, x...)
		Red(a, mod, nil)
		assertBig(tt, exp, toBig(a[:n]))
		assert.True(tt, IsZero(a[n:]))

		barr := make([]Word, BarrettDeep(n))
		RedBarrettStart(barr, mod, nil)
		a = append([]Word{}, x...)
		RedBarrett(a, mod, barr, nil)
		assertBig(tt, exp, toBig(a[:n]))

		// Montgomery needs a < m R
		R := new(big.Int).Lsh(big.NewInt(1), uint(64*n))
		Y := new(big.Int).Mod(X, new(big.Int).Mul(M, R))
		a = fromBig(Y, 2*n)
		RedMont(a, mod, MontParam(mod), nil)
		expMont := new(big.Int).Mul(Y, new(big.Int).ModInverse(R, M))
		assertBig(tt, expMont.Mod(expMont, M), toBig(a[:n]))
	})
}

func TestCrandallReductions(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(2, 5).Draw(tt, "n")
		c := rapid.Uint64Range(1, 1<<40).Draw(tt, "c") | 1

		mod := make([]Word, n)
		for i := range mod {
			mod[i] = ^Word(0)
		}

		mod[0] = -c

		require.True(tt, IsCrandallModulus(mod))

		M := toBig(mod)
		x := drawWords(tt, 2*n, "x")
		X := toBig(x)

		a := append([]Word{}, x...)
		RedCrand(a, mod, nil)
		assertBig(tt, new(big.Int).Mod(X, M), toBig(a[:n]))

		R := new(big.Int).Lsh(big.NewInt(1), uint(64*n))
		Y := new(big.Int).Mod(X, new(big.Int).Mul(M, R))
		a = fromBig(Y, 2*n)
		RedCrandMont(a, mod, CrandMontParam(mod), nil)
		exp := new(big.Int).Mul(Y, new(big.Int).ModInverse(R, M))
		assertBig(tt, exp.Mod(exp, M), toBig(a[:n]))
	})
}

func TestSqrt(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(tt, "n")
		a := drawWords(tt, n, "a")

		if rapid.Bool().Draw(tt, "square") {
			h := drawWords(tt, (n+1)/2, "h")
			sq := new(big.Int).Mul(toBig(h), toBig(h))
			a = fromBig(sq.Mod(sq, new(big.Int).Lsh(big.NewInt(1), uint(64*n))), n)
		}

		A := toBig(a)
		root := new(big.Int).Sqrt(A)

		b := make([]Word, (n+1)/2)
		ok := Sqrt(b, a, nil)
		assertBig(tt, root, toBig(b))
		assert.Equal(tt, new(big.Int).Mul(root, root).Cmp(A) == 0, ok)
	})
}

func TestRandMod(t *testing.T) {
	t.Parallel()

	rng := mrand.New(mrand.NewSource(1))
	mod := []Word{0x1234, 0x5}
	b := make([]Word, 2)

	for i := 0; i < 100; i++ {
		require.NoError(t, RandMod(b, mod, rng))
		assert.Equal(t, -1, CmpFast(b, mod))

		require.NoError(t, RandNZMod(b, mod, rng))
		assert.False(t, IsZero(b))
	}

	// a generator stuck on ones never hits [0, 5)
	ones := bytes.NewReader(bytes.Repeat([]byte{0xFF}, 1024))
	assert.ErrorIs(t, RandMod(b[:1], []Word{5}, ones), errs.ErrBadRng)

	zeros := bytes.NewReader(make([]byte, 1024))
	assert.ErrorIs(t, RandNZMod(b[:1], []Word{5}, zeros), errs.ErrBadRng)
}
