package pri

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/prng"
	"github.com/bee2-go/bee2/zz"
)

func fromBig(x *big.Int, n int) []Word {
	a := make([]Word, n)
	for i, w := range x.Bits() {
		a[i] = Word(w)
	}

	return a
}

func toBig(a []Word) *big.Int {
	buf := make([]byte, len(a)*word.O)
	zz.ToOctets(buf, a)

	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return new(big.Int).SetBytes(buf)
}

func mustBig(s string) *big.Int {
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		panic(s)
	}

	return x
}

func TestFactorBase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Word(3), BasePrime(0))
	assert.Equal(t, Word(5), BasePrime(1))
	assert.Equal(t, Word(8167), BasePrime(BaseSize-1))

	covered := 0
	for _, g := range groups {
		assert.Equal(t, covered, g.start)

		prod := new(big.Int).SetUint64(1)
		for i := g.start; i < g.end; i++ {
			prod.Mul(prod, new(big.Int).SetUint64(base[i]))
		}

		assert.Equal(t, prod.Uint64(), g.prod)
		assert.True(t, prod.IsUint64())

		covered = g.end
	}

	assert.Equal(t, BaseSize, covered)
}

func TestBaseMod(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.SliceOfN(rapid.Uint64(), 1, 6).Draw(t, "a")
		count := rapid.IntRange(0, BaseSize).Draw(t, "count")

		mods := make([]Word, count)
		BaseMod(mods, a)

		x := toBig(a)
		for i, m := range mods {
			want := new(big.Int).Mod(x, new(big.Int).SetUint64(base[i]))
			if want.Uint64() != m {
				t.Fatalf("residue %d: got %d want %d", i, m, want.Uint64())
			}
		}
	})
}

func TestIsSievedSmooth(t *testing.T) {
	t.Parallel()

	assert.False(t, IsSieved([]Word{10}, 10, nil))
	assert.False(t, IsSieved([]Word{3 * 101}, 100, nil))
	assert.True(t, IsSieved([]Word{3 * 101}, 0, nil))
	assert.True(t, IsSieved([]Word{8191 * 8209}, BaseSize, nil))

	assert.True(t, IsSmooth([]Word{1 << 10 * 27 * 49}, 3, nil))
	assert.False(t, IsSmooth([]Word{1 << 10 * 27 * 11}, 3, nil))
	assert.True(t, IsSmooth([]Word{1 << 10 * 27 * 11}, 4, nil))
	assert.False(t, IsSmooth([]Word{0}, 4, nil))
	assert.True(t, IsSmooth([]Word{0, 1}, 0, nil))
}

func TestIsPrimeW(t *testing.T) {
	t.Parallel()

	cases := []struct {
		w     Word
		prime bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{561, false},
		// strong pseudoprimes to small bases
		{2047, false},
		{1373653, false},
		{25326001, false},
		{3215031751, false},
		{4759123141, false},
		{3825123056546413051, false},
		{4294967291, true},
		{18446744073709551557, true},
		{18446744073709551615, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.prime, IsPrimeW(c.w), "%d", c.w)
	}

	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Uint64().Draw(t, "w")
		if IsPrimeW(w) != new(big.Int).SetUint64(w).ProbablyPrime(20) {
			t.Fatalf("disagreement on %d", w)
		}
	})
}

func TestIsPrime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		x     *big.Int
		prime bool
	}{
		{"M127", mustBig("0x7fffffffffffffffffffffffffffffff"), true},
		{"F7", new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)), false},
		{"P-256", mustBig("0xffffffff00000001000000000000000000000000ffffffffffffffffffffffff"), true},
		{"P-256+2", mustBig("0xffffffff00000001000000000000000000000001000000000000000000000001"), false},
		{"sq", new(big.Int).Mul(mustBig("0x7fffffffffffffffffffffffffffffff"), mustBig("0x7fffffffffffffffffffffffffffffff")), false},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			a := fromBig(c.x, len(c.x.Bits()))
			assert.Equal(t, c.prime, IsPrime(a, nil))
		})
	}
}

func TestNextPrime(t *testing.T) {
	t.Parallel()

	start := mustBig("0x1000000000000000000000000000000000000000")
	a := fromBig(start, 3)
	p := make([]Word, 3)

	require.True(t, NextPrime(p, a, 2000, 256, 20, nil))

	got := toBig(p)
	assert.True(t, got.ProbablyPrime(20))

	// nothing prime in between
	for x := new(big.Int).Set(start); x.Cmp(got) < 0; x.Add(x, big.NewInt(1)) {
		require.False(t, x.ProbablyPrime(20), x.String())
	}

	// a word-sized start sees small primes too
	p1 := make([]Word, 1)
	require.True(t, NextPrime(p1, []Word{8}, 10, 16, 1, nil))
	assert.Equal(t, Word(11), p1[0])

	assert.False(t, NextPrime(p1, []Word{24}, 2, 16, 1, nil))
}

func TestIsSGPrime(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSGPrime([]Word{11}, nil))
	assert.True(t, IsSGPrime([]Word{5}, nil))
	assert.True(t, IsSGPrime([]Word{2}, nil))
	assert.False(t, IsSGPrime([]Word{7}, nil))
	assert.False(t, IsSGPrime([]Word{13}, nil))

	q := fromBig(mustBig("0x100000000000000000000003bb"), 2)
	assert.True(t, IsSGPrime(q, nil))

	m127 := fromBig(mustBig("0x7fffffffffffffffffffffffffffffff"), 2)
	assert.False(t, IsSGPrime(m127, nil))
}

func TestExtendPrime(t *testing.T) {
	t.Parallel()

	q := mustBig("0x7fffffffffffffffffffffffffffffff")
	l := 200
	p := make([]Word, word.OfB(l))

	err := ExtendPrime(p, l, fromBig(q, 2), 20000, 512, prng.NewCombo(1), nil)
	require.NoError(t, err)

	got := toBig(p)
	assert.Equal(t, l, got.BitLen())
	assert.True(t, got.ProbablyPrime(20))

	rem := new(big.Int).Sub(got, big.NewInt(1))
	rem.Mod(rem, new(big.Int).Lsh(q, 1))
	assert.Zero(t, rem.Sign())

	err = ExtendPrime(p, 300, fromBig(q, 2), 10, 16, prng.NewCombo(1), nil)
	assert.ErrorIs(t, err, errs.ErrBadParams)

	err = ExtendPrime(p, 127, fromBig(q, 2), 10, 16, prng.NewCombo(1), nil)
	assert.ErrorIs(t, err, errs.ErrBadParams)
}
