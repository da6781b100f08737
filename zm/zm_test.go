package zm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/qr"
	"github.com/bee2-go/bee2/zz"
)

// leBytes encodes x into exactly no little-endian octets.
func leBytes(x *big.Int, no int) []byte {
	be := x.FillBytes(make([]byte, no))
	for i, j := 0, len(be)-1; i < j; i, j = i+1, j-1 {
		be[i], be[j] = be[j], be[i]
	}

	return be
}

func fromLE(buf []byte) *big.Int {
	be := make([]byte, len(buf))
	for i := range buf {
		be[len(buf)-1-i] = buf[i]
	}

	return new(big.Int).SetBytes(be)
}

// p256 is 2^256 - 2^224 + 2^192 + 2^96 - 1.
var p256, _ = new(big.Int).SetString("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff", 16)

// crandall256 is the prime 2^256 - 189.
var crandall256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(189))

func TestCreateDispatch(t *testing.T) {
	t.Parallel()

	even4 := new(big.Int).Lsh(p256, 1)
	even3 := new(big.Int).Lsh(big.NewInt(3), 140)

	cases := []struct {
		name string
		mod  *big.Int
		red  Reduction
	}{
		{"one word", big.NewInt(1000003), Plain},
		{"two words", new(big.Int).Lsh(big.NewInt(5), 100), Plain},
		{"crandall", crandall256, Crandall},
		{"odd", p256, Mont},
		{"even long", even4, Barrett},
		{"even short", even3, Plain},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			r, err := Create(leBytes(c.mod, (c.mod.BitLen()+7)/8))
			require.NoError(t, err)
			assert.Equal(t, c.red, r.Reduction())
			assert.NoError(t, qr.IsOperable(r))
		})
	}
}

func TestCreateErrors(t *testing.T) {
	t.Parallel()

	_, err := Create([]byte{1})
	assert.Error(t, err)

	_, err = Create([]byte{5, 0})
	assert.Error(t, err)

	_, err = CreateWith(leBytes(p256, 32), Crandall)
	assert.Error(t, err)

	_, err = CreateWith([]byte{4, 1}, Mont)
	assert.Error(t, err)

	_, err = CreateMont(leBytes(p256, 32), 128)
	assert.Error(t, err)
}

func TestRingArithmetic(t *testing.T) {
	t.Parallel()

	reductions := []Reduction{Plain, Crandall, Barrett, Mont, CrandallMont}

	for _, red := range reductions {
		red := red
		t.Run(red.String(), func(t *testing.T) {
			t.Parallel()

			mod := crandall256
			r, err := CreateWith(leBytes(mod, 32), red)
			require.NoError(t, err)

			rapid.Check(t, func(tt *rapid.T) {
				x := new(big.Int).SetBytes(rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(tt, "x"))
				y := new(big.Int).SetBytes(rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(tt, "y"))
				x.Mod(x, mod)
				y.Mod(y, mod)

				a, b, c := r.Base().Elem(), r.Base().Elem(), r.Base().Elem()
				require.True(tt, r.From(a, leBytes(x, 32), nil))
				require.True(tt, r.From(b, leBytes(y, 32), nil))

				out := make([]byte, 32)
				check := func(exp *big.Int) {
					r.To(out, c, nil)
					assert.Equal(tt, exp.Mod(exp, mod), fromLE(out))
				}

				r.Add(c, a, b, nil)
				check(new(big.Int).Add(x, y))
				r.Sub(c, a, b, nil)
				check(new(big.Int).Sub(x, y))
				r.Neg(c, a, nil)
				check(new(big.Int).Neg(x))
				r.Mul(c, a, b, nil)
				check(new(big.Int).Mul(x, y))
				r.Sqr(c, a, nil)
				check(new(big.Int).Mul(x, x))

				r.Inv(c, a, nil)
				if x.Sign() == 0 {
					assert.True(tt, r.Base().IsZero(c))
				} else {
					check(new(big.Int).ModInverse(x, mod))
					r.Mul(c, c, a, nil)
					assert.True(tt, r.Base().IsUnity(c))
				}

				if x.Sign() != 0 {
					r.Div(c, b, a, nil)
					exp := new(big.Int).Mul(y, new(big.Int).ModInverse(x, mod))
					check(exp)
				}
			})
		})
	}
}

func TestFromRejects(t *testing.T) {
	t.Parallel()

	r, err := Create(leBytes(p256, 32))
	require.NoError(t, err)

	a := r.Base().Elem()
	assert.False(t, r.From(a, leBytes(p256, 32), nil))
	assert.False(t, r.From(a, make([]byte, 31), nil))
	assert.True(t, r.From(a, leBytes(new(big.Int).Sub(p256, big.NewInt(1)), 32), nil))
}

func TestCreateMont(t *testing.T) {
	t.Parallel()

	r, err := CreateMont(leBytes(p256, 32), 320)
	require.NoError(t, err)
	require.Equal(t, 5, r.Base().N)

	x := big.NewInt(123456789)
	y := new(big.Int).Sub(p256, big.NewInt(2))
	a, b := r.Base().Elem(), r.Base().Elem()
	require.True(t, r.From(a, leBytes(x, 32), nil))
	require.True(t, r.From(b, leBytes(y, 32), nil))

	r.Mul(a, a, b, nil)

	out := make([]byte, 32)
	r.To(out, a, nil)

	exp := new(big.Int).Mul(x, y)
	assert.Equal(t, exp.Mod(exp, p256), fromLE(out))

	r.Inv(b, a, nil)
	r.Mul(b, b, a, nil)
	assert.True(t, r.Base().IsUnity(b))
}

func TestPowerMod(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(tt *rapid.T) {
		mod := rapid.SliceOfN(rapid.Uint64(), 8, 8).Draw(tt, "mod")
		if mod[7] == 0 {
			mod[7] = 1
		}

		a := rapid.SliceOfN(rapid.Uint64(), 8, 8).Draw(tt, "a")
		zz.Mod(a, a, mod, nil)

		c := make([]word.Word, 8)
		require.NoError(tt, PowerMod(c, a, []word.Word{3}, mod, nil))

		exp := make([]word.Word, 8)
		zz.SqrMod(exp, a, mod, nil)
		zz.MulMod(exp, exp, a, mod, nil)
		assert.Equal(tt, exp, c)

		e := rapid.SliceOfN(rapid.Uint64(), 1, 3).Draw(tt, "e")
		require.NoError(tt, PowerMod(c, a, e, mod, nil))

		toBig := func(v []word.Word) *big.Int {
			buf := make([]byte, len(v)*8)
			zz.ToOctets(buf, v)

			return fromLE(buf)
		}

		want := new(big.Int).Exp(toBig(a), toBig(e), toBig(mod))
		assert.Zero(tt, want.Cmp(toBig(c)), "want %s, got %s", want, toBig(c))
	})
}
