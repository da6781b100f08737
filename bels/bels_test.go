package bels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bee2-go/bee2/belt"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/pp"
	"github.com/bee2-go/bee2/prng"
	"github.com/bee2-go/bee2/zz"
)

func TestStd(t *testing.T) {
	t.Parallel()

	for _, n := range []int{16, 24, 32} {
		for num := 0; num <= MaxShares; num++ {
			m, err := Std(n, num)
			require.NoError(t, err)
			assert.Len(t, m, n)
			assert.NoError(t, ValidateM(m), "n=%d num=%d", n, num)
		}
	}

	_, err := Std(20, 0)
	assert.ErrorIs(t, err, errs.ErrBadLength)

	_, err = Std(16, 17)
	assert.ErrorIs(t, err, errs.ErrBadParams)

	// x^128 + x^2 is reducible
	bad := make([]byte, 16)
	bad[0] = 4
	assert.ErrorIs(t, ValidateM(bad), errs.ErrBadParams)
}

func TestStdMinimal(t *testing.T) {
	t.Parallel()

	if testing.Short() {
		t.Skip("scans thousands of candidate polynomials")
	}

	for l, table := range stdLow {
		w := l/64 + 1
		stack := make([]word.Word, pp.IsIrredDeep(w))

		var found []word.Word

		// x divides x^l + m for even m
		for m := word.Word(1); len(found) <= MaxShares; m += 2 {
			f := make([]word.Word, w)
			f[0] = m
			zz.SetBit(f, l, 1)

			if pp.IsIrred(f, stack) {
				found = append(found, m)
			}
		}

		assert.Equal(t, table[:], found, "l=%d", l)
	}
}

func TestGen(t *testing.T) {
	t.Parallel()

	rng := prng.NewCombo(1)

	m0, err := GenM0(16, rng)
	require.NoError(t, err)
	require.NoError(t, ValidateM(m0))

	mi, err := GenMi(m0, rng)
	require.NoError(t, err)
	assert.NoError(t, ValidateM(mi))
	assert.NotEqual(t, m0, mi)

	id1, err := GenMid(m0, []byte("alice"))
	require.NoError(t, err)
	assert.NoError(t, ValidateM(id1))

	id2, err := GenMid(m0, []byte("alice"))
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	id3, err := GenMid(m0, []byte("bob"))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)
}

func TestShareRecover(t *testing.T) {
	t.Parallel()

	for _, n := range []int{16, 24, 32} {
		secret := belt.H[:n]

		m0, err := Std(n, 0)
		require.NoError(t, err)

		mi := make([][]byte, 5)
		for i := range mi {
			mi[i], err = Std(n, i+1)
			require.NoError(t, err)
		}

		shares, err := Share(secret, 3, m0, mi, prng.NewCombo(uint32(n)))
		require.NoError(t, err)
		require.Len(t, shares, 5)

		s, err := Recover(
			[][]byte{shares[4], shares[0], shares[2]},
			m0,
			[][]byte{mi[4], mi[0], mi[2]},
		)
		require.NoError(t, err)
		assert.Equal(t, secret, s)

		// fewer shares than the threshold give something else
		s, err = Recover(shares[:2], m0, mi[:2])
		require.NoError(t, err)
		assert.NotEqual(t, secret, s)
	}
}

func TestShareParams(t *testing.T) {
	t.Parallel()

	m0, _ := Std(16, 0)
	m1, _ := Std(16, 1)

	_, err := Share(belt.H[:16], 2, m0, [][]byte{m1, m1}, prng.NewCombo(1))
	assert.ErrorIs(t, err, errs.ErrBadParams)

	_, err = Share(belt.H[:16], 3, m0, [][]byte{m1}, prng.NewCombo(1))
	assert.ErrorIs(t, err, errs.ErrBadParams)

	_, err = Share(belt.H[:15], 1, m0, [][]byte{m1}, prng.NewCombo(1))
	assert.ErrorIs(t, err, errs.ErrBadLength)
}

func TestShare3RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		secret := rapid.SliceOfN(rapid.Byte(), 16, 16).Draw(t, "secret")
		count := rapid.IntRange(1, MaxShares).Draw(t, "count")
		threshold := rapid.IntRange(1, count).Draw(t, "threshold")
		pick := rapid.Permutation(seq(count)).Draw(t, "pick")[:threshold]

		shares, err := Share3(secret, threshold, count)
		require.NoError(t, err)

		again, err := Share3(secret, threshold, count)
		require.NoError(t, err)
		assert.Equal(t, shares, again)

		chosen := make([][]byte, threshold)
		for i, j := range pick {
			chosen[i] = shares[j]
		}

		s, err := Recover2(chosen)
		require.NoError(t, err)
		assert.Equal(t, secret, s)
	})
}

func TestShare2(t *testing.T) {
	t.Parallel()

	shares, err := Share2(belt.H[:32], 2, 3, prng.NewCombo(5))
	require.NoError(t, err)

	for i, s := range shares {
		assert.Equal(t, byte(i+1), s[0])
		assert.Len(t, s, 33)
	}

	s, err := Recover2([][]byte{shares[2], shares[1]})
	require.NoError(t, err)
	assert.Equal(t, belt.H[:32], s)

	bad := append([]byte{0}, shares[0][1:]...)
	_, err = Recover2([][]byte{bad, shares[1]})
	assert.ErrorIs(t, err, errs.ErrBadParams)
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
