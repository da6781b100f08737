package ec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNAFWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, NAFWidth(1))
	assert.Equal(t, 3, NAFWidth(39))
	assert.Equal(t, 4, NAFWidth(40))
	assert.Equal(t, 5, NAFWidth(256))
	assert.Equal(t, 6, NAFWidth(521))
}

func TestNAF(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		d := rapid.SliceOfN(rapid.Uint64(), 1, 5).Draw(t, "d")
		w := rapid.IntRange(2, 6).Draw(t, "w")

		naf := NAF(d, w)

		want := new(big.Int)
		for i := len(d) - 1; i >= 0; i-- {
			want.Lsh(want, 64)
			want.Or(want, new(big.Int).SetUint64(d[i]))
		}

		got := new(big.Int)
		last := -w

		for i := len(naf) - 1; i >= 0; i-- {
			got.Lsh(got, 1)
			got.Add(got, big.NewInt(int64(naf[i])))
		}

		for i, digit := range naf {
			if digit == 0 {
				continue
			}

			if digit%2 == 0 || digit >= 1<<uint(w-1) || -digit >= 1<<uint(w-1) {
				t.Fatalf("digit %d at %d", digit, i)
			}

			if i-last < w {
				t.Fatalf("digits at %d and %d are too close", last, i)
			}

			last = i
		}

		if got.Cmp(want) != 0 {
			t.Fatalf("NAF value %s, want %s", got, want)
		}

		if len(naf) > 0 && naf[len(naf)-1] == 0 {
			t.Fatalf("leading zero digit")
		}
	})
}

func TestNAFZero(t *testing.T) {
	t.Parallel()

	assert.Empty(t, NAF([]Word{0, 0}, 4))
	assert.Equal(t, []int8{-1, 0, 1}, NAF([]Word{3}, 2))
	assert.Equal(t, []int8{3}, NAF([]Word{3}, 3))
}
