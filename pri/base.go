// Package pri implements primality tests and prime generation: a factor
// base of small odd primes, sieving, deterministic Miller-Rabin for words,
// probabilistic Rabin-Miller for multi-word numbers, and the Demytko
// extension of a known prime.
package pri

import (
	"math/bits"

	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/zz"
)

// Word is the digit of the numbers tested.
type Word = word.Word

// BaseSize is the number of odd primes in the factor base.
const BaseSize = 1024

// baseGroup is a run of consecutive base primes whose product fits a word.
type baseGroup struct {
	prod       Word
	start, end int
}

var (
	base   [BaseSize]Word
	groups []baseGroup
)

func init() {
	// the 1024th odd prime is 8167
	const limit = 8192

	composite := make([]bool, limit)
	k := 0

	for p := 3; p < limit && k < BaseSize; p += 2 {
		if composite[p] {
			continue
		}

		base[k] = Word(p)
		k++

		for q := p * p; q < limit; q += 2 * p {
			composite[q] = true
		}
	}

	for i := 0; i < BaseSize; {
		g := baseGroup{prod: base[i], start: i}

		for g.end = i + 1; g.end < BaseSize; g.end++ {
			hi, lo := bits.Mul64(g.prod, base[g.end])
			if hi != 0 {
				break
			}

			g.prod = lo
		}

		groups = append(groups, g)
		i = g.end
	}
}

// BasePrime returns the i-th odd prime of the factor base: 3, 5, 7, ...
func BasePrime(i int) Word {
	return base[i]
}

func clampCount(count int) int {
	switch {
	case count < 0:
		return 0
	case count > BaseSize:
		return BaseSize
	}

	return count
}

// BaseMod sets mods[i] = a mod p_i for the first len(mods) base primes.
// Every product of a group is divided out once; the residues of its
// primes follow by single-word divisions.
func BaseMod(mods []Word, a []Word) {
	count := clampCount(len(mods))

	for _, g := range groups {
		if g.start >= count {
			break
		}

		r := zz.ModW(a, g.prod)

		for i := g.start; i < g.end && i < count; i++ {
			mods[i] = r % base[i]
		}
	}
}

// IsSieved reports whether a is odd and coprime to the first count base
// primes. A base prime itself is not sieved.
func IsSieved(a []Word, count int, stack []Word) bool {
	if zz.IsEven(a) {
		return false
	}

	count = clampCount(count)
	if count == 0 {
		return true
	}

	mods := make([]Word, count)
	BaseMod(mods, a)

	for _, m := range mods {
		if m == 0 {
			return false
		}
	}

	return true
}

// IsSmooth reports whether a > 0 factors over 2 and the first count base
// primes.
func IsSmooth(a []Word, count int, stack []Word) bool {
	t := make([]Word, len(a))
	copy(t, a)

	if zz.IsZeroFast(t) {
		return false
	}

	zz.ShLo(t, zz.TrailingZeros(t))

	count = clampCount(count)
	for i := 0; i < count && !zz.IsW(t, 1); i++ {
		for zz.ModW(t, base[i]) == 0 {
			zz.DivW(t, t, base[i])
		}
	}

	return zz.IsW(t, 1)
}
