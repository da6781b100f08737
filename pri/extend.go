package pri

import (
	"io"

	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/zm"
	"github.com/bee2-go/bee2/zz"
)

// ExtendPrimeDeep returns the workspace of ExtendPrime for a prime of l
// bits.
func ExtendPrimeDeep(l int) int {
	n := word.OfB(l)

	return zm.PowerModDeep(n, 2*n)
}

// ExtendPrime sets p to a prime of exactly l bits of the form 2qr + 1,
// where q is an odd prime of lq bits and lq < l <= 2lq. Primality follows
// from Demytko's theorem: since r < 2(2q + 1), p is prime once
// 4^{qr} = 1 and 4^r != 1 (mod p).
//
// The search starts from a random r and walks r, r + 1, ... for at most
// trials candidates, sieving with the first baseCount base primes. It
// returns errs.ErrNotFound when the walk ends without a prime.
func ExtendPrime(
	p []Word,
	l int,
	q []Word,
	trials, baseCount int,
	rng io.Reader,
	stack []Word,
) error {
	q = q[:zz.WordSize(q)]
	lq := zz.BitSize(q)

	if lq < 2 || zz.IsEven(q) || l <= lq || l > 2*lq {
		return errs.Wrap(errs.ErrBadParams, "cannot extend a %d-bit prime to %d bits", lq, l)
	}

	n := word.OfB(l)
	if len(p) < n {
		return errs.Wrap(errs.ErrBadLength, "prime buffer of %d words", len(p))
	}

	// q2 = 2q
	q2 := make([]Word, len(q)+1)
	copy(q2, q)
	zz.ShHi(q2, 1)
	q2 = q2[:zz.WordSize(q2)]

	// a random l-bit x gives r = x / 2q
	x := make([]Word, n)
	buf := make([]byte, n*word.O)

	if _, err := io.ReadFull(rng, buf[:(l+7)/8]); err != nil {
		return errs.Wrap(errs.ErrBadRng, "%v", err)
	}

	zz.FromOctets(x, buf)

	for i := l; i < n*word.B; i++ {
		zz.SetBit(x, i, 0)
	}

	zz.SetBit(x, l-1, 1)

	r := make([]Word, n)
	rem := make([]Word, len(q2))

	if len(q2) > n {
		return errs.ErrBadParams
	}

	zz.Div(r[:n-len(q2)+1], rem, x, q2, nil)

	if zz.IsZeroFast(r) {
		r[0] = 1
	}

	// p = 2qr + 1
	prod := make([]Word, n+len(q2))
	zz.Mul(prod, r, q2)
	zz.SetZero(p[:n])
	copy(p[:n], prod[:n])
	zz.AddW2(p[:n], 1)

	if zz.BitSize(p[:n]) < l {
		zz.AddW2(r, 1)
		zz.Add3(p[:n], p[:n], q2)
	}

	baseCount = clampCount(baseCount)
	mods := make([]Word, baseCount)
	steps := make([]Word, baseCount)

	BaseMod(mods, p[:n])
	BaseMod(steps, q2)

	e := make([]Word, n+len(q))
	four := make([]Word, n)
	c := make([]Word, n)

	if len(stack) < ExtendPrimeDeep(l) {
		stack = make([]Word, ExtendPrimeDeep(l))
	}

	for i := 0; i < trials; i++ {
		if i > 0 {
			zz.AddW2(r, 1)

			if zz.Add3(p[:n], p[:n], q2) != 0 || zz.BitSize(p[:n]) > l {
				break
			}

			for j := range mods {
				if mods[j] += steps[j]; mods[j] >= base[j] {
					mods[j] -= base[j]
				}
			}
		}

		if !sieved(p[:n], mods) {
			continue
		}

		zz.SetZero(four)
		four[0] = 4

		// 4^{qr} = 1
		zz.Mul(e, r, q)

		if err := zm.PowerMod(c, four, e, p[:n], stack); err != nil || !zz.IsW(c, 1) {
			continue
		}

		// 4^r != 1
		if err := zm.PowerMod(c, four, r, p[:n], stack); err != nil || zz.IsW(c, 1) {
			continue
		}

		return nil
	}

	zz.SetZero(p[:n])

	return errs.Wrap(errs.ErrNotFound, "no prime among %d candidates", trials)
}
