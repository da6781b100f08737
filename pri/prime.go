package pri

import (
	"crypto/rand"
	"encoding/binary"
	"math/bits"
	"time"

	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/prng"
	"github.com/bee2-go/bee2/qr"
	"github.com/bee2-go/bee2/zm"
	"github.com/bee2-go/bee2/zz"
)

var (
	witnesses1 = []Word{2, 3}
	witnesses2 = []Word{2, 7, 61}
	witnesses3 = []Word{2, 325, 9375, 28178, 450775, 9780504, 1795265022}
)

func mulModW(a, b, m Word) Word {
	hi, lo := bits.Mul64(a, b)
	_, r := bits.Div64(hi, lo, m)

	return r
}

func powModW(a, e, m Word) Word {
	r := Word(1)

	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			r = mulModW(r, a, m)
		}

		a = mulModW(a, a, m)
	}

	return r
}

// IsPrimeW reports whether w is prime by a deterministic Miller-Rabin
// test with witness sets that are known to be exact below 2^64.
func IsPrimeW(w Word) bool {
	switch {
	case w < 2:
		return false
	case w < 4:
		return true
	case w&1 == 0:
		return false
	}

	witnesses := witnesses3

	switch {
	case w < 1373653:
		witnesses = witnesses1
	case w < 4759123141:
		witnesses = witnesses2
	}

	r := w - 1
	s := word.CTZ(r)
	r >>= uint(s)

next:
	for _, base := range witnesses {
		if base %= w; base == 0 {
			continue
		}

		x := powModW(base, r, w)
		if x == 1 || x == w-1 {
			continue
		}

		for i := 1; i < s; i++ {
			if x = mulModW(x, x, w); x == w-1 {
				continue next
			} else if x == 1 {
				return false
			}
		}

		return false
	}

	return true
}

func octets(a []Word) []byte {
	buf := make([]byte, len(a)*word.O)
	zz.ToOctets(buf, a)

	no := len(buf)
	for no > 0 && buf[no-1] == 0 {
		no--
	}

	return buf[:no]
}

// baseRng returns the generator of Rabin-Miller bases. The bases need to
// be unpredictable to whoever chose the candidate, not secret.
func baseRng() *prng.Combo {
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return prng.NewCombo(uint32(time.Now().UnixNano()))
	}

	return prng.NewCombo(binary.LittleEndian.Uint32(seed[:]))
}

// RMTestDeep returns the workspace of RMTest for an n-word candidate.
func RMTestDeep(n int) int {
	return zm.PowerModDeep(n, n)
}

// RMTest runs iter rounds of the Rabin-Miller test on a in Montgomery
// form. Every round draws a base from [2, a-2]. A composite survives a
// round with probability at most 1/4.
func RMTest(a []Word, iter int, stack []Word) bool {
	a = a[:zz.WordSize(a)]
	n := len(a)

	switch {
	case n == 0:
		return false
	case n == 1:
		return IsPrimeW(a[0])
	case zz.IsEven(a):
		return false
	}

	ring, err := zm.CreateWith(octets(a), zm.Mont)
	if err != nil {
		return false
	}

	if len(stack) < RMTestDeep(n) {
		stack = make([]Word, RMTestDeep(n))
	}

	// a - 1 = 2^s r
	r := make([]Word, n)
	zz.SubW(r, a, 1)
	s := zz.TrailingZeros(r)
	zz.ShLo(r, s)

	bound := make([]Word, n)
	zz.SubW(bound, a, 3)

	base := ring.Base()
	minusOne := base.Elem()
	ring.Neg(minusOne, base.Unity, stack)

	x := base.Elem()
	rng := baseRng()

next:
	for i := 0; i < iter; i++ {
		if err := zz.RandMod(x, bound, rng); err != nil {
			return false
		}

		zz.AddW2(x, 2)
		ring.FromWords(x, x, stack)
		qr.Power(x, x, r, ring, stack)

		if base.IsUnity(x) || base.Eq(x, minusOne) {
			continue
		}

		for j := 1; j < s; j++ {
			ring.Sqr(x, x, stack)

			if base.Eq(x, minusOne) {
				continue next
			}

			if base.IsUnity(x) {
				return false
			}
		}

		return false
	}

	return true
}

// IsPrimeDeep returns the workspace of IsPrime.
func IsPrimeDeep(n int) int {
	return RMTestDeep(n)
}

// IsPrime reports whether a is prime. Words are decided exactly; longer
// numbers are sieved and then run through (BPerImpossible+1)/2 rounds of
// Rabin-Miller, so that a composite passes with probability below
// 2^-BPerImpossible.
func IsPrime(a []Word, stack []Word) bool {
	n := zz.WordSize(a)
	if n <= 1 {
		return n == 1 && IsPrimeW(a[0])
	}

	if !IsSieved(a[:n], BaseSize, stack) {
		return false
	}

	return RMTest(a[:n], (zz.BPerImpossible+1)/2, stack)
}

// NextPrimeDeep returns the workspace of NextPrime.
func NextPrimeDeep(n int) int {
	return RMTestDeep(n)
}

// NextPrime sets p to the smallest prime found among at most trials odd
// candidates starting from a (made odd). The residues of the candidate
// modulo the first baseCount base primes are kept up to date
// incrementally, so that most candidates are rejected without division.
// It returns false when no prime is found or when the candidate outgrows
// the bit length of a.
func NextPrime(p, a []Word, trials, baseCount, iter int, stack []Word) bool {
	n := len(a)
	l := zz.BitSize(a)

	if l == 0 {
		return false
	}

	copy(p[:n], a)
	p[0] |= 1

	baseCount = clampCount(baseCount)
	mods := make([]Word, baseCount)
	BaseMod(mods, p[:n])

	for i := 0; i < trials; i++ {
		if i > 0 {
			if zz.AddW2(p[:n], 2) != 0 || zz.BitSize(p[:n]) > l {
				return false
			}

			for j := range mods {
				if mods[j] += 2; mods[j] >= base[j] {
					mods[j] -= base[j]
				}
			}
		}

		if sieved(p[:n], mods) && RMTest(p[:n], iter, stack) {
			return true
		}
	}

	return false
}

// sieved reports whether a candidate with residues mods survives the
// sieve. Small base primes are recognized as primes.
func sieved(a, mods []Word) bool {
	for j, m := range mods {
		if m == 0 {
			return zz.IsW(a, base[j])
		}
	}

	return true
}

// IsSGPrimeDeep returns the workspace of IsSGPrime.
func IsSGPrimeDeep(n int) int {
	return zm.PowerModDeep(n+1, n)
}

// IsSGPrime reports whether p = 2q + 1 is prime for a prime q. By
// Pocklington's criterion this holds iff 4^q = 1 (mod p) and 3 does not
// divide p, unless p = 3 itself.
func IsSGPrime(q []Word, stack []Word) bool {
	n := zz.WordSize(q)
	if n == 0 {
		return false
	}

	p := make([]Word, n+1)
	copy(p, q[:n])
	zz.ShHi(p, 1)
	zz.AddW2(p, 1)

	if zz.IsW(p, 3) {
		return true
	}

	if zz.ModW(p, 3) == 0 {
		return false
	}

	p = p[:zz.WordSize(p)]

	four := make([]Word, len(p))
	four[0] = 4

	c := make([]Word, len(p))
	if err := zm.PowerMod(c, four, q[:n], p, stack); err != nil {
		return false
	}

	return zz.IsW(c, 1)
}
