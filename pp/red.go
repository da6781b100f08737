package pp

import (
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/zz"
)

// Trinomial describes x^M + x^K + 1.
type Trinomial struct {
	M, K int
}

// Pentanomial describes x^M + x^K1 + x^K2 + x^K3 + 1 with K1 > K2 > K3.
type Pentanomial struct {
	M, K1, K2, K3 int
}

// Words returns the number of words of a reduced polynomial.
func (t Trinomial) Words() int { return word.OfB(t.M) }

// Words returns the number of words of a reduced polynomial.
func (p Pentanomial) Words() int { return word.OfB(p.M) }

// Fast reports whether the word-level reduction applies: every low term
// lies at least one word below the leading one.
func (t Trinomial) Fast() bool { return t.M-t.K >= word.B && t.K > 0 }

// Fast reports whether the word-level reduction applies.
func (p Pentanomial) Fast() bool {
	return p.M-p.K1 >= word.B && p.K1 > p.K2 && p.K2 > p.K3 && p.K3 > 0
}

// Poly returns the modulus as a word array of Words()+1 words when M is a
// multiple of 64 and Words() words otherwise.
func (t Trinomial) Poly() []Word {
	f := make([]Word, word.OfB(t.M+1))
	zz.SetBit(f, t.M, 1)
	zz.SetBit(f, t.K, 1)
	zz.SetBit(f, 0, 1)

	return f
}

// Poly returns the modulus as a word array.
func (p Pentanomial) Poly() []Word {
	f := make([]Word, word.OfB(p.M+1))
	for _, k := range []int{p.M, p.K1, p.K2, p.K3, 0} {
		zz.SetBit(f, k, 1)
	}

	return f
}

// xorWordAt sets a ^= w * x^pos, dropping bits past len(a).
func xorWordAt(a []Word, w Word, pos int) {
	i, s := pos/word.B, uint(pos%word.B)
	if i < len(a) {
		a[i] ^= w << s
	}

	if s != 0 && i+1 < len(a) {
		a[i+1] ^= w >> (word.B - s)
	}
}

// redSparse reduces a, which holds 2*ceil(m/64) words, modulo
// x^m + sum x^k for exponents ks, each at most m-64.
func redSparse(a []Word, m int, ks []int) {
	n := word.OfB(m)
	mw, mb := m/word.B, uint(m%word.B)

	for i := 2*n - 1; i > mw; i-- {
		t := a[i]
		a[i] = 0

		for _, k := range ks {
			xorWordAt(a, t, i*word.B-m+k)
		}
	}

	t := a[mw] >> mb
	if mb == 0 {
		a[mw] = 0
	} else {
		a[mw] &= (Word(1) << mb) - 1
	}

	for _, k := range ks {
		xorWordAt(a, t, k)
	}
}

// RedTrinomial reduces a of 2*t.Words() words modulo the trinomial; the
// result is left in a[:t.Words()] and the rest of a is zeroed.
// t.Fast() must hold.
func RedTrinomial(a []Word, t Trinomial) {
	redSparse(a, t.M, []int{t.K, 0})
	zz.SetZero(a[t.Words():])
}

// RedPentanomial reduces a of 2*p.Words() words modulo the pentanomial.
// p.Fast() must hold.
func RedPentanomial(a []Word, p Pentanomial) {
	redSparse(a, p.M, []int{p.K1, p.K2, p.K3, 0})
	zz.SetZero(a[p.Words():])
}

// BeltPoly is x^128 + x^7 + x^2 + x + 1, the modulus of GF(2^128) used by
// authenticated encryption modes.
var BeltPoly = Pentanomial{M: 128, K1: 7, K2: 2, K3: 1}

// RedBelt reduces a 4-word polynomial modulo BeltPoly into a[:2].
func RedBelt(a []Word) {
	for i := 3; i >= 2; i-- {
		t := a[i]
		a[i] = 0
		// x^128 = x^7 + x^2 + x + 1
		a[i-2] ^= t ^ (t << 1) ^ (t << 2) ^ (t << 7)
		a[i-1] ^= (t >> 63) ^ (t >> 62) ^ (t >> 57)
	}
}
