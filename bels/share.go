package bels

import (
	"bytes"
	"io"

	"github.com/bee2-go/bee2/brng"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/blob"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/pp"
	"github.com/bee2-go/bee2/zz"
)

func checkPublic(m0 []byte, mi [][]byte) error {
	if err := checkLen(len(m0)); err != nil {
		return err
	}

	for i, m := range mi {
		if len(m) != len(m0) {
			return errs.Wrap(errs.ErrBadLength, "bels: polynomial %d", i+1)
		}

		if bytes.Equal(m, m0) {
			return errs.Wrap(errs.ErrBadParams, "bels: polynomial %d repeats m0", i+1)
		}

		for j := 0; j < i; j++ {
			if bytes.Equal(m, mi[j]) {
				return errs.Wrap(errs.ErrBadParams, "bels: polynomial %d repeats %d", i+1, j+1)
			}
		}
	}

	return nil
}

// Share splits the secret s into len(mi) shares, any threshold of which
// recover s. Share i is s mod (x^l + mi[i]) of a random polynomial
// c = (x^l + m0)k + s with deg k < (threshold-1)l.
func Share(s []byte, threshold int, m0 []byte, mi [][]byte, rng io.Reader) ([][]byte, error) {
	if len(s) != len(m0) {
		return nil, errs.Wrap(errs.ErrBadLength, "bels: secret of %d octets", len(s))
	}

	if err := checkPublic(m0, mi); err != nil {
		return nil, err
	}

	if threshold < 1 || threshold > len(mi) {
		return nil, errs.Wrap(errs.ErrBadParams, "bels: threshold %d of %d", threshold, len(mi))
	}

	n := word.OfO(len(s))
	w := threshold*n + 1

	c := make([]word.Word, w)
	defer zz.SetZero(c)

	zz.FromOctets(c[:n], s)

	if threshold > 1 {
		kb := make([]byte, (threshold-1)*len(s))
		defer blob.Wipe(kb)

		if _, err := io.ReadFull(rng, kb); err != nil {
			return nil, errs.Wrap(errs.ErrBadRng, "%v", err)
		}

		k := make([]word.Word, (threshold-1)*n)
		defer zz.SetZero(k)

		zz.FromOctets(k, kb)

		prod := make([]word.Word, len(k)+n+1)
		defer zz.SetZero(prod)

		pp.Mul(prod, k, poly(m0, n+1), nil)
		pp.Add2(c, prod[:w])
	}

	shares := make([][]byte, len(mi))
	r := make([]word.Word, n+1)
	defer zz.SetZero(r)

	for i, m := range mi {
		pp.Mod(r, c, poly(m, n+1), nil)
		shares[i] = make([]byte, len(s))
		zz.ToOctets(shares[i], r[:n])
	}

	return shares, nil
}

// Recover restores the secret from the shares; shares[i] belongs to the
// public polynomial mi[i]. The number of shares is the threshold.
func Recover(shares [][]byte, m0 []byte, mi [][]byte) ([]byte, error) {
	if len(shares) == 0 || len(shares) != len(mi) {
		return nil, errs.Wrap(errs.ErrBadParams, "bels: %d shares for %d polynomials", len(shares), len(mi))
	}

	if err := checkPublic(m0, mi); err != nil {
		return nil, err
	}

	for i, s := range shares {
		if len(s) != len(m0) {
			return nil, errs.Wrap(errs.ErrBadLength, "bels: share %d", i+1)
		}
	}

	t := len(shares)
	n := word.OfO(len(m0))
	w := t*n + 2

	var (
		c     = make([]word.Word, w)
		g     = poly(mi[0], w)
		si    = make([]word.Word, w)
		d     = make([]word.Word, w)
		u     = make([]word.Word, w)
		v     = make([]word.Word, w)
		gf    = make([]word.Word, w)
		t1    = make([]word.Word, w)
		prod  = make([]word.Word, 2*w)
		stack = make([]word.Word, maxInt(pp.ExGCDDeep(w, w), pp.MulModDeep(w)))
	)

	defer func() {
		for _, b := range [][]word.Word{c, si, u, v, t1, prod, stack} {
			zz.SetZero(b)
		}
	}()

	zz.FromOctets(c[:n], shares[0])

	// c = c mod g, c = s_i mod f  =>  c <- u f c + v g s_i mod g f
	for i := 1; i < t; i++ {
		f := poly(mi[i], w)
		zz.SetZero(si)
		zz.FromOctets(si[:n], shares[i])

		pp.ExGCD(d, u, v, f, g, stack)
		if !zz.IsW(d, 1) {
			return nil, errs.Wrap(errs.ErrBadParams, "bels: polynomials are not coprime")
		}

		pp.Mul(prod, g, f, stack)
		copy(gf, prod[:w])

		pp.MulMod(t1, u, f, gf, stack)
		pp.MulMod(t1, t1, c, gf, stack)
		pp.MulMod(c, v, g, gf, stack)
		pp.MulMod(c, c, si, gf, stack)
		pp.Add2(c, t1)

		copy(g, gf)
	}

	r := make([]word.Word, n+1)
	defer zz.SetZero(r)

	pp.Mod(r, c, poly(m0, n+1), stack)

	s := make([]byte, len(m0))
	zz.ToOctets(s, r[:n])

	return s, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// stdPublic returns m_0 and the standard m_i for the given indices.
func stdPublic(n int, idx []int) ([]byte, [][]byte, error) {
	m0, err := Std(n, 0)
	if err != nil {
		return nil, nil, err
	}

	mi := make([][]byte, len(idx))
	for i, num := range idx {
		if num < 1 || num > MaxShares {
			return nil, nil, errs.Wrap(errs.ErrBadParams, "bels: share index %d", num)
		}

		if mi[i], err = Std(n, num); err != nil {
			return nil, nil, err
		}
	}

	return m0, mi, nil
}

func indexShares(shares [][]byte) [][]byte {
	out := make([][]byte, len(shares))
	for i, s := range shares {
		out[i] = append([]byte{byte(i + 1)}, s...)
		blob.Wipe(s)
	}

	return out
}

// Share2 splits s into count shares with the standard public polynomials.
// Each share is prefixed with its index octet (1..count).
func Share2(s []byte, threshold, count int, rng io.Reader) ([][]byte, error) {
	if count < 1 || count > MaxShares {
		return nil, errs.Wrap(errs.ErrBadParams, "bels: %d shares", count)
	}

	idx := make([]int, count)
	for i := range idx {
		idx[i] = i + 1
	}

	m0, mi, err := stdPublic(len(s), idx)
	if err != nil {
		return nil, err
	}

	shares, err := Share(s, threshold, m0, mi, rng)
	if err != nil {
		return nil, err
	}

	return indexShares(shares), nil
}

// Share3 is Share2 with the random polynomial derived from the secret by
// brng-hmac, so equal secrets give equal shares.
func Share3(s []byte, threshold, count int) ([][]byte, error) {
	g := brng.NewHMAC(s, []byte("bels-share3"))
	defer g.Wipe()

	return Share2(s, threshold, count, g)
}

// Recover2 restores the secret from shares produced by Share2 or Share3.
func Recover2(shares [][]byte) ([]byte, error) {
	if len(shares) == 0 {
		return nil, errs.Wrap(errs.ErrBadParams, "bels: no shares")
	}

	n := len(shares[0]) - 1
	idx := make([]int, len(shares))
	body := make([][]byte, len(shares))

	for i, s := range shares {
		if len(s) != n+1 {
			return nil, errs.Wrap(errs.ErrBadLength, "bels: share %d", i+1)
		}

		idx[i] = int(s[0])
		body[i] = s[1:]
	}

	m0, mi, err := stdPublic(n, idx)
	if err != nil {
		return nil, err
	}

	return Recover(body, m0, mi)
}
