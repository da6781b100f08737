package zz

import (
	"io"

	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/word"
)

func randMod(b, mod []Word, rng io.Reader, nonZero bool) error {
	n := WordSize(mod)
	if n == 0 {
		return errs.ErrBadParams
	}

	bitLen := BitSize(mod)
	buf := make([]byte, word.OfB(bitLen)*word.O)

	SetZero(b[:len(mod)])

	for i := 0; i < BPerImpossible; i++ {
		if _, err := io.ReadFull(rng, buf[:(bitLen+7)/8]); err != nil {
			return errs.Wrap(errs.ErrBadRng, "%v", err)
		}

		FromOctets(b[:n], buf[:(bitLen+7)/8])

		if r := bitLen % word.B; r != 0 {
			b[n-1] &= (Word(1) << uint(r)) - 1
		}

		if CmpFast(b[:n], mod[:n]) < 0 && (!nonZero || !IsZeroFast(b[:n])) {
			return nil
		}
	}

	SetZero(b[:len(mod)])

	return errs.ErrBadRng
}

// RandMod sets b to a uniformly random number in [0, m) drawn from rng.
// After BPerImpossible rejected candidates the generator is considered
// broken and ErrBadRng is returned.
func RandMod(b, mod []Word, rng io.Reader) error {
	return randMod(b, mod, rng, false)
}

// RandNZMod sets b to a uniformly random number in [1, m).
func RandNZMod(b, mod []Word, rng io.Reader) error {
	return randMod(b, mod, rng, true)
}
