package belt

import (
	"github.com/bee2-go/bee2/errs"
)

// KRP derives a key of n octets (16, 24 or 32) from key. The 12-octet
// level and the 16-octet header separate derived keys from one another.
func KRP(key []byte, n int, level, header []byte) ([]byte, error) {
	if n != 16 && n != 24 && n != 32 || n > len(key) {
		return nil, errs.Wrap(errs.ErrBadLength, "krp: %d octets out of %d", n, len(key))
	}

	if len(level) != 12 || len(header) != 16 {
		return nil, errs.Wrap(errs.ErrBadLength, "krp: level or header")
	}

	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}
	defer k.Wipe()

	var (
		x [64]byte
		y [32]byte
	)

	r := 4*(len(key)-16) + 2*(n-16)
	copy(x[:4], H[r:r+4])
	copy(x[4:16], level)
	copy(x[16:32], header)
	word32s(x[32:], &k)
	Compr(y[:], nil, x[:])

	out := make([]byte, n)
	copy(out, y[:n])

	for i := range x {
		x[i] = 0
	}

	return out, nil
}

func word32s(dst []byte, k *Key) {
	putWords(dst, k[0], k[1], k[2], k[3])
	putWords(dst[16:], k[4], k[5], k[6], k[7])
}
