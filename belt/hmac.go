package belt

import (
	"crypto/hmac"
	"hash"

	"golang.org/x/crypto/pbkdf2"

	"github.com/bee2-go/bee2/errs"
)

// NewHMAC returns HMAC over belt-hash keyed with key.
func NewHMAC(key []byte) hash.Hash {
	return hmac.New(NewHash, key)
}

// HMAC returns the HMAC of data under key.
func HMAC(data, key []byte) []byte {
	m := NewHMAC(key)
	m.Write(data) //nolint:errcheck

	return m.Sum(nil)
}

// PBKDF2 derives a 32-octet key from a password. The iteration count
// must be positive; at least 10000 is recommended.
func PBKDF2(pwd, salt []byte, iter int) ([]byte, error) {
	if iter <= 0 {
		return nil, errs.Wrap(errs.ErrBadInput, "pbkdf2: %d iterations", iter)
	}

	return pbkdf2.Key(pwd, salt, iter, KeySize, NewHash), nil
}
