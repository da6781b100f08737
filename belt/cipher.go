package belt

import (
	"crypto/cipher"
)

type block struct {
	key Key
}

// NewCipher returns belt as a crypto/cipher.Block so that the standard
// mode implementations can be layered on top of it.
func NewCipher(key []byte) (cipher.Block, error) {
	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	return &block{key: k}, nil
}

func (b *block) BlockSize() int { return BlockSize }

func (b *block) Encrypt(dst, src []byte) {
	copy(dst[:BlockSize], src[:BlockSize])
	BlockEncr(dst, &b.key)
}

func (b *block) Decrypt(dst, src []byte) {
	copy(dst[:BlockSize], src[:BlockSize])
	BlockDecr(dst, &b.key)
}
