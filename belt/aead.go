package belt

import (
	"crypto/cipher"
	"encoding/binary"

	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/blob"
)

// authEnc is the common core of DWP and CHE. The modes differ only in how
// the counter advances and in the choice of the hashing key.
type authEnc struct {
	key      Key
	ctr      [BlockSize]byte
	gamma    [BlockSize]byte
	reserved int
	next     func(ctr []byte)
	hash     polyHash
	lenI     uint64
	lenX     uint64
	critical bool
}

// StepI absorbs open (associated) data. All open data must be supplied
// before any ciphertext is absorbed.
func (a *authEnc) StepI(p []byte) error {
	if a.critical {
		return errs.Wrap(errs.ErrBadLogic, "open data after critical data")
	}

	a.hash.write(p)
	a.lenI += uint64(len(p))

	return nil
}

func (a *authEnc) crypt(buf []byte) {
	for i := range buf {
		if a.reserved == 0 {
			a.next(a.ctr[:])
			a.gamma = a.ctr
			BlockEncr(a.gamma[:], &a.key)
			a.reserved = BlockSize
		}

		buf[i] ^= a.gamma[BlockSize-a.reserved]
		a.reserved--
	}
}

// StepE encrypts buf in place.
func (a *authEnc) StepE(buf []byte) { a.crypt(buf) }

// StepD decrypts buf in place.
func (a *authEnc) StepD(buf []byte) { a.crypt(buf) }

// StepA absorbs ciphertext.
func (a *authEnc) StepA(buf []byte) {
	if !a.critical {
		a.hash.flush()
		a.critical = true
	}

	a.hash.write(buf)
	a.lenX += uint64(len(buf))
}

// StepG returns the 8-octet tag. The state is not consumed: more
// ciphertext may follow and a later StepG covers it too.
func (a *authEnc) StepG() []byte {
	h := a.hash
	h.flush()

	var (
		lens [BlockSize]byte
		t    [BlockSize]byte
	)

	binary.LittleEndian.PutUint64(lens[:], a.lenI*8)
	binary.LittleEndian.PutUint64(lens[8:], a.lenX*8)
	h.absorb(lens[:])
	h.sum(t[:])
	h.wipe()
	BlockEncr(t[:], &a.key)

	return t[:MACSize]
}

// StepV reports whether tag matches the data absorbed so far.
func (a *authEnc) StepV(tag []byte) bool {
	return blob.Equal(a.StepG(), tag)
}

// Wipe zeroes the state.
func (a *authEnc) Wipe() {
	a.key.Wipe()
	a.ctr = [BlockSize]byte{}
	a.gamma = [BlockSize]byte{}
	a.hash.wipe()
	a.reserved = 0
}

type stepper interface {
	StepI(p []byte) error
	StepE(buf []byte)
	StepD(buf []byte)
	StepA(buf []byte)
	StepG() []byte
	StepV(tag []byte) bool
	Wipe()
}

func wrap(m stepper, x, i []byte) (y, tag []byte) {
	defer m.Wipe()

	y = make([]byte, len(x))
	copy(y, x)

	m.StepI(i) //nolint:errcheck
	m.StepE(y)
	m.StepA(y)

	return y, m.StepG()
}

func unwrap(m stepper, y, i, tag []byte) ([]byte, error) {
	defer m.Wipe()

	if len(tag) != MACSize {
		return nil, errs.Wrap(errs.ErrBadLength, "tag of %d octets", len(tag))
	}

	m.StepI(i) //nolint:errcheck
	m.StepA(y)

	if !m.StepV(tag) {
		return nil, errs.ErrBadMAC
	}

	x := make([]byte, len(y))
	copy(x, y)
	m.StepD(x)

	return x, nil
}

type aead struct {
	key []byte
	che bool
}

// NewAEAD returns DWP as a cipher.AEAD with a 16-octet nonce and an
// 8-octet tag appended to the ciphertext.
func NewAEAD(key []byte) (cipher.AEAD, error) {
	return newAEAD(key, false)
}

// NewCHEAEAD returns CHE as a cipher.AEAD.
func NewCHEAEAD(key []byte) (cipher.AEAD, error) {
	return newAEAD(key, true)
}

func newAEAD(key []byte, che bool) (cipher.AEAD, error) {
	if _, err := KeyExpand(key); err != nil {
		return nil, err
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &aead{key: k, che: che}, nil
}

func (a *aead) NonceSize() int { return BlockSize }
func (a *aead) Overhead() int  { return MACSize }

func (a *aead) mode(nonce []byte) stepper {
	if len(nonce) != BlockSize {
		panic("belt: incorrect nonce length")
	}

	var (
		m   stepper
		err error
	)

	if a.che {
		m, err = NewCHE(a.key, nonce)
	} else {
		m, err = NewDWP(a.key, nonce)
	}

	if err != nil {
		panic(err)
	}

	return m
}

func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	y, tag := wrap(a.mode(nonce), plaintext, additionalData)
	dst = append(dst, y...)

	return append(dst, tag...)
}

func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < MACSize {
		return nil, errs.ErrBadMAC
	}

	n := len(ciphertext) - MACSize

	x, err := unwrap(a.mode(nonce), ciphertext[:n], additionalData, ciphertext[n:])
	if err != nil {
		return nil, err
	}

	return append(dst, x...), nil
}
