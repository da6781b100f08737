package belt

import (
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/blob"
)

// BDE encrypts disk sectors block by block: each block is whitened with
// a per-sector mask that is multiplied by x in GF(2^128) before every
// block.
type BDE struct {
	key Key
}

// NewBDE creates a block disk encryptor.
func NewBDE(key []byte) (*BDE, error) {
	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	return &BDE{key: k}, nil
}

func (b *BDE) crypt(buf, iv []byte, encr bool) error {
	if len(buf) < BlockSize || len(buf)%BlockSize != 0 {
		return errs.Wrap(errs.ErrBadLength, "bde: %d octets", len(buf))
	}

	if len(iv) != BlockSize {
		return errs.Wrap(errs.ErrBadLength, "bde: iv of %d octets", len(iv))
	}

	var s [BlockSize]byte

	copy(s[:], iv)
	BlockEncr(s[:], &b.key)

	for i := 0; i < len(buf); i += BlockSize {
		blk := buf[i : i+BlockSize]
		mulXBlock(s[:])
		xorBlock(blk, blk, s[:])

		if encr {
			BlockEncr(blk, &b.key)
		} else {
			BlockDecr(blk, &b.key)
		}

		xorBlock(blk, blk, s[:])
	}

	blob.Wipe(s[:])

	return nil
}

// Encrypt encrypts the sector buf identified by the 16-octet iv.
func (b *BDE) Encrypt(buf, iv []byte) error { return b.crypt(buf, iv, true) }

// Decrypt decrypts the sector buf identified by iv.
func (b *BDE) Decrypt(buf, iv []byte) error { return b.crypt(buf, iv, false) }

// Wipe zeroes the key.
func (b *BDE) Wipe() { b.key.Wipe() }

// SDE encrypts whole disk sectors with the wide-block cipher. The
// encrypted sector number masks the first block on both sides of WBL.
type SDE struct {
	wbl WBL
}

// NewSDE creates a sector disk encryptor.
func NewSDE(key []byte) (*SDE, error) {
	k, err := KeyExpand(key)
	if err != nil {
		return nil, err
	}

	return &SDE{wbl: WBL{key: k}}, nil
}

func (d *SDE) crypt(buf, iv []byte, encr bool) error {
	if len(buf) < 2*BlockSize {
		return errs.Wrap(errs.ErrBadLength, "sde: %d octets", len(buf))
	}

	if len(iv) != BlockSize {
		return errs.Wrap(errs.ErrBadLength, "sde: iv of %d octets", len(iv))
	}

	var s [BlockSize]byte

	copy(s[:], iv)
	BlockEncr(s[:], &d.wbl.key)
	xorBlock(buf, buf, s[:])

	var err error
	if encr {
		err = d.wbl.Encrypt(buf)
	} else {
		err = d.wbl.Decrypt(buf)
	}

	xorBlock(buf, buf, s[:])
	blob.Wipe(s[:])

	return err
}

// Encrypt encrypts the sector buf identified by the 16-octet iv.
func (d *SDE) Encrypt(buf, iv []byte) error { return d.crypt(buf, iv, true) }

// Decrypt decrypts the sector buf identified by iv.
func (d *SDE) Decrypt(buf, iv []byte) error { return d.crypt(buf, iv, false) }

// Wipe zeroes the key.
func (d *SDE) Wipe() { d.wbl.Wipe() }
