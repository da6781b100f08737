// Package belt implements the STB 34.101.31 block cipher belt together
// with its modes of operation: ECB, CBC and CFB with ciphertext stealing,
// CTR, MAC, the authenticated modes DWP and CHE, the wide-block cipher WBL
// with key wrapping, key repetition, disk encryption, hashing and HMAC.
package belt

import (
	"encoding/binary"
	"math/bits"

	"github.com/bee2-go/bee2/errs"
)

const (
	// BlockSize is the size of a belt block in octets.
	BlockSize = 16
	// KeySize is the size of an expanded belt key in octets.
	KeySize = 32
)

// H is the belt substitution box. Prefixes of it also serve as fixed
// initial values and as test data.
var H = [256]byte{
	0xB1, 0x94, 0xBA, 0xC8, 0x0A, 0x08, 0xF5, 0x3B, 0x36, 0x6D, 0x00, 0x8E, 0x58, 0x4A, 0x5D, 0xE4,
	0x85, 0x04, 0xFA, 0x9D, 0x1B, 0xB6, 0xC7, 0xAC, 0x25, 0x2E, 0x72, 0xC2, 0x02, 0xFD, 0xCE, 0x0D,
	0x5B, 0xE3, 0xD6, 0x12, 0x17, 0xB9, 0x61, 0x81, 0xFE, 0x67, 0x86, 0xAD, 0x71, 0x6B, 0x89, 0x0B,
	0x5C, 0xB0, 0xC0, 0xFF, 0x33, 0xC3, 0x56, 0xB8, 0x35, 0xC4, 0x05, 0xAE, 0xD8, 0xE0, 0x7F, 0x99,
	0xE1, 0x2B, 0xDC, 0x1A, 0xE2, 0x82, 0x57, 0xEC, 0x70, 0x3F, 0xCC, 0xF0, 0x95, 0xEE, 0x8D, 0xF1,
	0xC1, 0xAB, 0x76, 0x38, 0x9F, 0xE6, 0x78, 0xCA, 0xF7, 0xC6, 0xF8, 0x60, 0xD5, 0xBB, 0x9C, 0x4F,
	0xF3, 0x3C, 0x65, 0x7B, 0x63, 0x7C, 0x30, 0x6A, 0xDD, 0x4E, 0xA7, 0x79, 0x9E, 0xB2, 0x3D, 0x31,
	0x3E, 0x98, 0xB5, 0x6E, 0x27, 0xD3, 0xBC, 0xCF, 0x59, 0x1E, 0x18, 0x1F, 0x4C, 0x5A, 0xB7, 0x93,
	0xE9, 0xDE, 0xE7, 0x2C, 0x8F, 0x0C, 0x0F, 0xA6, 0x2D, 0xDB, 0x49, 0xF4, 0x6F, 0x73, 0x96, 0x47,
	0x06, 0x07, 0x53, 0x16, 0xED, 0x24, 0x7A, 0x37, 0x39, 0xCB, 0xA3, 0x83, 0x03, 0xA9, 0x8B, 0xF6,
	0x92, 0xBD, 0x9B, 0x1C, 0xE5, 0xD1, 0x41, 0x01, 0x54, 0x45, 0xFB, 0xC9, 0x5E, 0x4D, 0x0E, 0xF2,
	0x68, 0x20, 0x80, 0xAA, 0x22, 0x7D, 0x64, 0x2F, 0x26, 0x87, 0xF9, 0x34, 0x90, 0x40, 0x55, 0x11,
	0xBE, 0x32, 0x97, 0x13, 0x43, 0xFC, 0x9A, 0x48, 0xA0, 0x2A, 0x88, 0x5F, 0x19, 0x4B, 0x09, 0xA1,
	0x7E, 0xCD, 0xA4, 0xD0, 0x15, 0x44, 0xAF, 0x8C, 0xA5, 0x84, 0x50, 0xBF, 0x66, 0xD2, 0xE8, 0x8A,
	0xA2, 0xD7, 0x46, 0x52, 0x42, 0xA8, 0xDF, 0xB3, 0x69, 0x74, 0xC5, 0x51, 0xEB, 0x23, 0x29, 0x21,
	0xD4, 0xEF, 0xD9, 0xB4, 0x3A, 0x62, 0x28, 0x75, 0x91, 0x14, 0x10, 0xEA, 0x77, 0x6C, 0xDA, 0x1D,
}

// extended G-tables: gTable[r][j][b] = RotHi(H[b] << 8j, r)
var g5, g13, g21 [4][256]uint32

func init() {
	for j := 0; j < 4; j++ {
		for b := 0; b < 256; b++ {
			v := uint32(H[b]) << (8 * j)
			g5[j][b] = bits.RotateLeft32(v, 5)
			g13[j][b] = bits.RotateLeft32(v, 13)
			g21[j][b] = bits.RotateLeft32(v, 21)
		}
	}
}

func g(t *[4][256]uint32, u uint32) uint32 {
	return t[0][u&0xFF] ^ t[1][u>>8&0xFF] ^ t[2][u>>16&0xFF] ^ t[3][u>>24]
}

// Key is an expanded belt key: eight 32-bit words.
type Key [8]uint32

// KeyExpand expands a 16, 24 or 32 octet key.
func KeyExpand(key []byte) (Key, error) {
	var k Key

	switch len(key) {
	case 16:
		for i := 0; i < 4; i++ {
			k[i] = binary.LittleEndian.Uint32(key[4*i:])
		}

		copy(k[4:], k[:4])
	case 24:
		for i := 0; i < 6; i++ {
			k[i] = binary.LittleEndian.Uint32(key[4*i:])
		}

		k[6] = k[0] ^ k[1] ^ k[2]
		k[7] = k[3] ^ k[4] ^ k[5]
	case 32:
		for i := 0; i < 8; i++ {
			k[i] = binary.LittleEndian.Uint32(key[4*i:])
		}
	default:
		return k, errs.Wrap(errs.ErrBadLength, "belt key of %d octets", len(key))
	}

	return k, nil
}

// Bytes returns the 32-octet form of the expanded key.
func (k *Key) Bytes() []byte {
	out := make([]byte, KeySize)
	word32s(out, k)

	return out
}

// Wipe zeroes the key.
func (k *Key) Wipe() {
	for i := range k {
		k[i] = 0
	}
}

// encrWords encrypts the block (a, b, c, d).
func encrWords(a, b, c, d uint32, k *Key) (uint32, uint32, uint32, uint32) {
	for i := uint32(1); i <= 8; i++ {
		j := 7 * (i - 1)
		b ^= g(&g5, a+k[j%8])
		c ^= g(&g21, d+k[(j+1)%8])
		a -= g(&g13, b+k[(j+2)%8])
		e := g(&g21, b+c+k[(j+3)%8]) ^ i
		b += e
		c -= e
		d += g(&g13, c+k[(j+4)%8])
		b ^= g(&g21, a+k[(j+5)%8])
		c ^= g(&g5, d+k[(j+6)%8])
		a, b = b, a
		c, d = d, c
		b, c = c, b
	}

	return b, d, a, c
}

func decrWords(a, b, c, d uint32, k *Key) (uint32, uint32, uint32, uint32) {
	for i := uint32(8); i >= 1; i-- {
		j := 7 * (i - 1)
		b ^= g(&g5, a+k[(j+6)%8])
		c ^= g(&g21, d+k[(j+5)%8])
		a -= g(&g13, b+k[(j+4)%8])
		e := g(&g21, b+c+k[(j+3)%8]) ^ i
		b += e
		c -= e
		d += g(&g13, c+k[(j+2)%8])
		b ^= g(&g21, a+k[(j+1)%8])
		c ^= g(&g5, d+k[j%8])
		a, b = b, a
		c, d = d, c
		a, d = d, a
	}

	return c, a, d, b
}

// BlockEncr encrypts a 16-octet block in place.
func BlockEncr(block []byte, k *Key) {
	_ = block[15]
	a, b, c, d := encrWords(
		binary.LittleEndian.Uint32(block[0:]),
		binary.LittleEndian.Uint32(block[4:]),
		binary.LittleEndian.Uint32(block[8:]),
		binary.LittleEndian.Uint32(block[12:]),
		k,
	)
	binary.LittleEndian.PutUint32(block[0:], a)
	binary.LittleEndian.PutUint32(block[4:], b)
	binary.LittleEndian.PutUint32(block[8:], c)
	binary.LittleEndian.PutUint32(block[12:], d)
}

// BlockDecr decrypts a 16-octet block in place.
func BlockDecr(block []byte, k *Key) {
	_ = block[15]
	a, b, c, d := decrWords(
		binary.LittleEndian.Uint32(block[0:]),
		binary.LittleEndian.Uint32(block[4:]),
		binary.LittleEndian.Uint32(block[8:]),
		binary.LittleEndian.Uint32(block[12:]),
		k,
	)
	binary.LittleEndian.PutUint32(block[0:], a)
	binary.LittleEndian.PutUint32(block[4:], b)
	binary.LittleEndian.PutUint32(block[8:], c)
	binary.LittleEndian.PutUint32(block[12:], d)
}

func xorBlock(dst, a, b []byte) {
	_, _, _ = dst[15], a[15], b[15]
	for i := 0; i < BlockSize; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

// incBlock adds one to the block read as a 128-bit little-endian number.
func incBlock(block []byte) {
	lo := binary.LittleEndian.Uint64(block)
	hi := binary.LittleEndian.Uint64(block[8:])
	lo, carry := bits.Add64(lo, 1, 0)
	hi += carry

	binary.LittleEndian.PutUint64(block, lo)
	binary.LittleEndian.PutUint64(block[8:], hi)
}

// mulXBlock multiplies the block by x in GF(2^128).
func mulXBlock(block []byte) {
	lo := binary.LittleEndian.Uint64(block)
	hi := binary.LittleEndian.Uint64(block[8:])
	mask := -(hi >> 63)
	hi = hi<<1 | lo>>63
	lo = lo<<1 ^ (mask & 0x87)

	binary.LittleEndian.PutUint64(block, lo)
	binary.LittleEndian.PutUint64(block[8:], hi)
}
