// Package word contains single-word primitives used by the multi-precision
// packages: rotations, bit counting, byte-order conversion and
// constant-time predicates.
package word

import (
	"encoding/binary"
	"math/bits"
)

// Word is the unit of multi-precision arithmetic.
type Word = uint64

const (
	// B is the number of bits in a Word.
	B = 64
	// O is the number of octets in a Word.
	O = 8
	// Max is the largest Word.
	Max = ^Word(0)
)

// OfB returns the number of words needed to hold n bits.
func OfB(n int) int {
	return (n + B - 1) / B
}

// OfO returns the number of words needed to hold n octets.
func OfO(n int) int {
	return (n + O - 1) / O
}

// RotHi rotates w towards the high bits by d positions.
func RotHi(w Word, d int) Word {
	return bits.RotateLeft64(w, d)
}

// RotLo rotates w towards the low bits by d positions.
func RotLo(w Word, d int) Word {
	return bits.RotateLeft64(w, -d)
}

// RotHi32 rotates a 32-bit value towards the high bits.
func RotHi32(w uint32, d int) uint32 {
	return bits.RotateLeft32(w, d)
}

// Weight returns the number of set bits.
func Weight(w Word) int {
	return bits.OnesCount64(w)
}

// Parity returns the parity of the number of set bits.
func Parity(w Word) Word {
	return Word(bits.OnesCount64(w) & 1)
}

// CLZ returns the number of leading zero bits.
func CLZ(w Word) int {
	return bits.LeadingZeros64(w)
}

// CTZ returns the number of trailing zero bits.
func CTZ(w Word) int {
	return bits.TrailingZeros64(w)
}

// BitLen returns the minimal number of bits needed to represent w.
func BitLen(w Word) int {
	return bits.Len64(w)
}

// Rev reverses the byte order of w.
func Rev(w Word) Word {
	return bits.ReverseBytes64(w)
}

// Rev32 reverses the byte order of a 32-bit value.
func Rev32(w uint32) uint32 {
	return bits.ReverseBytes32(w)
}

// Eq returns 1 if a == b and 0 otherwise, without branching.
func Eq(a, b Word) Word {
	x := a ^ b

	return 1 ^ ((x | -x) >> (B - 1))
}

// Neq returns 1 if a != b and 0 otherwise, without branching.
func Neq(a, b Word) Word {
	return Eq(a, b) ^ 1
}

// Less returns 1 if a < b and 0 otherwise, without branching.
func Less(a, b Word) Word {
	_, borrow := bits.Sub64(a, b, 0)

	return borrow
}

// IsZero returns 1 if a == 0 and 0 otherwise, without branching.
func IsZero(a Word) Word {
	return Eq(a, 0)
}

// Mask expands a 0/1 flag into an all-zero or all-one word.
func Mask(flag Word) Word {
	return -flag
}

// Select returns a if flag is 1 and b if flag is 0.
func Select(flag, a, b Word) Word {
	m := -flag

	return (a & m) | (b &^ m)
}

// Negative inverse modulo B of an odd word: returns -w^{-1} mod B.
func NegInv(w Word) Word {
	// Newton iteration doubles the number of correct low bits each step
	r := w
	for i := 0; i < 5; i++ {
		r *= 2 - w*r
	}

	return -r
}

// FromOctets loads a little-endian octet string into words; missing
// trailing octets are treated as zero. Words beyond the input are zeroed.
func FromOctets(dst []Word, src []byte) {
	i := 0
	for ; i < len(dst) && (i+1)*O <= len(src); i++ {
		dst[i] = binary.LittleEndian.Uint64(src[i*O:])
	}

	if i < len(dst) && i*O < len(src) {
		var buf [O]byte

		copy(buf[:], src[i*O:])
		dst[i] = binary.LittleEndian.Uint64(buf[:])
		i++
	}

	for ; i < len(dst); i++ {
		dst[i] = 0
	}
}

// ToOctets stores words into a little-endian octet string of length
// len(dst); words beyond the destination are truncated, a short source is
// zero-filled.
func ToOctets(dst []byte, src []Word) {
	var buf [O]byte

	for i := 0; i*O < len(dst); i++ {
		var w Word
		if i < len(src) {
			w = src[i]
		}

		binary.LittleEndian.PutUint64(buf[:], w)
		copy(dst[i*O:], buf[:])
	}
}

// U32FromOctets loads little-endian 32-bit words.
func U32FromOctets(dst []uint32, src []byte) {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(src[4*i:])
	}
}

// U32ToOctets stores little-endian 32-bit words.
func U32ToOctets(dst []byte, src []uint32) {
	for i, w := range src {
		binary.LittleEndian.PutUint32(dst[4*i:], w)
	}
}

// U64FromOctets loads little-endian 64-bit words.
func U64FromOctets(dst []uint64, src []byte) {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint64(src[8*i:])
	}
}

// U64ToOctets stores little-endian 64-bit words.
func U64ToOctets(dst []byte, src []uint64) {
	for i, w := range src {
		binary.LittleEndian.PutUint64(dst[8*i:], w)
	}
}
