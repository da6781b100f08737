// Package blob provides scoped, zero-initialised buffers that are wiped on
// release, together with a few memory helpers shared by the cryptographic
// packages.
package blob

import (
	"crypto/subtle"
	"hash/crc32"
	"hash/fnv"
	"os"
	"sync"
)

var pageSize = os.Getpagesize()

// Blob is a page-rounded buffer owned by the caller until Close.
type Blob struct {
	mu   sync.Mutex
	buf  []byte
	size int
}

// New allocates a zeroed blob able to hold size octets.
func New(size int) *Blob {
	if size < 0 {
		size = 0
	}

	capacity := (size + pageSize - 1) / pageSize * pageSize
	if capacity == 0 {
		capacity = pageSize
	}

	return &Blob{
		buf:  make([]byte, capacity),
		size: size,
	}
}

// Bytes returns the usable part of the blob.
func (b *Blob) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf[:b.size]
}

// Size returns the usable size.
func (b *Blob) Size() int {
	return b.size
}

// Resize changes the usable size, keeping the current content. Growing
// beyond the page-rounded capacity moves the data into a new allocation and
// wipes the old one.
func (b *Blob) Resize(size int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if size <= len(b.buf) {
		if size < b.size {
			Wipe(b.buf[size:b.size])
		}

		b.size = size

		return
	}

	fresh := New(size)
	copy(fresh.buf, b.buf[:b.size])
	Wipe(b.buf)

	b.buf, b.size = fresh.buf, size
}

// Close wipes the blob. The blob must not be used afterwards.
func (b *Blob) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	Wipe(b.buf)
	b.buf, b.size = nil, 0

	return nil
}

// Wipe zeroes buf.
func Wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// Equal compares a and b in time that depends only on their lengths.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// IsZero reports whether buf consists of zero octets, in constant time.
func IsZero(buf []byte) bool {
	var acc byte
	for _, v := range buf {
		acc |= v
	}

	return subtle.ConstantTimeByteEq(acc, 0) == 1
}

// Xor stores a ^ b into dst; all slices must have the same length.
func Xor(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// Xor2 stores dst ^ src into dst.
func Xor2(dst, src []byte) {
	for i := range src {
		dst[i] ^= src[i]
	}
}

// Swap exchanges the contents of a and b.
func Swap(a, b []byte) {
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}

// CRC32 computes the IEEE CRC-32 checksum of buf continuing from state.
func CRC32(buf []byte, state uint32) uint32 {
	return crc32.Update(state, crc32.IEEETable, buf)
}

// FNV32 computes the 32-bit FNV-1a hash of buf.
func FNV32(buf []byte) uint32 {
	h := fnv.New32a()
	h.Write(buf) //nolint:errcheck

	return h.Sum32()
}
