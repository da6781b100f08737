package hex

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// EncodeToHex generates a hex string based on the byte representation, with the '0x' prefix
func EncodeToHex(str []byte) string {
	return "0x" + hex.EncodeToString(str)
}

// EncodeToString is a wrapper method for hex.EncodeToString
func EncodeToString(str []byte) string {
	return hex.EncodeToString(str)
}

// EncodeUpper encodes bytes as an upper-case hex string, the notation used by
// the STB test vectors
func EncodeUpper(buf []byte) string {
	return strings.ToUpper(hex.EncodeToString(buf))
}

// DecodeHex converts a hex string to a byte array. An optional '0x' prefix
// and blanks between digit groups are ignored
func DecodeHex(str string) ([]byte, error) {
	str = strings.TrimPrefix(str, "0x")
	str = strings.Join(strings.Fields(str), "")

	return hex.DecodeString(str)
}

// MustDecodeHex type-checks and converts a hex string to a byte array
func MustDecodeHex(str string) []byte {
	buf, err := DecodeHex(str)
	if err != nil {
		panic(fmt.Errorf("could not decode hex: %w", err))
	}

	return buf
}

// DecodeHexRev decodes a big-endian hex number into little-endian octets
func DecodeHexRev(str string) ([]byte, error) {
	buf, err := DecodeHex(str)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return buf, nil
}

// MustDecodeHexRev is DecodeHexRev that panics on malformed input
func MustDecodeHexRev(str string) []byte {
	buf, err := DecodeHexRev(str)
	if err != nil {
		panic(fmt.Errorf("could not decode hex: %w", err))
	}

	return buf
}

// EqualHex compares buf against the hex string, case-insensitively
func EqualHex(buf []byte, str string) bool {
	expected, err := DecodeHex(str)
	if err != nil || len(expected) != len(buf) {
		return false
	}

	for i := range buf {
		if buf[i] != expected[i] {
			return false
		}
	}

	return true
}
