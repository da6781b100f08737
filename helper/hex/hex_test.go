package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		expected []byte
	}{
		{"0x00ff", []byte{0x00, 0xff}},
		{"B194BAC8", []byte{0xb1, 0x94, 0xba, 0xc8}},
		{"B194 BAC8\n0A08", []byte{0xb1, 0x94, 0xba, 0xc8, 0x0a, 0x08}},
		{"", []byte{}},
	}

	for _, c := range cases {
		out, err := DecodeHex(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.expected, out)
	}

	_, err := DecodeHex("0xzz")
	assert.Error(t, err)
}

func TestDecodeHexRev(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x03, 0x02, 0x01}, MustDecodeHexRev("010203"))
}

func TestMustDecodeHexPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustDecodeHex("xyz") })
}

func TestEqualHex(t *testing.T) {
	t.Parallel()

	assert.True(t, EqualHex([]byte{0xab, 0xcd}, "ABcd"))
	assert.False(t, EqualHex([]byte{0xab}, "ABcd"))
	assert.Equal(t, "ABCD", EncodeUpper([]byte{0xab, 0xcd}))
	assert.Equal(t, "0xabcd", EncodeToHex([]byte{0xab, 0xcd}))
}
