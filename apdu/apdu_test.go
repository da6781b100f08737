package apdu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/hex"
)

func TestCmdForms(t *testing.T) {
	t.Parallel()

	long := bytes.Repeat([]byte{0xAB}, 300)

	cases := []struct {
		name string
		cmd  Cmd
		want string
	}{
		{"case 1", Cmd{CLA: 0x00, INS: 0xA4, P1: 0x04, P2: 0x04}, "00A40404"},
		{"case 2 short", Cmd{CLA: 0x00, INS: 0xB0, Rdf: 256}, "00B0000000"},
		{"case 3 short", Cmd{CLA: 0x00, INS: 0xA4, P1: 0x04, CDF: []byte{0x3F, 0x00}}, "00A40400023F00"},
		{"case 4 short", Cmd{CLA: 0x00, INS: 0xA4, P1: 0x04, CDF: []byte{0x3F, 0x00}, Rdf: 0x10}, "00A40400023F0010"},
		{"case 2 extended", Cmd{CLA: 0x00, INS: 0xB0, Rdf: 65536}, "00B00000000000"},
		{"case 4 extended by le", Cmd{CLA: 0x00, INS: 0xB0, CDF: []byte{1}, Rdf: 257}, "00B0000000000101" + "0101"},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			b, err := c.cmd.Encode()
			require.NoError(t, err)
			assert.Equal(t, c.want, hex.EncodeUpper(b))

			d, err := DecodeCmd(b)
			require.NoError(t, err)
			assert.Equal(t, c.cmd.CLA, d.CLA)
			assert.Equal(t, c.cmd.INS, d.INS)
			assert.Equal(t, c.cmd.Rdf, d.Rdf)
			assert.Equal(t, len(c.cmd.CDF), len(d.CDF))
		})
	}

	cmd := Cmd{CLA: 0x80, INS: 0x10, CDF: long, Rdf: 5}
	b, err := cmd.Encode()
	require.NoError(t, err)
	assert.Len(t, b, 4+3+300+2)
	assert.Equal(t, []byte{0x00, 0x01, 0x2C}, b[4:7])

	d, err := DecodeCmd(b)
	require.NoError(t, err)
	assert.Equal(t, long, d.CDF)
	assert.Equal(t, 5, d.Rdf)
}

func TestCmdRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		cmd := Cmd{
			CLA: rapid.Byte().Draw(t, "cla"),
			INS: rapid.Byte().Draw(t, "ins"),
			P1:  rapid.Byte().Draw(t, "p1"),
			P2:  rapid.Byte().Draw(t, "p2"),
			CDF: rapid.SliceOfN(rapid.Byte(), 0, 600).Draw(t, "cdf"),
			Rdf: rapid.IntRange(0, MaxRdfExtended).Draw(t, "rdf"),
		}

		b, err := cmd.Encode()
		require.NoError(t, err)

		d, err := DecodeCmd(b)
		require.NoError(t, err)

		assert.Equal(t, cmd.CLA, d.CLA)
		assert.Equal(t, cmd.P2, d.P2)
		assert.Equal(t, cmd.Rdf, d.Rdf)
		assert.True(t, bytes.Equal(cmd.CDF, d.CDF))
	})
}

func TestDecodeCmdErrors(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"00A404",
		"00A4040003AABB",
		"00A40400000000AA",
		"00A404000000",
	} {
		_, err := DecodeCmd(hex.MustDecodeHex(s))
		assert.ErrorIs(t, err, errs.ErrBadAPDU, s)
	}

	_, err := (&Cmd{Rdf: MaxRdfExtended + 1}).Encode()
	assert.ErrorIs(t, err, errs.ErrBadAPDU)
}

func TestResp(t *testing.T) {
	t.Parallel()

	r := &Resp{RDF: []byte{1, 2, 3}, SW1: 0x90}
	b, err := r.Encode()
	require.NoError(t, err)
	assert.Equal(t, "0102039000", hex.EncodeUpper(b))

	d, err := DecodeResp(b)
	require.NoError(t, err)
	assert.Equal(t, r.RDF, d.RDF)
	assert.True(t, d.StatusOK())

	_, err = DecodeResp([]byte{0x90})
	assert.ErrorIs(t, err, errs.ErrBadAPDU)
}

func TestTLV(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 5, 127, 128, 255, 256, 1000} {
		v := bytes.Repeat([]byte{7}, n)
		b := AppendTLV([]byte{0xEE}, 0x87, v)

		tag, value, rest, err := ParseTLV(b[1:])
		require.NoError(t, err)
		assert.Equal(t, byte(0x87), tag)
		assert.Equal(t, v, value)
		assert.Empty(t, rest)
	}

	_, _, _, err := ParseTLV([]byte{0x87, 0x05, 1, 2})
	assert.ErrorIs(t, err, errs.ErrBadAPDU)

	_, _, _, err = ParseTLV([]byte{0x87, 0x83, 0, 0, 1})
	assert.ErrorIs(t, err, errs.ErrBadAPDU)
}
