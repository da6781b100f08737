package bash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bee2-go/bee2/belt"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/hex"
)

func TestHash(t *testing.T) {
	t.Parallel()

	h := belt.H[:]

	cases := []struct {
		level int
		data  []byte
		want  string
	}{
		{128, nil, "114C3DFAE373D9BCBC3602D6386F2D6A2059BA1BF9048DBAA5146A6CB775709D"},
		{128, h[:127], "3D7F4EFA00E9BA33FEED259986567DCF5C6D12D51057A968F14F06CC0F905961"},
		{128, h[:128], "D7F428311254B8B2D00F7F9EEFBD8F3025FA87C4BABD1BDDBE87E35B7AC80DD6"},
		{192, h[:95], "64334AF830D33F63E9ACDFA184E32522103FFF5C6860110A" +
			"2CD369EDBC04387C501D8F92F749AE4DE15A8305C353D64D"},
		{256, h[:63], "2A66C87C189C12E255239406123BDEDBF19955EAF0808B2AD705E249220845E2" +
			"0F4786FB6765D0B5C48984B1B16556EF19EA8192B985E4233D9C09508D6339E7"},
	}

	for _, c := range cases {
		b, err := New(c.level)
		require.NoError(t, err)

		b.Write(c.data) //nolint:errcheck
		assert.Equal(t, c.want, hex.EncodeUpper(b.Sum(nil)))
		assert.Equal(t, c.level/4, b.Size())
	}

	s256 := Sum256(h[:128])
	assert.Equal(t, cases[2].want, hex.EncodeUpper(s256[:]))

	s384 := Sum384(h[:95])
	assert.Equal(t, cases[3].want, hex.EncodeUpper(s384[:]))

	s512 := Sum512(h[:63])
	assert.Equal(t, cases[4].want, hex.EncodeUpper(s512[:]))

	_, err := New(100)
	assert.ErrorIs(t, err, errs.ErrBadParams)
}

func TestHashPieces(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 400).Draw(t, "data")
		cut := rapid.IntRange(0, len(data)).Draw(t, "cut")

		h := New256()
		h.Write(data[:cut]) //nolint:errcheck
		h.Write(data[cut:]) //nolint:errcheck

		want := Sum256(data)
		assert.Equal(t, want[:], h.Sum(nil))
	})
}

func TestPrgParams(t *testing.T) {
	t.Parallel()

	_, err := NewPrg(100, 1, nil, nil)
	assert.ErrorIs(t, err, errs.ErrBadParams)

	_, err = NewPrg(128, 3, nil, nil)
	assert.ErrorIs(t, err, errs.ErrBadParams)

	_, err = NewPrg(128, 1, make([]byte, 5), nil)
	assert.ErrorIs(t, err, errs.ErrBadLength)

	// the key must cover the security level
	_, err = NewPrg(256, 1, nil, make([]byte, 16))
	assert.ErrorIs(t, err, errs.ErrBadLength)

	p, err := NewPrg(256, 2, make([]byte, 60), nil)
	require.NoError(t, err)
	assert.False(t, p.IsKeyed())
	assert.ErrorIs(t, p.EncrStart(), errs.ErrBadLogic)

	require.NoError(t, p.Restart(nil, belt.H[:32]))
	assert.True(t, p.IsKeyed())
	assert.NoError(t, p.EncrStart())
}

func TestPrgHash(t *testing.T) {
	t.Parallel()

	a, err := PrgHash(128, 1, nil, belt.H[:100], 32)
	require.NoError(t, err)

	b, err := PrgHash(128, 1, nil, belt.H[:100], 32)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// another annotation, another hash
	c, err := PrgHash(128, 1, belt.H[:4], belt.H[:100], 32)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	// output is a prefix-stable stream
	long, err := PrgHash(128, 1, nil, belt.H[:100], 300)
	require.NoError(t, err)
	assert.Equal(t, a, long[:32])
}

func TestPrgSteps(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 0, 500).Draw(t, "data")
		cut := rapid.IntRange(0, len(data)).Draw(t, "cut")

		p1, err := NewPrg(192, 2, nil, nil)
		require.NoError(t, err)
		p1.Absorb(data)

		p2, err := NewPrg(192, 2, nil, nil)
		require.NoError(t, err)
		p2.AbsorbStart()
		p2.AbsorbStep(data[:cut])
		p2.AbsorbStep(data[cut:])

		out1, out2 := make([]byte, 200), make([]byte, 200)
		p1.Squeeze(out1)
		p2.SqueezeStart()
		p2.SqueezeStep(out2[:cut%200])
		p2.SqueezeStep(out2[cut%200:])
		assert.Equal(t, out1, out2)
	})
}

func TestRatchet(t *testing.T) {
	t.Parallel()

	p1, err := NewPrg(128, 1, nil, belt.H[:32])
	require.NoError(t, err)

	p2, err := NewPrg(128, 1, nil, belt.H[:32])
	require.NoError(t, err)

	p2.Ratchet()

	out1, out2 := make([]byte, 32), make([]byte, 32)
	p1.Squeeze(out1)
	p2.Squeeze(out2)
	assert.NotEqual(t, out1, out2)
}

func TestAE(t *testing.T) {
	t.Parallel()

	key := belt.H[128:160]
	iv := belt.H[192:208]
	header := belt.H[:23]

	for _, level := range []int{128, 192, 256} {
		y, tag, err := AEWrap(level, key, iv, header, belt.H[:100])
		require.NoError(t, err)
		assert.Len(t, tag, level/8)
		assert.NotEqual(t, belt.H[:100], y)

		x, err := AEUnwrap(level, key, iv, header, y, tag)
		require.NoError(t, err)
		assert.Equal(t, belt.H[:100], x)

		_, err = AEUnwrap(level, key, iv, belt.H[:22], y, tag)
		assert.ErrorIs(t, err, errs.ErrBadMAC)
	}

	_, _, err := AEWrap(128, nil, iv, header, belt.H[:10])
	assert.ErrorIs(t, err, errs.ErrBadLength)
}
