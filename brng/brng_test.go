package brng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bee2-go/bee2/belt"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/hex"
)

func TestCTR(t *testing.T) {
	t.Parallel()

	const want = "1F66B5B84B7339674533F0329C74F21834281FED0732429E0C79235FC273E269" +
		"4C0E74B2CD5811AD21F23DE7E0FA742C3ED6EC483C461CE15C33A77AA308B7D2" +
		"0F51D91347617C20BD4AB07AEF4F26A1AD1362A8F9A3D42FBE1B8E6F1C88AAD5"

	c, err := NewCTR(belt.H[128:160], belt.H[192:224])
	require.NoError(t, err)

	buf := append([]byte(nil), belt.H[:96]...)
	c.Step(buf)
	assert.Equal(t, want, hex.EncodeUpper(buf))

	_, err = NewCTR(belt.H[:16], belt.H[192:224])
	assert.ErrorIs(t, err, errs.ErrBadLength)
}

func TestCTRRead(t *testing.T) {
	t.Parallel()

	a, err := NewCTR(belt.H[128:160], belt.H[192:224])
	require.NoError(t, err)

	b, err := NewCTR(belt.H[128:160], belt.H[192:224])
	require.NoError(t, err)

	// zero input blocks: the reserve left by a short read is used first
	whole := make([]byte, 64)
	_, _ = a.Read(whole)

	parts := make([]byte, 64)
	_, _ = b.Read(parts[:10])
	_, _ = b.Read(parts[10:])

	assert.Equal(t, whole, parts)
}

func TestHMAC(t *testing.T) {
	t.Parallel()

	const want = "AF907A0E470A3A1B268ECCCCC0B90F239FE94A2DC6E014179FC789CB3C3887E4" +
		"695C6B96B84948F8D76924E22260859DB9B5FE757BEDA2E17103EE44655A9FEF" +
		"648077CCC5002E0561C6EF512C513B8C24B4F3A157221CFBC1597E969778C1E4"

	g := NewHMAC(belt.H[128:160], belt.H[192:224])

	buf := make([]byte, 96)
	_, err := g.Read(buf[:33])
	require.NoError(t, err)
	_, err = g.Read(buf[33:])
	require.NoError(t, err)

	assert.Equal(t, want, hex.EncodeUpper(buf))
}
