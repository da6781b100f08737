package rng

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bee2-go/bee2/belt"
	"github.com/bee2-go/bee2/errs"
)

// ctrSource yields the belt-ctr keystream, a sample known to pass the
// FIPS tests.
type ctrSource struct{}

func (ctrSource) Name() string { return "ctr" }

func (ctrSource) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}

	return len(p), belt.CTRCrypt(p, p, belt.H[128:160], belt.H[192:208])
}

type zeroSource struct{}

func (zeroSource) Name() string { return "zero" }

func (zeroSource) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}

	return len(p), nil
}

type brokenSource struct{}

func (brokenSource) Name() string { return "broken" }

func (brokenSource) Read(p []byte) (int, error) {
	return 0, errs.ErrFileRead
}

func sample(t *testing.T, s Source) *[FIPSSize]byte {
	t.Helper()

	var buf [FIPSSize]byte

	_, err := s.Read(buf[:])
	require.NoError(t, err)

	return &buf
}

func TestFIPS(t *testing.T) {
	t.Parallel()

	good := sample(t, ctrSource{})
	assert.True(t, FIPS1(good))
	assert.True(t, FIPS2(good))
	assert.True(t, FIPS3(good))
	assert.True(t, FIPS4(good))

	zero := sample(t, zeroSource{})
	assert.False(t, FIPS1(zero))
	assert.False(t, FIPS2(zero))
	assert.False(t, FIPS3(zero))
	assert.False(t, FIPS4(zero))

	// alternating bits: balanced, but only runs of length one
	var alt [FIPSSize]byte
	for i := range alt {
		alt[i] = 0x55
	}

	assert.True(t, FIPS1(&alt))
	assert.False(t, FIPS3(&alt))
	assert.True(t, FIPS4(&alt))

	// a single long run in otherwise good data
	bad := *good
	for i := 100; i < 104; i++ {
		bad[i] = 0xFF
	}

	assert.False(t, FIPS4(&bad))
}

func TestNew(t *testing.T) {
	t.Parallel()

	r, err := New(&Config{
		Logger:  hclog.NewNullLogger(),
		Sources: []Source{brokenSource{}, zeroSource{}, ctrSource{}},
	})
	require.NoError(t, err)

	a := make([]byte, 64)
	_, err = r.Read(a)
	require.NoError(t, err)
	assert.NotEqual(t, make([]byte, 64), a)

	require.NoError(t, r.HealthCheck())

	// the same entropy after a reseed still gives a new stream
	require.NoError(t, r.Reseed())

	b := make([]byte, 64)
	_, err = r.Read(b)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	r.Close()

	_, err = r.Read(b)
	assert.ErrorIs(t, err, errs.ErrBadLogic)
}

func TestNoEntropy(t *testing.T) {
	t.Parallel()

	_, err := New(&Config{Sources: []Source{brokenSource{}, zeroSource{}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNotEnoughEntropy))
	assert.True(t, errors.Is(err, errs.ErrStatTest))
	assert.True(t, errors.Is(err, errs.ErrFileRead))
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	s := NewFileSource("/nonexistent/random")
	assert.False(t, IsSourceAvailable(s))

	_, err := s.Read(make([]byte, 4))
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.NotEmpty(t, DefaultSources())
}
