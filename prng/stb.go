package prng

// stbLag and stbTap are the lags of the additive recurrence
// z[i] = z[i-31] + z[i-13] mod 2^16; x^31 + x^13 + 1 is primitive.
const (
	stbLag = 31
	stbTap = 13
)

// stbSeed is the default initial register: the first 31 outputs of a
// COMBO generator started from zero, with the low bit of the first set.
var stbSeed = func() [stbLag]uint16 {
	var z [stbLag]uint16

	c := NewCombo(0)
	for i := range z {
		z[i] = uint16(c.Uint32() >> 16)
	}

	z[0] |= 1

	return z
}()

// STB is a 16-bit lagged Fibonacci generator producing octets.
type STB struct {
	z [stbLag]uint16
	i int
	// pending holds the low octet of the last value when odd is set.
	pending byte
	odd     bool
}

// NewSTB returns a generator started from the register z, or from the
// default register when z is nil. A register with only even entries
// would shorten the period; its first entry is made odd.
func NewSTB(z []uint16) *STB {
	s := &STB{}
	s.Start(z)

	return s
}

// Start (re)initializes the generator.
func (s *STB) Start(z []uint16) {
	if z == nil {
		s.z = stbSeed
	} else {
		copy(s.z[:], z)
	}

	odd := uint16(0)
	for _, v := range s.z {
		odd |= v & 1
	}

	s.z[0] |= 1 ^ odd
	s.i = 0
	s.odd = false
}

func (s *STB) next() uint16 {
	j := s.i - stbTap
	if j < 0 {
		j += stbLag
	}

	s.z[s.i] += s.z[j]
	v := s.z[s.i]

	if s.i++; s.i == stbLag {
		s.i = 0
	}

	return v
}

// Read fills p with generator output, high octet of every value first.
// It never fails.
func (s *STB) Read(p []byte) (int, error) {
	for i := range p {
		if s.odd {
			p[i] = s.pending
			s.odd = false

			continue
		}

		v := s.next()
		p[i] = byte(v >> 8)
		s.pending = byte(v)
		s.odd = true
	}

	return len(p), nil
}
