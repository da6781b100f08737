package prng

import (
	"github.com/bee2-go/bee2/errs"
)

// Echo replays a fixed seed cyclically. Tests use it to feed known
// "random" values to functions that consume a generator.
type Echo struct {
	seed []byte
	pos  int
}

// NewEcho returns an echo generator over a copy of seed.
func NewEcho(seed []byte) (*Echo, error) {
	if len(seed) == 0 {
		return nil, errs.Wrap(errs.ErrBadInput, "empty echo seed")
	}

	return &Echo{seed: append([]byte(nil), seed...)}, nil
}

// Read fills p by cycling through the seed. It never fails.
func (e *Echo) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = e.seed[e.pos]

		if e.pos++; e.pos == len(e.seed) {
			e.pos = 0
		}
	}

	return len(p), nil
}
