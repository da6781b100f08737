// Package rng collects entropy from system sources, checks each sample
// with the FIPS 140-2 statistical tests and expands the accepted entropy
// with brng-hmac.
package rng

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/bee2-go/bee2/belt"
	"github.com/bee2-go/bee2/brng"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/blob"
)

const rngMetrics = "rng"

var _ io.Reader = (*Rng)(nil)

// Config configures a generator.
type Config struct {
	Logger hclog.Logger
	// Sources default to DefaultSources.
	Sources []Source
}

// Rng is a generator seeded from the sources that pass the statistical
// tests. It is safe for concurrent use.
type Rng struct {
	logger  hclog.Logger
	sources []Source

	lock   sync.Mutex
	gen    *brng.HMAC
	reseed uint64
}

// New collects entropy and starts the generator. It fails with
// ErrNotEnoughEntropy when no source delivers a healthy sample.
func New(config *Config) (*Rng, error) {
	if config == nil {
		config = &Config{}
	}

	r := &Rng{
		logger:  config.Logger,
		sources: config.Sources,
	}

	if r.logger == nil {
		r.logger = hclog.NewNullLogger()
	}

	r.logger = r.logger.Named("rng")

	if len(r.sources) == 0 {
		r.sources = DefaultSources()
	}

	if err := r.Reseed(); err != nil {
		return nil, err
	}

	return r, nil
}

// collect reads one FIPS sample from every source and hashes the healthy
// ones together.
func (r *Rng) collect() ([]byte, int, error) {
	var (
		result error
		sample [FIPSSize]byte
		good   int
	)

	h := belt.NewHash()

	for _, s := range r.sources {
		if _, err := s.Read(sample[:]); err != nil {
			metrics.IncrCounter([]string{rngMetrics, "source_failures"}, 1)
			r.logger.Warn("entropy source failed", "source", s.Name(), "err", err)
			result = multierror.Append(result, err)

			continue
		}

		if !FIPSAll(&sample) {
			metrics.IncrCounter([]string{rngMetrics, "selftest_failures"}, 1)
			r.logger.Warn("entropy source failed statistical tests", "source", s.Name())
			result = multierror.Append(result, errs.Wrap(errs.ErrStatTest, "%s", s.Name()))

			continue
		}

		r.logger.Debug("entropy source accepted", "source", s.Name())
		h.Write(sample[:]) //nolint:errcheck
		good++
	}

	blob.Wipe(sample[:])

	return h.Sum(nil), good, result
}

// Reseed collects fresh entropy and restarts the generator.
func (r *Rng) Reseed() error {
	key, good, err := r.collect()
	defer blob.Wipe(key)

	if good == 0 {
		r.logger.Error("no healthy entropy source", "sources", len(r.sources))

		return multierror.Append(err, errs.ErrNotEnoughEntropy)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.gen != nil {
		r.gen.Wipe()
	}

	r.reseed++

	var iv [8]byte
	binary.LittleEndian.PutUint64(iv[:], r.reseed)

	r.gen = brng.NewHMAC(key, iv[:])
	r.logger.Info("generator seeded", "sources", good, "reseed", r.reseed)

	return nil
}

// Read fills p with generator output.
func (r *Rng) Read(p []byte) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.gen == nil {
		return 0, errs.Wrap(errs.ErrBadLogic, "rng is closed")
	}

	n, err := r.gen.Read(p)
	metrics.IncrCounter([]string{rngMetrics, "bytes_generated"}, float32(n))

	return n, err
}

// HealthCheck runs the statistical tests on a sample of the output.
func (r *Rng) HealthCheck() error {
	var sample [FIPSSize]byte
	defer blob.Wipe(sample[:])

	if _, err := r.Read(sample[:]); err != nil {
		return err
	}

	if !FIPSAll(&sample) {
		metrics.IncrCounter([]string{rngMetrics, "selftest_failures"}, 1)

		return errs.Wrap(errs.ErrStatTest, "generator output")
	}

	return nil
}

// Close wipes the generator state.
func (r *Rng) Close() {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.gen != nil {
		r.gen.Wipe()
		r.gen = nil
	}
}
