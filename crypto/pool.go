package crypto

import (
	"hash"
	"sync"
)

// DefaultPools is the pool set used by the package-level helpers.
var DefaultPools = NewPools()

// Pools keeps one pool of hash states per algorithm.
type Pools struct {
	pools map[Algorithm]*sync.Pool
}

// NewPools returns pools for every supported algorithm.
func NewPools() *Pools {
	p := &Pools{pools: make(map[Algorithm]*sync.Pool, len(constructors))}

	for alg, fn := range constructors {
		fn := fn
		p.pools[alg] = &sync.Pool{New: func() interface{} { return fn() }}
	}

	return p
}

// Get returns a reset hash state. It returns nil for unknown algorithms.
func (p *Pools) Get(alg Algorithm) hash.Hash {
	pool, ok := p.pools[alg]
	if !ok {
		return nil
	}

	h, ok := pool.Get().(hash.Hash)
	if !ok {
		return nil
	}

	return h
}

// Put releases the state
func (p *Pools) Put(alg Algorithm, h hash.Hash) {
	pool, ok := p.pools[alg]
	if !ok {
		return
	}

	h.Reset()
	pool.Put(h)
}

// Sum appends the digest of the concatenation of v to dst.
func (p *Pools) Sum(alg Algorithm, dst []byte, v ...[]byte) []byte {
	h := p.Get(alg)
	if h == nil {
		return dst
	}

	for _, b := range v {
		h.Write(b) //nolint:errcheck
	}

	dst = h.Sum(dst)
	p.Put(alg, h)

	return dst
}
