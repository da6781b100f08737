// Package crypto is the entry point for callers that only need hashing:
// it names the supported hash algorithms and keeps pools of hash states
// so that one-shot digests do not allocate.
package crypto

import (
	"hash"
	"sort"

	"github.com/bee2-go/bee2/bash"
	"github.com/bee2-go/bee2/belt"
	"github.com/bee2-go/bee2/errs"
)

// Algorithm names a hash algorithm.
type Algorithm string

const (
	AlgBelt    Algorithm = "belt"
	AlgBash256 Algorithm = "bash256"
	AlgBash384 Algorithm = "bash384"
	AlgBash512 Algorithm = "bash512"
)

var constructors = map[Algorithm]func() hash.Hash{
	AlgBelt:    belt.NewHash,
	AlgBash256: bash.New256,
	AlgBash384: bash.New384,
	AlgBash512: bash.New512,
}

// Algorithms returns the supported algorithm names in lexical order.
func Algorithms() []string {
	names := make([]string, 0, len(constructors))
	for alg := range constructors {
		names = append(names, string(alg))
	}

	sort.Strings(names)

	return names
}

// ParseAlgorithm checks an algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(name)
	if _, ok := constructors[alg]; !ok {
		return "", errs.Wrap(errs.ErrNotFound, "hash algorithm %q", name)
	}

	return alg, nil
}

// NewHash returns a fresh state of the named algorithm.
func NewHash(alg Algorithm) (hash.Hash, error) {
	fn, ok := constructors[alg]
	if !ok {
		return nil, errs.Wrap(errs.ErrNotFound, "hash algorithm %q", alg)
	}

	return fn(), nil
}

// BeltHash calculates belt-hash of the concatenation of v.
func BeltHash(v ...[]byte) []byte {
	return DefaultPools.Sum(AlgBelt, nil, v...)
}

// BeltHash32 is BeltHash returning an array.
func BeltHash32(v ...[]byte) (out [belt.HashSize]byte) {
	DefaultPools.Sum(AlgBelt, out[:0], v...)

	return out
}

// BashHash calculates bash-hash of security level 128, 192 or 256 of the
// concatenation of v.
func BashHash(level int, v ...[]byte) ([]byte, error) {
	var alg Algorithm

	switch level {
	case 128:
		alg = AlgBash256
	case 192:
		alg = AlgBash384
	case 256:
		alg = AlgBash512
	default:
		return nil, errs.Wrap(errs.ErrBadParams, "bash level %d", level)
	}

	return DefaultPools.Sum(alg, nil, v...), nil
}
