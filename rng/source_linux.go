//go:build linux

package rng

import (
	"golang.org/x/sys/unix"

	"github.com/bee2-go/bee2/errs"
)

type getrandomSource struct{}

func sysSource() Source { return getrandomSource{} }

func (getrandomSource) Name() string { return "getrandom" }

func (getrandomSource) Read(p []byte) (int, error) {
	n := 0

	for n < len(p) {
		k, err := unix.Getrandom(p[n:], 0)
		if err == unix.EINTR {
			continue
		}

		if err != nil {
			return n, errs.Wrap(errs.ErrNotFound, "getrandom: %v", err)
		}

		n += k
	}

	return n, nil
}
