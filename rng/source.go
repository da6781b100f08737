package rng

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/bee2-go/bee2/errs"
)

// Source is a system entropy source.
type Source interface {
	// Name identifies the source in logs and results.
	Name() string
	// Read fills p completely or fails.
	Read(p []byte) (int, error)
}

// fileSource reads a character device such as /dev/urandom.
type fileSource struct {
	path string
}

// NewFileSource returns a source reading the file at path.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Name() string { return "file:" + s.path }

func (s *fileSource) Read(p []byte) (int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, errs.Wrap(errs.ErrNotFound, "%s", s.path)
		}

		return 0, errs.Wrap(errs.ErrFileOpen, "%v", err)
	}
	defer f.Close()

	n, err := io.ReadFull(f, p)
	if err != nil {
		return n, errs.Wrap(errs.ErrFileRead, "%v", err)
	}

	return n, nil
}

// DefaultSources returns the sources available on this platform: the
// system random device and, where supported, the getrandom system call.
func DefaultSources() []Source {
	sources := []Source{NewFileSource("/dev/urandom")}
	if s := sysSource(); s != nil {
		sources = append(sources, s)
	}

	return sources
}

// IsSourceAvailable probes s with a short read.
func IsSourceAvailable(s Source) bool {
	var buf [16]byte

	_, err := s.Read(buf[:])

	return err == nil
}
