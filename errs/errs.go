// Package errs defines the error kinds returned at the library boundary.
//
// Every kind is a sentinel value: callers test with errors.Is and wrap with
// fmt.Errorf("...: %w", err) when context is needed.
package errs

import (
	"errors"
	"fmt"
)

// Group classifies an error kind.
type Group string

const (
	GroupSystem Group = "system"
	GroupFile   Group = "file"
	GroupCore   Group = "core"
	GroupMath   Group = "math"
	GroupCrypto Group = "crypto"
	GroupCmd    Group = "cmd"
)

// Kind is a library error kind.
type Kind struct {
	group Group
	msg   string
}

func newKind(group Group, msg string) *Kind {
	return &Kind{group: group, msg: msg}
}

func (k *Kind) Error() string {
	return k.msg
}

// Group returns the group the kind belongs to.
func (k *Kind) Group() Group {
	return k.group
}

var (
	// system
	ErrOutOfMemory      = newKind(GroupSystem, "out of memory")
	ErrNotEnoughEntropy = newKind(GroupSystem, "not enough entropy")
	ErrBadEntropy       = newKind(GroupSystem, "bad entropy")
	ErrNotFound         = newKind(GroupSystem, "not found")

	// file
	ErrFileOpen  = newKind(GroupFile, "file open failed")
	ErrFileRead  = newKind(GroupFile, "file read failed")
	ErrFileWrite = newKind(GroupFile, "file write failed")

	// core
	ErrBadInput       = newKind(GroupCore, "bad input")
	ErrBadLength      = newKind(GroupCore, "bad length")
	ErrBadLogic       = newKind(GroupCore, "bad logic")
	ErrSelfTest       = newKind(GroupCore, "self-test failed")
	ErrStatTest       = newKind(GroupCore, "statistical test failed")
	ErrNotImplemented = newKind(GroupCore, "not implemented")

	// math
	ErrBadParams     = newKind(GroupMath, "bad parameters")
	ErrNotPrime      = newKind(GroupMath, "not a prime")
	ErrNotIrred      = newKind(GroupMath, "not an irreducible polynomial")
	ErrBadPoint      = newKind(GroupMath, "bad point")
	ErrNotInvertible = newKind(GroupMath, "element is not invertible")

	// crypto
	ErrBadRng       = newKind(GroupCrypto, "bad random number generator")
	ErrBadPubkey    = newKind(GroupCrypto, "bad public key")
	ErrBadPrivkey   = newKind(GroupCrypto, "bad private key")
	ErrBadSig       = newKind(GroupCrypto, "bad signature")
	ErrBadMAC       = newKind(GroupCrypto, "bad MAC")
	ErrBadKeyToken  = newKind(GroupCrypto, "bad key token")
	ErrBadHash      = newKind(GroupCrypto, "bad hash")
	ErrBadCert      = newKind(GroupCrypto, "bad certificate")
	ErrBadSharedKey = newKind(GroupCrypto, "bad shared key")

	// cmd
	ErrBadAPDU = newKind(GroupCmd, "bad APDU")
)

// GroupOf returns the group of the first library error kind found in the
// chain of err.
func GroupOf(err error) (Group, bool) {
	var k *Kind
	if errors.As(err, &k) {
		return k.group, true
	}

	return "", false
}

// Wrap annotates kind with a formatted message while keeping errors.Is working.
func Wrap(kind *Kind, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
