package bash

import (
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/blob"
)

// commit codes
const (
	codeNull byte = 0x01
	codeKey  byte = 0x05
	codeData byte = 0x09
	codeText byte = 0x0D
	codeOut  byte = 0x11
)

// Prg is the programmable automaton bash-prg. Every command starts with a
// commit of its code; absorbed data, output and text are processed in
// pieces of arbitrary length afterwards.
type Prg struct {
	s      [StateSize]byte
	t      [StateSize]byte
	level  int
	d      int
	pos    int
	bufLen int
	keyed  bool
}

func checkAnnKey(level int, ann, key []byte) error {
	if len(ann)%4 != 0 || len(ann) > 60 {
		return errs.Wrap(errs.ErrBadLength, "bash-prg: annotation of %d octets", len(ann))
	}

	if len(key)%4 != 0 || len(key) > 60 || len(key) != 0 && len(key) < level/8 {
		return errs.Wrap(errs.ErrBadLength, "bash-prg: key of %d octets", len(key))
	}

	return nil
}

func (p *Prg) keyedRate() int { return StateSize - p.level*(2+p.d)/16 }

// NewPrg starts the automaton with security level 128, 192 or 256 and
// capacity multiplier d of 1 or 2. The annotation ann and the key hold a
// multiple of 4 octets, at most 60; a nonempty key holds at least level/8
// octets.
func NewPrg(level, d int, ann, key []byte) (*Prg, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}

	if d != 1 && d != 2 {
		return nil, errs.Wrap(errs.ErrBadParams, "bash-prg: capacity %d", d)
	}

	if err := checkAnnKey(level, ann, key); err != nil {
		return nil, err
	}

	p := &Prg{level: level, d: d}

	p.s[0] = byte(len(ann)*4 + len(key)/4)
	copy(p.s[1:], ann)
	copy(p.s[1+len(ann):], key)
	p.pos = 1 + len(ann) + len(key)
	p.s[StateSize-8] = byte(level/4 + d)

	if len(key) > 0 {
		p.keyed = true
		p.bufLen = p.keyedRate()
	} else {
		p.bufLen = StateSize - level*d/4
	}

	return p, nil
}

// IsKeyed reports whether a key has been loaded.
func (p *Prg) IsKeyed() bool { return p.keyed }

func (p *Prg) commit(code byte) {
	p.s[p.pos] ^= code
	p.s[p.bufLen] ^= 0x80
	FOctets(p.s[:])
	p.pos = 0
}

// Restart loads a new annotation and, optionally, a new key.
func (p *Prg) Restart(ann, key []byte) error {
	if err := checkAnnKey(p.level, ann, key); err != nil {
		return err
	}

	if len(key) > 0 {
		p.commit(codeKey)
		p.keyed = true
		p.bufLen = p.keyedRate()
	} else {
		p.commit(codeNull)
	}

	p.s[p.pos] ^= byte(len(ann)*4 + len(key)/4)
	blob.Xor2(p.s[p.pos+1:], ann)
	blob.Xor2(p.s[p.pos+1+len(ann):], key)
	p.pos = 1 + len(ann) + len(key)

	return nil
}

// process walks buf in rate-sized pieces, calling fn on each piece and
// the matching part of the state; the state is permuted whenever the
// buffer fills up.
func (p *Prg) process(buf []byte, fn func(s, b []byte)) {
	for len(buf) > 0 {
		n := p.bufLen - p.pos
		if n > len(buf) {
			n = len(buf)
		}

		fn(p.s[p.pos:p.pos+n], buf[:n])
		p.pos += n
		buf = buf[n:]

		if p.pos == p.bufLen {
			FOctets(p.s[:])
			p.pos = 0
		}
	}
}

// AbsorbStart begins absorbing data.
func (p *Prg) AbsorbStart() { p.commit(codeData) }

// AbsorbStep absorbs buf.
func (p *Prg) AbsorbStep(buf []byte) {
	p.process(buf, func(s, b []byte) { blob.Xor2(s, b) })
}

// Absorb absorbs buf as one command.
func (p *Prg) Absorb(buf []byte) {
	p.AbsorbStart()
	p.AbsorbStep(buf)
}

// SqueezeStart begins producing output.
func (p *Prg) SqueezeStart() { p.commit(codeOut) }

// SqueezeStep fills buf with output.
func (p *Prg) SqueezeStep(buf []byte) {
	p.process(buf, func(s, b []byte) { copy(b, s) })
}

// Squeeze fills buf with output as one command.
func (p *Prg) Squeeze(buf []byte) {
	p.SqueezeStart()
	p.SqueezeStep(buf)
}

// EncrStart begins encrypting; the automaton must be keyed.
func (p *Prg) EncrStart() error {
	if !p.keyed {
		return errs.Wrap(errs.ErrBadLogic, "bash-prg: encryption without a key")
	}

	p.commit(codeText)

	return nil
}

// EncrStep encrypts buf in place.
func (p *Prg) EncrStep(buf []byte) {
	p.process(buf, func(s, b []byte) {
		blob.Xor2(s, b)
		copy(b, s)
	})
}

// DecrStart begins decrypting; the automaton must be keyed.
func (p *Prg) DecrStart() error { return p.EncrStart() }

// DecrStep decrypts buf in place.
func (p *Prg) DecrStep(buf []byte) {
	p.process(buf, func(s, b []byte) {
		for i := range b {
			b[i], s[i] = b[i]^s[i], b[i]
		}
	})
}

// Ratchet makes the current state irreversible.
func (p *Prg) Ratchet() {
	p.t = p.s
	p.commit(codeNull)
	blob.Xor2(p.s[:], p.t[:])
	p.t = [StateSize]byte{}
}

// Wipe zeroes the state.
func (p *Prg) Wipe() {
	p.s = [StateSize]byte{}
	p.t = [StateSize]byte{}
	p.pos = 0
}

// PrgHash hashes x with a keyless automaton and returns n octets of
// output. The annotation ann separates applications.
func PrgHash(level, d int, ann, x []byte, n int) ([]byte, error) {
	p, err := NewPrg(level, d, ann, nil)
	if err != nil {
		return nil, err
	}
	defer p.Wipe()

	y := make([]byte, n)
	p.Absorb(x)
	p.Squeeze(y)

	return y, nil
}

// AEWrap encrypts x under key and authenticates it together with the
// header. The annotation iv makes the encryption unique. The tag holds
// level/8 octets.
func AEWrap(level int, key, iv, header, x []byte) (y, tag []byte, err error) {
	p, err := NewPrg(level, 1, iv, key)
	if err != nil {
		return nil, nil, err
	}
	defer p.Wipe()

	if len(key) == 0 {
		return nil, nil, errs.Wrap(errs.ErrBadLength, "bash-ae: no key")
	}

	p.Absorb(header)

	y = make([]byte, len(x))
	copy(y, x)

	if err := p.EncrStart(); err != nil {
		return nil, nil, err
	}

	p.EncrStep(y)

	tag = make([]byte, level/8)
	p.Squeeze(tag)

	return y, tag, nil
}

// AEUnwrap decrypts y and checks the tag. Nothing is returned when the
// tag does not match.
func AEUnwrap(level int, key, iv, header, y, tag []byte) ([]byte, error) {
	if len(tag) != level/8 {
		return nil, errs.Wrap(errs.ErrBadLength, "bash-ae: tag of %d octets", len(tag))
	}

	p, err := NewPrg(level, 1, iv, key)
	if err != nil {
		return nil, err
	}
	defer p.Wipe()

	p.Absorb(header)

	if err := p.DecrStart(); err != nil {
		return nil, err
	}

	x := make([]byte, len(y))
	copy(x, y)
	p.DecrStep(x)

	t := make([]byte, len(tag))
	p.Squeeze(t)

	if !blob.Equal(t, tag) {
		blob.Wipe(x)
		return nil, errs.ErrBadMAC
	}

	return x, nil
}
