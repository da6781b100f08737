// Package btok implements secure messaging between a terminal and a
// token: command and response APDUs are encrypted with belt-cfb and
// authenticated with belt-mac under keys derived from a shared secret.
package btok

import (
	"github.com/bee2-go/bee2/apdu"
	"github.com/bee2-go/bee2/belt"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/blob"
)

// secure messaging TLV tags
const (
	TagCipher byte = 0x87
	TagRdf    byte = 0x97
	TagMAC    byte = 0x8E

	paddingIndicator byte = 0x02
	claSM            byte = 0x04
)

// SM is one side of a secure channel. The same counter runs on both
// sides: it becomes odd when a command is wrapped or unwrapped and even
// when a response is.
type SM struct {
	k1  []byte
	k2  []byte
	ctr [belt.BlockSize]byte
}

// NewSM derives the MAC key k1 and the encryption key k2 from the shared
// 32-octet key.
func NewSM(key []byte) (*SM, error) {
	if len(key) != belt.KeySize {
		return nil, errs.Wrap(errs.ErrBadLength, "btok-sm: key of %d octets", len(key))
	}

	var (
		level  [12]byte
		header [16]byte
		err    error
	)

	s := &SM{}

	header[0] = 1
	if s.k1, err = belt.KRP(key, belt.KeySize, level[:], header[:]); err != nil {
		return nil, err
	}

	header[0] = 2
	if s.k2, err = belt.KRP(key, belt.KeySize, level[:], header[:]); err != nil {
		return nil, err
	}

	return s, nil
}

// Wipe zeroes the keys.
func (s *SM) Wipe() {
	blob.Wipe(s.k1)
	blob.Wipe(s.k2)
	s.ctr = [belt.BlockSize]byte{}
}

// next returns the incremented counter and checks that its parity matches
// the direction: odd for commands, even for responses. The counter itself
// is left untouched until the caller commits the result.
func (s *SM) next(odd bool) ([belt.BlockSize]byte, error) {
	ctr := s.ctr
	for i := range ctr {
		ctr[i]++
		if ctr[i] != 0 {
			break
		}
	}

	if (ctr[0]&1 == 1) != odd {
		return ctr, errs.Wrap(errs.ErrBadLogic, "btok-sm: counter out of order")
	}

	return ctr, nil
}

func (s *SM) encrypt(ctr []byte, data []byte) ([]byte, error) {
	out := make([]byte, 1+len(data))
	out[0] = paddingIndicator

	if err := belt.CFBEncr(out[1:], data, s.k2, ctr); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *SM) decrypt(ctr []byte, value []byte) ([]byte, error) {
	if len(value) < 1 || value[0] != paddingIndicator {
		return nil, errs.Wrap(errs.ErrBadAPDU, "btok-sm: padding indicator")
	}

	out := make([]byte, len(value)-1)
	if err := belt.CFBDecr(out, value[1:], s.k2, ctr); err != nil {
		return nil, err
	}

	return out, nil
}

// mac authenticates ctr followed by the given parts.
func (s *SM) mac(ctr []byte, parts ...[]byte) ([]byte, error) {
	m, err := belt.NewMAC(s.k1)
	if err != nil {
		return nil, err
	}
	defer m.Wipe()

	m.Write(ctr) //nolint:errcheck

	for _, p := range parts {
		m.Write(p) //nolint:errcheck
	}

	return m.Sum(nil), nil
}

// rdfValue codes the expected response length the way Le does.
func rdfValue(rdf int) []byte {
	if rdf <= apdu.MaxRdfShort {
		return []byte{byte(rdf)}
	}

	return []byte{byte(rdf >> 8), byte(rdf)}
}

func rdfFromValue(v []byte) (int, error) {
	switch len(v) {
	case 1:
		if v[0] == 0 {
			return apdu.MaxRdfShort, nil
		}

		return int(v[0]), nil
	case 2:
		if r := int(v[0])<<8 | int(v[1]); r != 0 {
			return r, nil
		}

		return apdu.MaxRdfExtended, nil
	}

	return 0, errs.Wrap(errs.ErrBadAPDU, "btok-sm: rdf of %d octets", len(v))
}

// WrapCmd protects a command. The result asks for the largest response
// its length form allows since the protected response is longer than the
// plain one.
func (s *SM) WrapCmd(cmd *apdu.Cmd) (*apdu.Cmd, error) {
	if !cmd.IsValid() {
		return nil, errs.Wrap(errs.ErrBadAPDU, "btok-sm: invalid command")
	}

	if cmd.CLA&claSM != 0 {
		return nil, errs.Wrap(errs.ErrBadAPDU, "btok-sm: command already protected")
	}

	ctr, err := s.next(true)
	if err != nil {
		return nil, err
	}

	hdr := []byte{cmd.CLA | claSM, cmd.INS, cmd.P1, cmd.P2}

	var body []byte

	if len(cmd.CDF) > 0 {
		enc, err := s.encrypt(ctr[:], cmd.CDF)
		if err != nil {
			return nil, err
		}

		body = apdu.AppendTLV(body, TagCipher, enc)
	}

	if cmd.Rdf > 0 {
		body = apdu.AppendTLV(body, TagRdf, rdfValue(cmd.Rdf))
	}

	tag, err := s.mac(ctr[:], hdr, body)
	if err != nil {
		return nil, err
	}

	body = apdu.AppendTLV(body, TagMAC, tag)

	out := &apdu.Cmd{CLA: hdr[0], INS: hdr[1], P1: hdr[2], P2: hdr[3], CDF: body}
	if len(body) > apdu.MaxShort {
		out.Rdf = apdu.MaxRdfExtended
	} else {
		out.Rdf = apdu.MaxRdfShort
	}

	if !out.IsValid() {
		return nil, errs.Wrap(errs.ErrBadAPDU, "btok-sm: protected command too long")
	}

	s.ctr = ctr

	return out, nil
}

// parsed holds the secure messaging objects of an APDU body.
type parsed struct {
	cipher []byte
	rdf    []byte
	mac    []byte
	// authenticated prefix of the body
	signed []byte
}

func parseBody(body []byte, allowRdf bool) (*parsed, error) {
	p := &parsed{}
	rest := body

	for len(rest) > 0 {
		tag, value, next, err := apdu.ParseTLV(rest)
		if err != nil {
			return nil, err
		}

		switch {
		case tag == TagCipher && p.cipher == nil && p.rdf == nil:
			p.cipher = value
		case tag == TagRdf && allowRdf && p.rdf == nil:
			p.rdf = value
		case tag == TagMAC && len(next) == 0:
			p.mac = value
			p.signed = body[:len(body)-len(rest)]
		default:
			return nil, errs.Wrap(errs.ErrBadAPDU, "btok-sm: unexpected tag %02x", tag)
		}

		rest = next
	}

	if p.mac == nil || len(p.mac) != belt.MACSize {
		return nil, errs.Wrap(errs.ErrBadAPDU, "btok-sm: no MAC")
	}

	return p, nil
}

// UnwrapCmd checks and decrypts a protected command. The counter moves
// only once the MAC verifies, so a rejected command may be sent again.
func (s *SM) UnwrapCmd(cmd *apdu.Cmd) (*apdu.Cmd, error) {
	if cmd.CLA&claSM == 0 {
		return nil, errs.Wrap(errs.ErrBadAPDU, "btok-sm: command is not protected")
	}

	p, err := parseBody(cmd.CDF, true)
	if err != nil {
		return nil, err
	}

	ctr, err := s.next(true)
	if err != nil {
		return nil, err
	}

	tag, err := s.mac(ctr[:], []byte{cmd.CLA, cmd.INS, cmd.P1, cmd.P2}, p.signed)
	if err != nil {
		return nil, err
	}

	if !blob.Equal(tag, p.mac) {
		return nil, errs.ErrBadMAC
	}

	s.ctr = ctr

	out := &apdu.Cmd{CLA: cmd.CLA &^ claSM, INS: cmd.INS, P1: cmd.P1, P2: cmd.P2}

	if p.rdf != nil {
		if out.Rdf, err = rdfFromValue(p.rdf); err != nil {
			return nil, err
		}
	}

	if p.cipher != nil {
		if out.CDF, err = s.decrypt(ctr[:], p.cipher); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// WrapResp protects a response.
func (s *SM) WrapResp(resp *apdu.Resp) (*apdu.Resp, error) {
	if !resp.IsValid() {
		return nil, errs.Wrap(errs.ErrBadAPDU, "btok-sm: invalid response")
	}

	ctr, err := s.next(false)
	if err != nil {
		return nil, err
	}

	var body []byte

	if len(resp.RDF) > 0 {
		enc, err := s.encrypt(ctr[:], resp.RDF)
		if err != nil {
			return nil, err
		}

		body = apdu.AppendTLV(body, TagCipher, enc)
	}

	tag, err := s.mac(ctr[:], body, []byte{resp.SW1, resp.SW2})
	if err != nil {
		return nil, err
	}

	body = apdu.AppendTLV(body, TagMAC, tag)

	out := &apdu.Resp{RDF: body, SW1: resp.SW1, SW2: resp.SW2}
	if !out.IsValid() {
		return nil, errs.Wrap(errs.ErrBadAPDU, "btok-sm: protected response too long")
	}

	s.ctr = ctr

	return out, nil
}

// isSuccess reports whether a status word signals normal processing.
// Such responses are always protected.
func isSuccess(sw1 byte) bool {
	return sw1 == 0x90 || sw1 == 0x61
}

// UnwrapResp checks and decrypts a protected response. A response without
// data carrying an error status word, as tokens send on failures, is
// returned as is. A bare success status fails with ErrBadMAC.
func (s *SM) UnwrapResp(resp *apdu.Resp) (*apdu.Resp, error) {
	ctr, err := s.next(false)
	if err != nil {
		return nil, err
	}

	if len(resp.RDF) == 0 {
		if isSuccess(resp.SW1) {
			return nil, errs.Wrap(errs.ErrBadMAC, "btok-sm: unprotected status %02X%02X", resp.SW1, resp.SW2)
		}

		s.ctr = ctr

		return &apdu.Resp{SW1: resp.SW1, SW2: resp.SW2}, nil
	}

	p, err := parseBody(resp.RDF, false)
	if err != nil {
		return nil, err
	}

	tag, err := s.mac(ctr[:], p.signed, []byte{resp.SW1, resp.SW2})
	if err != nil {
		return nil, err
	}

	if !blob.Equal(tag, p.mac) {
		return nil, errs.ErrBadMAC
	}

	s.ctr = ctr

	out := &apdu.Resp{SW1: resp.SW1, SW2: resp.SW2}

	if p.cipher != nil {
		if out.RDF, err = s.decrypt(ctr[:], p.cipher); err != nil {
			return nil, err
		}
	}

	return out, nil
}
