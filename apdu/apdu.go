// Package apdu encodes and decodes ISO/IEC 7816-4 command and response
// APDUs and the BER-TLV objects used by secure messaging.
package apdu

import (
	"github.com/bee2-go/bee2/errs"
)

const (
	// MaxShort is the largest data length of a short APDU.
	MaxShort = 255
	// MaxExtended is the largest data length of an extended APDU.
	MaxExtended = 65535
	// MaxRdfShort is the largest response length a short Le can request.
	MaxRdfShort = 256
	// MaxRdfExtended is the largest response length an extended Le can request.
	MaxRdfExtended = 65536
)

// Cmd is a command APDU. Rdf is the expected response length Ne; zero
// means no Le field.
type Cmd struct {
	CLA byte
	INS byte
	P1  byte
	P2  byte
	CDF []byte
	Rdf int
}

// IsValid checks the data and response lengths.
func (c *Cmd) IsValid() bool {
	return len(c.CDF) <= MaxExtended && c.Rdf >= 0 && c.Rdf <= MaxRdfExtended
}

func (c *Cmd) extended() bool {
	return len(c.CDF) > MaxShort || c.Rdf > MaxRdfShort
}

// Encode returns the APDU octets. When either Lc or Le does not fit the
// short form, both are written in the extended form.
func (c *Cmd) Encode() ([]byte, error) {
	if !c.IsValid() {
		return nil, errs.Wrap(errs.ErrBadAPDU, "cdf of %d octets, rdf %d", len(c.CDF), c.Rdf)
	}

	out := make([]byte, 0, 4+3+len(c.CDF)+3)
	out = append(out, c.CLA, c.INS, c.P1, c.P2)

	if !c.extended() {
		if len(c.CDF) > 0 {
			out = append(out, byte(len(c.CDF)))
			out = append(out, c.CDF...)
		}

		if c.Rdf > 0 {
			// 256 is coded as 0x00
			out = append(out, byte(c.Rdf))
		}

		return out, nil
	}

	if len(c.CDF) > 0 {
		out = append(out, 0, byte(len(c.CDF)>>8), byte(len(c.CDF)))
		out = append(out, c.CDF...)
	}

	if c.Rdf > 0 {
		if len(c.CDF) == 0 {
			out = append(out, 0)
		}

		// 65536 is coded as 0x0000
		out = append(out, byte(c.Rdf>>8), byte(c.Rdf))
	}

	return out, nil
}

func shortLe(b byte) int {
	if b == 0 {
		return MaxRdfShort
	}

	return int(b)
}

func extLe(hi, lo byte) int {
	if v := int(hi)<<8 | int(lo); v != 0 {
		return v
	}

	return MaxRdfExtended
}

// DecodeCmd parses a command APDU in any of the short and extended forms.
// The CDF of the result shares memory with b.
func DecodeCmd(b []byte) (*Cmd, error) {
	if len(b) < 4 {
		return nil, errs.Wrap(errs.ErrBadAPDU, "command of %d octets", len(b))
	}

	c := &Cmd{CLA: b[0], INS: b[1], P1: b[2], P2: b[3]}
	body := b[4:]

	switch {
	case len(body) == 0:
		return c, nil
	case len(body) == 1:
		c.Rdf = shortLe(body[0])
		return c, nil
	case body[0] != 0:
		lc := int(body[0])

		switch len(body) {
		case 1 + lc:
			c.CDF = body[1:]
		case 2 + lc:
			c.CDF = body[1 : 1+lc]
			c.Rdf = shortLe(body[1+lc])
		default:
			return nil, errs.Wrap(errs.ErrBadAPDU, "short lc %d in %d octets", lc, len(body))
		}

		return c, nil
	case len(body) == 3:
		c.Rdf = extLe(body[1], body[2])
		return c, nil
	case len(body) > 3:
		lc := int(body[1])<<8 | int(body[2])
		if lc == 0 {
			return nil, errs.Wrap(errs.ErrBadAPDU, "zero extended lc")
		}

		switch len(body) {
		case 3 + lc:
			c.CDF = body[3:]
		case 5 + lc:
			c.CDF = body[3 : 3+lc]
			c.Rdf = extLe(body[3+lc], body[4+lc])
		default:
			return nil, errs.Wrap(errs.ErrBadAPDU, "extended lc %d in %d octets", lc, len(body))
		}

		return c, nil
	}

	return nil, errs.Wrap(errs.ErrBadAPDU, "malformed body of %d octets", len(body))
}

// Resp is a response APDU.
type Resp struct {
	RDF []byte
	SW1 byte
	SW2 byte
}

// IsValid checks the response data length.
func (r *Resp) IsValid() bool {
	return len(r.RDF) <= MaxRdfExtended
}

// Encode returns RDF || SW1 || SW2.
func (r *Resp) Encode() ([]byte, error) {
	if !r.IsValid() {
		return nil, errs.Wrap(errs.ErrBadAPDU, "rdf of %d octets", len(r.RDF))
	}

	out := make([]byte, 0, len(r.RDF)+2)
	out = append(out, r.RDF...)

	return append(out, r.SW1, r.SW2), nil
}

// DecodeResp parses a response APDU. The RDF shares memory with b.
func DecodeResp(b []byte) (*Resp, error) {
	if len(b) < 2 || len(b)-2 > MaxRdfExtended {
		return nil, errs.Wrap(errs.ErrBadAPDU, "response of %d octets", len(b))
	}

	n := len(b) - 2

	return &Resp{RDF: b[:n], SW1: b[n], SW2: b[n+1]}, nil
}

// StatusOK reports whether the status word is 9000.
func (r *Resp) StatusOK() bool {
	return r.SW1 == 0x90 && r.SW2 == 0x00
}
