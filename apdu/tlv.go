package apdu

import (
	"github.com/bee2-go/bee2/errs"
)

// AppendTLV appends a single-octet-tag TLV object with a BER length.
func AppendTLV(dst []byte, tag byte, value []byte) []byte {
	n := len(value)

	switch {
	case n < 0x80:
		dst = append(dst, tag, byte(n))
	case n < 0x100:
		dst = append(dst, tag, 0x81, byte(n))
	default:
		dst = append(dst, tag, 0x82, byte(n>>8), byte(n))
	}

	return append(dst, value...)
}

// ParseTLV splits the first TLV object off b. The value shares memory
// with b.
func ParseTLV(b []byte) (tag byte, value, rest []byte, err error) {
	if len(b) < 2 {
		return 0, nil, nil, errs.Wrap(errs.ErrBadAPDU, "tlv of %d octets", len(b))
	}

	tag = b[0]
	n, hdr := int(b[1]), 2

	switch b[1] {
	case 0x81:
		if len(b) < 3 || b[2] < 0x80 {
			return 0, nil, nil, errs.Wrap(errs.ErrBadAPDU, "tlv length")
		}

		n, hdr = int(b[2]), 3
	case 0x82:
		if len(b) < 4 || b[2] == 0 {
			return 0, nil, nil, errs.Wrap(errs.ErrBadAPDU, "tlv length")
		}

		n, hdr = int(b[2])<<8|int(b[3]), 4
	default:
		if n >= 0x80 {
			return 0, nil, nil, errs.Wrap(errs.ErrBadAPDU, "tlv length form %02x", b[1])
		}
	}

	if len(b) < hdr+n {
		return 0, nil, nil, errs.Wrap(errs.ErrBadAPDU, "tlv value of %d octets truncated", n)
	}

	return tag, b[hdr : hdr+n], b[hdr+n:], nil
}
