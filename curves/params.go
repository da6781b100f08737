package curves

import (
	"crypto/elliptic"
	"math/big"

	"github.com/bee2-go/bee2/ec"
	"github.com/bee2-go/bee2/ec2"
	"github.com/bee2-go/bee2/ecp"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/gf2"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/zm"
	"github.com/bee2-go/bee2/zz"
)

// definition describes how to build a named group.
type definition interface {
	build() (*ec.Group, error)
}

// primeDef is a curve y^2 = x^3 + ax + b over GF(p).
type primeDef struct {
	p, a, b, gx, gy, n *big.Int
	cofactor           word.Word
}

// binaryDef is a curve y^2 + xy = x^3 + ax^2 + b over GF(2^m) modulo
// x^m + x^k + x^l + x^l1 + 1 (l = l1 = 0 for a trinomial).
type binaryDef struct {
	m, k, l, l1     int
	a, b, gx, gy, n *big.Int
	cofactor        word.Word
}

func mustHex(s string) *big.Int {
	x, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curves: bad constant " + s)
	}

	return x
}

func leBytes(x *big.Int, no int) []byte {
	buf := x.FillBytes(make([]byte, no))
	for i, j := 0, no-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return buf
}

func nistDef(curve elliptic.Curve) primeDef {
	p := curve.Params()

	return primeDef{
		p:        p.P,
		a:        new(big.Int).Sub(p.P, big.NewInt(3)),
		b:        p.B,
		gx:       p.Gx,
		gy:       p.Gy,
		n:        p.N,
		cofactor: 1,
	}
}

var definitions = map[string]definition{
	"P-224": nistDef(elliptic.P224()),
	"P-256": nistDef(elliptic.P256()),
	"P-384": nistDef(elliptic.P384()),
	"P-521": nistDef(elliptic.P521()),
	"secp256k1": primeDef{
		p:        mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
		a:        big.NewInt(0),
		b:        big.NewInt(7),
		gx:       mustHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		gy:       mustHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
		n:        mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
		cofactor: 1,
	},
	"K-163": binaryDef{
		m: 163, k: 7, l: 6, l1: 3,
		a:        big.NewInt(1),
		b:        big.NewInt(1),
		gx:       mustHex("02FE13C0537BBC11ACAA07D793DE4E6D5E5C94EEE8"),
		gy:       mustHex("0289070FB05D38FF58321F2E800536D538CCDAA3D9"),
		n:        mustHex("04000000000000000000020108A2E0CC0D99F8A5EF"),
		cofactor: 2,
	},
}

// group assembles the group once the curve is built.
func group(c ec.Curve, gx, gy, order *big.Int, cofactor word.Word) (*ec.Group, error) {
	f := c.Field()
	base := f.Base()
	n := base.N

	g := &ec.Group{
		Curve:    c,
		Base:     make([]word.Word, 2*n),
		Order:    make([]word.Word, word.OfB(order.BitLen())),
		Cofactor: cofactor,
	}

	if !f.From(g.Base[:n], leBytes(gx, base.NO), nil) ||
		!f.From(g.Base[n:], leBytes(gy, base.NO), nil) {
		return nil, errs.Wrap(errs.ErrBadPoint, "base point coordinates")
	}

	zz.FromOctets(g.Order, leBytes(order, len(g.Order)*word.O))

	return g, nil
}

func (d primeDef) build() (*ec.Group, error) {
	no := (d.p.BitLen() + 7) / 8

	f, err := zm.Create(leBytes(d.p, no))
	if err != nil {
		return nil, err
	}

	c, err := ecp.Create(f, leBytes(d.a, no), leBytes(d.b, no))
	if err != nil {
		return nil, err
	}

	return group(c, d.gx, d.gy, d.n, d.cofactor)
}

func (d binaryDef) build() (*ec.Group, error) {
	f, err := gf2.Create(d.m, d.k, d.l, d.l1)
	if err != nil {
		return nil, err
	}

	if err := f.IsValid(); err != nil {
		return nil, err
	}

	no := f.Base().NO

	c, err := ec2.Create(f, leBytes(d.a, no), leBytes(d.b, no))
	if err != nil {
		return nil, err
	}

	return group(c, d.gx, d.gy, d.n, d.cofactor)
}
