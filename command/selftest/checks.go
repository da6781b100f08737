package selftest

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/bee2-go/bee2/bels"
	"github.com/bee2-go/bee2/belt"
	"github.com/bee2-go/bee2/brng"
	"github.com/bee2-go/bee2/crypto"
	"github.com/bee2-go/bee2/curves"
	"github.com/bee2-go/bee2/errs"
	"github.com/bee2-go/bee2/helper/hex"
	"github.com/bee2-go/bee2/rng"
)

type check struct {
	name string
	run  func(logger hclog.Logger) error
}

func expect(what string, got []byte, want string) error {
	if !hex.EqualHex(got, want) {
		return errs.Wrap(errs.ErrSelfTest, "%s: got %s", what, hex.EncodeUpper(got))
	}

	return nil
}

func checkBeltBlock(hclog.Logger) error {
	key, err := belt.KeyExpand(belt.H[128:160])
	if err != nil {
		return err
	}
	defer key.Wipe()

	buf := append([]byte(nil), belt.H[:belt.BlockSize]...)

	belt.BlockEncr(buf, &key)

	if err := expect("belt-block", buf, "69CCA1C93557C9E3D66BC3E0FA88FA6E"); err != nil {
		return err
	}

	belt.BlockDecr(buf, &key)

	return expect("belt-block decryption", buf, hex.EncodeUpper(belt.H[:belt.BlockSize]))
}

func checkBeltMAC(hclog.Logger) error {
	tag, err := belt.ComputeMAC(belt.H[:13], belt.H[128:160])
	if err != nil {
		return err
	}

	return expect("belt-mac", tag, "7260DA60138F96C9")
}

func checkBeltHash(hclog.Logger) error {
	sum := crypto.BeltHash32(belt.H[:5], belt.H[5:13])

	return expect("belt-hash", sum[:], "ABEF9725D4C5A83597A367D14494CC2542F20F659DDFECC961A3EC550CBA8C75")
}

func checkBashHash(hclog.Logger) error {
	sum, err := crypto.BashHash(128, belt.H[:127])
	if err != nil {
		return err
	}

	return expect("bash256", sum, "3D7F4EFA00E9BA33FEED259986567DCF5C6D12D51057A968F14F06CC0F905961")
}

func checkBrng(hclog.Logger) error {
	g, err := brng.NewCTR(belt.H[128:160], belt.H[192:224])
	if err != nil {
		return err
	}
	defer g.Wipe()

	buf := append([]byte(nil), belt.H[:32]...)
	g.Step(buf)

	return expect("brng-ctr", buf, "1F66B5B84B7339674533F0329C74F21834281FED0732429E0C79235FC273E269")
}

func checkBels(hclog.Logger) error {
	secret := belt.H[:16]

	shares, err := bels.Share3(secret, 3, 5)
	if err != nil {
		return err
	}

	got, err := bels.Recover2([][]byte{shares[4], shares[0], shares[2]})
	if err != nil {
		return err
	}

	if !bytes.Equal(got, secret) {
		return errs.Wrap(errs.ErrSelfTest, "bels: recovered secret differs")
	}

	return nil
}

func checkCurves(logger hclog.Logger) error {
	for _, name := range curves.Names() {
		if _, err := curves.Get(name); err != nil {
			return err
		}

		logger.Debug("curve validated", "name", name)
	}

	return nil
}

func checkRng(logger hclog.Logger) error {
	r, err := rng.New(&rng.Config{Logger: logger})
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.HealthCheck(); err != nil {
		return fmt.Errorf("rng health check: %w", err)
	}

	return nil
}

func allChecks(skipRng bool) []check {
	checks := []check{
		{"belt-block", checkBeltBlock},
		{"belt-mac", checkBeltMAC},
		{"belt-hash", checkBeltHash},
		{"bash-hash", checkBashHash},
		{"brng-ctr", checkBrng},
		{"bels", checkBels},
		{"curves", checkCurves},
	}

	if !skipRng {
		checks = append(checks, check{"rng", checkRng})
	}

	return checks
}
