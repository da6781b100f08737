package hash

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bee2-go/bee2/crypto"
	"github.com/bee2-go/bee2/helper/hex"
)

const (
	algFlag = "alg"

	stdinName = "-"
)

var (
	params = &hashParams{}
)

type hashParams struct {
	algRaw string
	files  []string

	alg crypto.Algorithm
}

func (hp *hashParams) validateFlags() error {
	alg, err := crypto.ParseAlgorithm(hp.algRaw)
	if err != nil {
		return fmt.Errorf("unsupported --%s, expected one of %s: %w",
			algFlag, strings.Join(crypto.Algorithms(), ", "), err)
	}

	hp.alg = alg

	return nil
}

func (hp *hashParams) hashAll(stdin io.Reader) (*HashResult, error) {
	files := hp.files
	if len(files) == 0 {
		files = []string{stdinName}
	}

	result := &HashResult{Algorithm: string(hp.alg)}

	for _, name := range files {
		digest, err := hp.hashFile(name, stdin)
		if err != nil {
			return nil, err
		}

		result.Digests = append(result.Digests, FileDigest{File: name, Digest: digest})
	}

	return result, nil
}

func (hp *hashParams) hashFile(name string, stdin io.Reader) (string, error) {
	h := crypto.DefaultPools.Get(hp.alg)
	if h == nil {
		_, err := crypto.NewHash(hp.alg)

		return "", err
	}
	defer crypto.DefaultPools.Put(hp.alg, h)

	r := stdin

	if name != stdinName {
		f, err := os.Open(name)
		if err != nil {
			return "", fmt.Errorf("unable to open %s: %w", name, err)
		}
		defer f.Close()

		r = f
	}

	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("unable to read %s: %w", name, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
