package hash

import (
	"bytes"
	"fmt"

	"github.com/bee2-go/bee2/command/helper"
)

type FileDigest struct {
	File   string `json:"file"`
	Digest string `json:"digest"`
}

type HashResult struct {
	Algorithm string       `json:"algorithm"`
	Digests   []FileDigest `json:"digests"`
}

func (r *HashResult) GetOutput() string {
	var buffer bytes.Buffer

	rows := make([]string, len(r.Digests))
	for i, d := range r.Digests {
		rows[i] = fmt.Sprintf("%s|%s", d.Digest, d.File)
	}

	buffer.WriteString(fmt.Sprintf("\n[%s]\n", r.Algorithm))
	buffer.WriteString(helper.FormatList(rows))

	return buffer.String()
}
