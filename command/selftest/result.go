package selftest

import (
	"bytes"
	"fmt"

	"github.com/bee2-go/bee2/command/helper"
)

const (
	statusOK     = "ok"
	statusFailed = "failed"
)

type CheckStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type SelftestResult struct {
	Passed bool          `json:"passed"`
	Checks []CheckStatus `json:"checks"`
}

func (r *SelftestResult) GetOutput() string {
	var buffer bytes.Buffer

	rows := make([]string, 0, len(r.Checks)+1)
	rows = append(rows, "CHECK|STATUS|ERROR")

	for _, c := range r.Checks {
		rows = append(rows, fmt.Sprintf("%s|%s|%s", c.Name, c.Status, c.Error))
	}

	buffer.WriteString("\n[SELF-TEST]\n")
	buffer.WriteString(helper.FormatList(rows))
	buffer.WriteString("\n")

	if r.Passed {
		buffer.WriteString("All checks passed\n")
	} else {
		buffer.WriteString("Some checks failed\n")
	}

	return buffer.String()
}
