package selftest

import (
	"github.com/hashicorp/go-hclog"
)

const (
	skipRngFlag = "skip-rng"
)

var (
	params = &selftestParams{}
)

type selftestParams struct {
	skipRng bool
}

func (sp *selftestParams) runChecks(logger hclog.Logger) *SelftestResult {
	result := &SelftestResult{Passed: true}

	for _, c := range allChecks(sp.skipRng) {
		status := CheckStatus{Name: c.name, Status: statusOK}

		if err := c.run(logger.Named(c.name)); err != nil {
			logger.Error("self-test failed", "check", c.name, "err", err)

			status.Status = statusFailed
			status.Error = err.Error()
			result.Passed = false
		}

		result.Checks = append(result.Checks, status)
	}

	return result
}
