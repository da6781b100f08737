package output

import (
	"io"

	"github.com/spf13/cobra"
)

type commonOutputFormatter struct {
	baseCmd       *cobra.Command
	errorOutput   error
	commandOutput CommandResult
}

func (c *commonOutputFormatter) SetError(err error) {
	c.errorOutput = err
}

func (c *commonOutputFormatter) SetCommandResult(result CommandResult) {
	c.commandOutput = result
}

func (c *commonOutputFormatter) Failed() bool {
	return c.errorOutput != nil
}

func (c *commonOutputFormatter) outWriter() io.Writer {
	return c.baseCmd.OutOrStdout()
}

func (c *commonOutputFormatter) errWriter() io.Writer {
	return c.baseCmd.ErrOrStderr()
}
