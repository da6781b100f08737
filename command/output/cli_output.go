package output

import (
	"fmt"

	"github.com/spf13/cobra"
)

type CLIOutput struct {
	commonOutputFormatter
}

func newCLIOutput(cmd *cobra.Command) *CLIOutput {
	return &CLIOutput{commonOutputFormatter{baseCmd: cmd}}
}

func (cli *CLIOutput) WriteOutput() {
	if cli.errorOutput != nil {
		_, _ = fmt.Fprintln(cli.errWriter(), cli.getErrorOutput())

		return
	}

	_, _ = fmt.Fprintln(cli.outWriter(), cli.getCommandOutput())
}

func (cli *CLIOutput) getErrorOutput() string {
	return cli.errorOutput.Error()
}

func (cli *CLIOutput) getCommandOutput() string {
	if cli.commandOutput == nil {
		return ""
	}

	return cli.commandOutput.GetOutput()
}
