package selftest

import (
	"github.com/spf13/cobra"

	"github.com/bee2-go/bee2/command/helper"
	"github.com/bee2-go/bee2/command/output"
)

func GetCommand() *cobra.Command {
	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "Runs the known-answer tests and checks the random number generator",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}

	setFlags(selftestCmd)

	return selftestCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(
		&params.skipRng,
		skipRngFlag,
		false,
		"do not collect system entropy",
	)
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := output.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	outputter.SetCommandResult(params.runChecks(helper.NewLogger(cmd)))
}
