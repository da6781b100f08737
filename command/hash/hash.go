package hash

import (
	"github.com/spf13/cobra"

	"github.com/bee2-go/bee2/command/output"
	"github.com/bee2-go/bee2/crypto"
)

func GetCommand() *cobra.Command {
	hashCmd := &cobra.Command{
		Use:     "hash [file...]",
		Short:   "Prints the hash of the given files, or of the standard input",
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(hashCmd)

	return hashCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.algRaw,
		algFlag,
		string(crypto.AlgBelt),
		"the hash algorithm",
	)
}

func runPreRun(_ *cobra.Command, args []string) error {
	params.files = args

	return params.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := output.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	result, err := params.hashAll(cmd.InOrStdin())
	if err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(result)
}
