package version

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bee2-go/bee2/command/output"
	"github.com/bee2-go/bee2/helper/word"
	"github.com/bee2-go/bee2/version"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Returns the current bee2 version",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := output.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	outputter.SetCommandResult(
		&VersionResult{
			Version:   version.Version,
			Commit:    version.Commit,
			Branch:    version.Branch,
			BuildTime: version.BuildTime,
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			Word:      word.B,
		},
	)
}
