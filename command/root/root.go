package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bee2-go/bee2/command/hash"
	"github.com/bee2-go/bee2/command/helper"
	"github.com/bee2-go/bee2/command/selftest"
	"github.com/bee2-go/bee2/command/version"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Use:   "bee2",
			Short: "bee2 checks and exercises the Belarusian cryptographic standards",
		},
	}

	helper.RegisterJSONOutputFlag(rootCommand.baseCmd)
	helper.RegisterLogLevelFlag(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		version.GetCommand(),
		selftest.GetCommand(),
		hash.GetCommand(),
	)
}

// Command exposes the cobra command, mostly for tests.
func (rc *RootCommand) Command() *cobra.Command {
	return rc.baseCmd
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
