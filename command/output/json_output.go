package output

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type JSONOutput struct {
	commonOutputFormatter
}

func newJSONOutput(cmd *cobra.Command) *JSONOutput {
	return &JSONOutput{commonOutputFormatter{baseCmd: cmd}}
}

func (jo *JSONOutput) WriteOutput() {
	if jo.errorOutput != nil {
		_, _ = fmt.Fprintln(jo.errWriter(), jo.getErrorOutput())

		return
	}

	_, _ = fmt.Fprintln(jo.outWriter(), jo.getCommandOutput())
}

func (jo *JSONOutput) getErrorOutput() string {
	return marshalJSONToString(
		struct {
			Err string `json:"error"`
		}{
			Err: jo.errorOutput.Error(),
		},
	)
}

func (jo *JSONOutput) getCommandOutput() string {
	return marshalJSONToString(jo.commandOutput)
}

func marshalJSONToString(input interface{}) string {
	bytes, err := json.Marshal(input)
	if err != nil {
		return err.Error()
	}

	return string(bytes)
}
