package version

import (
	"bytes"
	"fmt"

	"github.com/bee2-go/bee2/command/helper"
)

type VersionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
	Word      int    `json:"wordBits"`
}

func (r *VersionResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[VERSION INFO]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Release version|%s", r.Version),
		fmt.Sprintf("Git branch|%s", r.Branch),
		fmt.Sprintf("Commit hash|%s", r.Commit),
		fmt.Sprintf("Build time|%s", r.BuildTime),
		fmt.Sprintf("Go version|%s", r.GoVersion),
		fmt.Sprintf("Platform|%s", r.Platform),
		fmt.Sprintf("Word size|%d bits", r.Word),
	}))

	return buffer.String()
}
