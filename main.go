package main

import (
	"github.com/bee2-go/bee2/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
