package main

import (
	"os"

	"github.com/grovetools/jsonview/cli"
	"github.com/grovetools/jsonview/cmd"
)

func main() {
	if err := cli.Execute(cmd.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
