package main

import (
	"os"

	"github.com/baxley/shopbook/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		// Subcommands print their own errors; cobra reports flag and
		// usage errors itself. Only the exit code is left to set here.
		os.Exit(cli.GetExitCode(err))
	}
}
