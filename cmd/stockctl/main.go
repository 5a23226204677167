package main

import (
	"fmt"
	"os"

	"github.com/cnsrgl/stock-gestion-codeon/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Formatted output already went to stdout; keep stderr terse.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
