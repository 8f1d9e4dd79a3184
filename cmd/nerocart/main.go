// Command nerocart manages a storefront shopping cart from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/nerocart/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nerocart:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
