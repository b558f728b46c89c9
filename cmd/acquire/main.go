// Command acquire creates, plays and verifies games of Acquire.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/acquire/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
