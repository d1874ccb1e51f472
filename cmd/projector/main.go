// Command projector resolves directory-scoped key/value pairs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/projector/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "projector:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
