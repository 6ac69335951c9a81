package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/kingsleyh/pg-filters/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Command failures are already reported on stdout.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
